// Package domain tracks sampling-rate metadata for a processing clock.
//
// A Domain carries the samples-per-second rate shared by a group of
// processing units. Units that derive state from the rate (bin resolution,
// hop duration) implement Observer and attach themselves; they are notified
// synchronously whenever the rate changes.
package domain

import (
	"fmt"
	"math"
)

// Observer is notified when the sampling rate of its Domain changes.
// The rate passed is the new rate in samples per second.
type Observer interface {
	OnDomainChange(rate float64)
}

// Domain is a sampling-rate clock with attached observers.
//
// Not safe for concurrent use; callers own synchronization.
type Domain struct {
	rate      float64
	observers []Observer
}

// New returns a domain running at the given rate in samples per second.
func New(sampleRate float64) (*Domain, error) {
	if err := validateRate(sampleRate); err != nil {
		return nil, err
	}
	return &Domain{rate: sampleRate}, nil
}

// SampleRate returns the current rate in samples per second.
func (d *Domain) SampleRate() float64 {
	return d.rate
}

// UnitsPerSample returns the duration of one sample in seconds.
func (d *Domain) UnitsPerSample() float64 {
	return 1 / d.rate
}

// SetSampleRate changes the rate and notifies every attached observer.
func (d *Domain) SetSampleRate(rate float64) error {
	if err := validateRate(rate); err != nil {
		return err
	}
	if rate == d.rate {
		return nil
	}
	d.rate = rate
	for _, o := range d.observers {
		o.OnDomainChange(rate)
	}
	return nil
}

// Attach registers an observer and immediately synchronizes it with the
// current rate. Attaching the same observer twice is a no-op.
func (d *Domain) Attach(o Observer) {
	if o == nil {
		return
	}
	for _, cur := range d.observers {
		if cur == o {
			return
		}
	}
	d.observers = append(d.observers, o)
	o.OnDomainChange(d.rate)
}

// Detach removes an observer. Unknown observers are ignored.
func (d *Domain) Detach(o Observer) {
	for i, cur := range d.observers {
		if cur == o {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			return
		}
	}
}

func validateRate(rate float64) error {
	if rate <= 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
		return fmt.Errorf("domain: sample rate must be positive and finite: %f", rate)
	}
	return nil
}
