package transform

import (
	"fmt"

	"github.com/cwbudde/algo-stft/dsp/core"
)

// SlidingWindow accumulates a sample stream into overlapping analysis
// frames, decoupling the caller's one-sample-at-a-time delivery from the
// hop cadence of a windowed transform.
//
// Two feeding strategies are available. Feed keeps the stored window
// ordered oldest to newest by rotating the buffer once per hop, so the
// window can be read in place. FeedCopy writes into a ring and copies the
// ordered window out on each full hop, leaving the ring untouched.
type SlidingWindow struct {
	buf     []float64
	sizeHop int
	tapW    int
	hopCnt  int
}

// NewSlidingWindow creates a window of winSize samples advancing by
// hopSize samples per frame. The hop is clamped to [1, winSize].
func NewSlidingWindow(winSize, hopSize int) (*SlidingWindow, error) {
	w := &SlidingWindow{}
	if err := w.Resize(winSize, hopSize); err != nil {
		return nil, err
	}
	return w, nil
}

// Resize reallocates for a new window size, re-clamps the hop, and clears
// all state.
func (w *SlidingWindow) Resize(winSize, hopSize int) error {
	if winSize <= 0 {
		return fmt.Errorf("sliding window size must be > 0: %d", winSize)
	}
	w.buf = core.EnsureLen(w.buf, winSize)
	w.SetHopSize(hopSize)
	w.Reset()
	return nil
}

// SetHopSize sets the frame advance, clamped to [1, SizeWin()].
func (w *SlidingWindow) SetHopSize(hopSize int) {
	w.sizeHop = core.ClampInt(hopSize, 1, len(w.buf))
}

// SizeWin returns the window length in samples.
func (w *SlidingWindow) SizeWin() int { return len(w.buf) }

// SizeHop returns the frame advance in samples.
func (w *SlidingWindow) SizeHop() int { return w.sizeHop }

// Window returns the stored window. The samples are ordered oldest to
// newest immediately after Feed reports a full hop.
func (w *SlidingWindow) Window() []float64 { return w.buf }

// Feed stores one sample and reports whether a full hop has accumulated.
// When it returns true, Window() holds the latest SizeWin() samples
// ordered oldest to newest.
func (w *SlidingWindow) Feed(sample float64) bool {
	w.buf[w.tapW] = sample
	w.tapW++
	if w.tapW < w.sizeHop {
		return false
	}
	w.tapW = 0
	core.RotateLeft(w.buf, w.sizeHop)
	return true
}

// FeedCopy stores one sample in ring fashion and reports whether a full
// hop has accumulated. When it returns true, the latest SizeWin() samples
// have been copied into dst ordered oldest to newest. dst must hold at
// least SizeWin() samples.
func (w *SlidingWindow) FeedCopy(dst []float64, sample float64) bool {
	w.buf[w.tapW] = sample
	w.tapW++
	if w.tapW >= len(w.buf) {
		w.tapW = 0
	}
	w.hopCnt++
	if w.hopCnt < w.sizeHop {
		return false
	}
	w.hopCnt = 0
	core.CopyFromRing(dst[:len(w.buf)], w.buf, w.tapW)
	return true
}

// Reset zeroes the window and both feed positions.
func (w *SlidingWindow) Reset() {
	core.Zero(w.buf)
	w.tapW = 0
	w.hopCnt = 0
}
