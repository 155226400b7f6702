package transform_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-stft/dsp/transform"
)

func ExampleDFT() {
	dft, _ := transform.NewDFT(8, transform.WithSampleRate(8))

	// A constant signal lands entirely in the DC bin.
	for i := 0; i < 8; i++ {
		dft.FeedForward(0.5)
	}

	fmt.Println(dft.NumBins())
	fmt.Printf("%.1f\n", real(dft.Bin(0)))
	// Output:
	// 5
	// 1.0
}

func ExampleDFT_pullInverse() {
	dft, _ := transform.NewDFT(4)

	input := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	for _, x := range input {
		dft.FeedForward(x)
		fmt.Printf("%.0f ", dft.PullInverse())
	}
	fmt.Println()
	// Output:
	// 0 0 0 1 2 3 4 5
}

func ExampleSTFT() {
	stft, _ := transform.NewSTFT(1024, 256, transform.WithSampleRate(48000))

	fmt.Println(stft.NumBins())
	fmt.Printf("%.1fx overlap\n", stft.Overlap())
	fmt.Printf("%.3f Hz per bin\n", stft.BinFreq())
	fmt.Printf("%.4f s per hop\n", stft.HopDuration())
	// Output:
	// 513
	// 4.0x overlap
	// 46.875 Hz per bin
	// 0.0053 s per hop
}

func ExampleSTFT_magnitudeFrequency() {
	stft, _ := transform.NewSTFT(512, 128,
		transform.WithFormat(transform.MagnitudeFrequency),
		transform.WithSampleRate(48000))

	// Analyze a 1500 Hz tone; the phase vocoder recovers the frequency
	// from hop-to-hop phase differences.
	for i := 0; i < 1024; i++ {
		stft.FeedForward(math.Sin(2 * math.Pi * 1500 * float64(i) / 48000))
	}

	fmt.Printf("%.0f Hz\n", imag(stft.Bin(16)))
	// Output:
	// 1500 Hz
}

func ExampleSlidingDFT() {
	sdft, _ := transform.NewSlidingDFT(16, 3, 5)

	sdft.Forward(1)

	fmt.Printf("%.3f\n", real(sdft.Bin(3)))
	fmt.Printf("%.3f\n", real(sdft.Bin(8)))
	// Output:
	// 0.125
	// 0.000
}

func ExampleSlidingWindow() {
	win, _ := transform.NewSlidingWindow(4, 2)

	for i := 1; i <= 4; i++ {
		if win.Feed(float64(i)) {
			fmt.Println(win.Window())
		}
	}
	// Output:
	// [0 0 1 2]
	// [1 2 3 4]
}
