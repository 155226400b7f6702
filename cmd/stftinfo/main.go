// Command stftinfo prints analysis parameters of short-time Fourier
// transform configurations.
//
// Usage:
//
//	stftinfo [flags] [window-name ...]
//
// Without arguments it prints the default Hann configuration.
//
// Examples:
//
//	stftinfo -win 2048 -hop 512
//	stftinfo -win 1024 -pad 1024 hann blackman
//	stftinfo -rate 44100 hamming
//	stftinfo -list
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-stft/dsp/core"
	"github.com/cwbudde/algo-stft/dsp/domain"
	"github.com/cwbudde/algo-stft/dsp/transform"
	"github.com/cwbudde/algo-stft/dsp/window"
)

var registry = map[string]window.Type{
	"rectangular":        window.TypeRectangular,
	"hann":               window.TypeHann,
	"hamming":            window.TypeHamming,
	"blackman":           window.TypeBlackman,
	"blackman-harris-4t": window.TypeBlackmanHarris4Term,
	"triangle":           window.TypeTriangle,
	"welch":              window.TypeWelch,
}

func main() {
	winSize := flag.Int("win", 1024, "analysis window length in samples")
	hop := flag.Int("hop", 256, "hop size in samples")
	pad := flag.Int("pad", 0, "zeros appended to each frame before the transform")
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	list := flag.Bool("list", false, "list available window names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: stftinfo [flags] [window-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints analysis parameters of STFT configurations.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, prints the default Hann configuration.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  stftinfo -win 2048 -hop 512\n")
		fmt.Fprintf(os.Stderr, "  stftinfo -win 1024 -pad 1024 hann blackman\n")
		fmt.Fprintf(os.Stderr, "  stftinfo -list\n")
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	names := flag.Args()
	if len(names) == 0 {
		names = []string{"hann"}
	}

	dom, err := domain.New(*rate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tWin\tHop\tDFT\tBins\tOverlap\tBin [Hz]\tRes [Hz]\tHop [ms]\tLatency [ms]\tENBW [bins]\tCG [dB]\n")
	fmt.Fprintf(tw, "------\t---\t---\t---\t----\t-------\t--------\t--------\t--------\t------------\t-----------\t-------\n")

	printed := 0
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		typ, ok := registry[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown window %q (use -list to see available)\n", name)
			continue
		}
		stft, err := transform.NewSTFT(*winSize, *hop,
			transform.WithPad(*pad), transform.WithWindowType(typ))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		dom.Attach(stft)
		if err := printRow(tw, name, typ, stft); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		printed++
	}
	if printed == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching window types\n")
		os.Exit(1)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printList() {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
}

func printRow(tw *tabwriter.Writer, name string, typ window.Type, stft *transform.STFT) error {
	coeffs := window.Generate(typ, stft.SizeWin(), window.WithPeriodic())
	enbw, err := window.EquivalentNoiseBandwidth(coeffs)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", name, err)
	}
	cg, err := window.CoherentGain(coeffs)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", name, err)
	}

	rate := stft.SampleRate()
	latencyMS := float64(stft.SizeWin()-1) / rate * 1e3
	_, err = fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.1f\t%.3f\t%.3f\t%.3f\t%.3f\t%.4f\t%.2f\n",
		name,
		stft.SizeWin(),
		stft.SizeHop(),
		stft.SizeDFT(),
		stft.NumBins(),
		stft.Overlap(),
		stft.BinFreq(),
		stft.FreqRes(),
		stft.HopDuration()*1e3,
		latencyMS,
		enbw,
		core.LinearToDB(cg),
	)
	return err
}
