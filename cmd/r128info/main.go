// Command r128info prints design diagnostics for the loudness metering
// chain: K-weighting filter coefficients and frequency responses, and
// the true-peak interpolator's kernel spectrum, per sample rate.
//
// Usage:
//
//	r128info [flags]
//
// Examples:
//
//	r128info
//	r128info -rates 44100,96000
//	r128info -coeffs
//	r128info -fft 1024
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-r128/dsp/filter/biquad"
	"github.com/cwbudde/algo-r128/dsp/filter/kweight"
	"github.com/cwbudde/algo-r128/dsp/interp"
)

var responseFreqs = []float64{25, 38.135, 100, 500, 997, 1000, 2000, 5000, 10000}

func main() {
	rates := flag.String("rates", "44100,48000,96000,192000", "comma-separated sample rates in Hz")
	coeffs := flag.Bool("coeffs", false, "print biquad coefficients instead of responses")
	fftSize := flag.Int("fft", 512, "FFT size for the interpolator kernel spectrum")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: r128info [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints K-weighting and true-peak interpolator diagnostics.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	parsed, err := parseRates(*rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *coeffs {
		printCoefficients(parsed)
	} else {
		printResponses(parsed)
	}

	printInterpolator(parsed, *fftSize)
}

func parseRates(s string) ([]float64, error) {
	var rates []float64

	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		rate, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid sample rate %q", field)
		}

		if rate < kweight.MinSampleRate {
			return nil, fmt.Errorf("sample rate %v below minimum %v", rate, kweight.MinSampleRate)
		}

		rates = append(rates, rate)
	}

	if len(rates) == 0 {
		return nil, fmt.Errorf("no sample rates given")
	}

	return rates, nil
}

func printResponses(rates []float64) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "K-weighting response [dB]\n")
	fmt.Fprintf(tw, "Freq [Hz]")
	for _, rate := range rates {
		fmt.Fprintf(tw, "\t%.0f Hz", rate)
	}
	fmt.Fprintln(tw)

	chains := make(map[float64]responseChain, len(rates))
	for _, rate := range rates {
		shelf, highpass, err := kweight.Design(rate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		chains[rate] = responseChain{shelf: shelf, highpass: highpass}
	}

	for _, freq := range responseFreqs {
		fmt.Fprintf(tw, "%.3f", freq)
		for _, rate := range rates {
			if freq >= rate/2 {
				fmt.Fprintf(tw, "\t-")
				continue
			}
			c := chains[rate]
			db := c.shelf.MagnitudeDB(freq, rate) + c.highpass.MagnitudeDB(freq, rate)
			fmt.Fprintf(tw, "\t%+.4f", db)
		}
		fmt.Fprintln(tw)
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

type responseChain struct {
	shelf, highpass biquad.Coefficients
}

func printCoefficients(rates []float64) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Rate [Hz]\tStage\tb0\tb1\tb2\ta1\ta2\n")

	for _, rate := range rates {
		shelf, highpass, err := kweight.Design(rate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(tw, "%.0f\tshelf\t%.12f\t%.12f\t%.12f\t%.12f\t%.12f\n",
			rate, shelf.B0, shelf.B1, shelf.B2, shelf.A1, shelf.A2)
		fmt.Fprintf(tw, "%.0f\thighpass\t%.12f\t%.12f\t%.12f\t%.12f\t%.12f\n",
			rate, highpass.B0, highpass.B1, highpass.B2, highpass.A1, highpass.A2)
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

// printInterpolator reports the true-peak oversampling configuration
// per rate plus spectral figures of the interpolation kernel: DC gain
// (should read as the factor), worst passband ripple below the original
// Nyquist, and best stopband rejection above it.
func printInterpolator(rates []float64, fftSize int) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "\nTrue-peak interpolator\n")
	fmt.Fprintf(tw, "Rate [Hz]\tFactor\tTaps/phase\tDC gain\tPassband ripple [dB]\tStopband [dB]\n")

	for _, rate := range rates {
		factor := oversamplingFactor(rate)
		if factor == 0 {
			fmt.Fprintf(tw, "%.0f\t1\t-\t-\t-\t-\n", rate)
			continue
		}

		p, err := interp.NewPolyphase(interp.Taps/factor, factor, 1)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		mag, err := p.KernelSpectrum(fftSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		// Passband: below the original Nyquist, i.e. the first
		// 1/(2*factor) of the spectrum. Stopband: the upper half of the
		// oversampled band, past the transition region.
		passEnd := len(mag) / factor / 2
		stopStart := len(mag) / 2

		ripple := 0.0
		for _, m := range mag[:passEnd] {
			if r := math.Abs(20 * math.Log10(m/float64(factor))); r > ripple {
				ripple = r
			}
		}

		stop := math.Inf(-1)
		for _, m := range mag[stopStart:] {
			if db := 20 * math.Log10(m/float64(factor)); db > stop {
				stop = db
			}
		}

		fmt.Fprintf(tw, "%.0f\t%d\t%d\t%.6f\t%.4f\t%.1f\n",
			rate, factor, interp.Taps/factor, mag[0], ripple, stop)
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

// oversamplingFactor mirrors the meter's rate-dependent true-peak
// policy: 4x below 96 kHz, 2x below 192 kHz, none above.
func oversamplingFactor(rate float64) int {
	switch {
	case rate < 96000:
		return 4
	case rate < 192000:
		return 2
	default:
		return 0
	}
}
