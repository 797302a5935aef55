// Command xrsreduce reduces synthetic spectrometer frames into a line
// spectrum and prints it.
//
// Usage:
//
//	xrsreduce [flags]
//
// The detector, the emission line and the reduction stages are described
// by a YAML file; without -config the built-in defaults are used.
//
// Examples:
//
//	xrsreduce -print-config > reduce.yaml
//	xrsreduce -config reduce.yaml
//	xrsreduce -config reduce.yaml -frames 100 -seed 7 -debug
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-xrs/internal/config"
	"github.com/cwbudde/algo-xrs/internal/synth"
	"github.com/cwbudde/algo-xrs/measure/line"
	"github.com/cwbudde/algo-xrs/reduce/byline"
	"github.com/cwbudde/algo-xrs/reduce/detector"
	"github.com/cwbudde/algo-xrs/reduce/spectrum"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("xrsreduce", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to YAML configuration (defaults when empty)")
	frames := fs.Int("frames", -1, "number of synthetic frames (overrides source.frames)")
	seed := fs.Int64("seed", 0, "random seed (overrides source.seed when nonzero)")
	debug := fs.Bool("debug", false, "enable debug logging")
	jsonLog := fs.Bool("json", false, "log as JSON instead of text")
	printConfig := fs.Bool("print-config", false, "print the effective configuration as YAML and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: xrsreduce [flags]\n\n")
		fmt.Fprintf(stderr, "Reduces synthetic detector frames into a line spectrum.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	var logger *slog.Logger
	if *jsonLog {
		logger = slog.New(slog.NewJSONHandler(stderr, handlerOpts))
	} else {
		logger = slog.New(slog.NewTextHandler(stderr, handlerOpts))
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", "config", *configPath, "error", err)
		return 1
	}
	if *frames >= 0 {
		cfg.Source.Frames = *frames
	}
	if *seed != 0 {
		cfg.Source.Seed = *seed
	}

	if *printConfig {
		data, err := cfg.Marshal()
		if err != nil {
			logger.Error("failed to encode configuration", "error", err)
			return 1
		}
		_, _ = stdout.Write(data)
		return 0
	}

	if err := reduce(cfg, stdout, logger); err != nil {
		logger.Error("reduction failed", "error", err)
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg := config.Defaults()
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func reduce(cfg *config.Config, w io.Writer, logger *slog.Logger) error {
	ax, err := cfg.EnergyAxis()
	if err != nil {
		return err
	}
	red, err := cfg.Reduction()
	if err != nil {
		return err
	}
	norm, err := cfg.Normalization()
	if err != nil {
		return err
	}

	d := cfg.Detector
	cal := synth.LinearDetector(d.Rows, d.Cols, d.EnergyOrigin, d.EnergyStep)
	cal.Line = detector.LineGeometry{Center: cfg.Line.Center, Slope: cfg.Line.Slope}
	if d.DeadPixels > 0 {
		cal.Mask = synth.DeadPixelMask(d.Rows, d.Cols, d.DeadPixels, cfg.Source.Seed)
	}

	src := cfg.Source
	frames := synth.LineFrames(src.Seed, src.Frames, cal, synth.Line{
		Center:     src.Center,
		FWHM:       src.FWHM,
		Peak:       src.Peak,
		Background: src.Background,
	})

	opts := append(cfg.Options(), byline.WithLogger(logger))
	r, err := byline.New(cal, ax, red, opts...)
	if err != nil {
		return err
	}
	acc := byline.NewAccumulators(ax.Bins)
	report, err := r.Accumulate(acc, frames...)
	if err != nil {
		return err
	}
	logger.Info("reduction finished",
		"mode", red.Mode().String(),
		"workers", r.Workers(),
		"report", report,
	)

	s, err := spectrum.Normalize(ax, acc, norm)
	if err != nil {
		return err
	}
	intensity := s.Intensity
	if cfg.Output.SmoothFWHM > 0 {
		if intensity, err = spectrum.Smooth(s.Energy, intensity, cfg.Output.SmoothFWHM); err != nil {
			return err
		}
	}

	n := cfg.Output.Rebin
	energy, intensity, sigma, err := spectrum.Rebin(s.Energy, intensity, s.Error, n, 0)
	if err != nil {
		return err
	}
	_, freq, _, _ := spectrum.Rebin(s.Energy, acc.Frequency, nil, n, 0)
	_, den, _, _ := spectrum.Rebin(s.Energy, acc.Denominator, nil, n, 0)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Energy\tIntensity\tError\tFrequency\tDenominator\n")
	for k := range energy {
		fmt.Fprintf(tw, "%.3f\t%.4f\t%.4f\t%.0f\t%.3f\n",
			energy[k], intensity[k], sigma[k], freq[k]*float64(n), den[k]*float64(n))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	m, err := line.Analyze(energy, intensity)
	if err != nil {
		logger.Warn("line analysis skipped", "error", err)
		return nil
	}
	fmt.Fprintf(w, "\nCenter of mass: %.4f\nPeak:           %.4f at %.4f\nFWHM:           %.4f\n",
		m.Center, m.Peak, m.PeakEnergy, m.FWHM)
	return nil
}
