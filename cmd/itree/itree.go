package main

import (
	"fmt"
	"os"

	"github.com/anrid/itree/pkg/regions"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	regionsFileOrURL := pflag.StringP("regions", "r", "", "Path or URL to a BED file with the regions to index.")
	inputFileOrURL := pflag.StringP("input", "i", "", "Path or URL to a file with one locus (e.g. chr1:1,000-2,000) per line. Loci given as arguments are checked first.")
	coverage := pflag.Float64("coverage", 0, "Fuzzy matching: when 0 < coverage <= 1, only report regions whose start and stop each lie within locus length * (1-coverage) / 2 of the locus bounds.")
	logLevel := pflag.String("log-level", "warn", "Log level (debug, info, warn, error).")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s --regions FILE [flags] [LOCUS ...]\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	logger, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	undo := zap.ReplaceGlobals(logger)
	defer undo()

	if *regionsFileOrURL == "" || (*inputFileOrURL == "" && pflag.NArg() == 0) {
		pflag.Usage()
		os.Exit(2)
	}

	_, err = regions.Lookup(regions.LookupParams{
		RegionsFileOrURL: *regionsFileOrURL,
		Loci:             pflag.Args(),
		InputFileOrURL:   *inputFileOrURL,
		Coverage:         *coverage,
		Output:           os.Stdout,
	})
	if err != nil {
		logger.Fatal("lookup failed", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	var ll zapcore.Level
	if err := ll.Set(level); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(ll)
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}

	return cfg.Build()
}
