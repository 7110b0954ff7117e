package regions

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/anrid/itree/pkg/interval"
	"github.com/anrid/itree/pkg/locus"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// LookupParams configures Lookup.
type LookupParams struct {
	// RegionsFileOrURL is the BED file (path or HTTP(S) URL) to index.
	RegionsFileOrURL string
	// Loci are queried in order, before any loci read from InputFileOrURL.
	Loci []string
	// InputFileOrURL optionally names a file with one locus per line. Blank
	// lines and lines starting with '#' are ignored.
	InputFileOrURL string
	// Coverage switches to fuzzy matching when > 0, see Index.FuzzyQuery.
	Coverage float64
	// Output receives one line per match and a summary. Defaults to os.Stdout.
	Output io.Writer
}

// Lookup indexes the regions named by params and reports every region
// overlapping each requested locus. It returns the number of matches.
func Lookup(params LookupParams) (numMatchesFound int, err error) {
	if params.Coverage < 0 || params.Coverage > 1 {
		return 0, errors.Wrapf(interval.ErrInvalidThreshold, "coverage %v", params.Coverage)
	}
	out := params.Output
	if out == nil {
		out = os.Stdout
	}

	logger().Info("reading regions", zap.String("source", params.RegionsFileOrURL))

	regions, err := LoadBED(params.RegionsFileOrURL)
	if err != nil {
		return 0, errors.Wrapf(err, "could not load regions")
	}

	idx, err := NewIndex(regions)
	if err != nil {
		return 0, err
	}

	var numLoci int
	check := func(s string) error {
		l, err := locus.Parse(s)
		if err != nil {
			return err
		}
		numLoci++

		var matches []Region
		if params.Coverage > 0 {
			matches, err = idx.FuzzyQuery(l, params.Coverage)
		} else {
			matches, err = idx.Query(l)
		}
		if err != nil {
			return err
		}

		for _, m := range matches {
			fmt.Fprintf(out, "%s\t%s:%d-%d\t%s\n", l, m.Contig, m.Start, m.Stop, m.Name)
		}
		numMatchesFound += len(matches)

		return nil
	}

	for _, s := range params.Loci {
		if err := check(s); err != nil {
			return numMatchesFound, err
		}
	}

	if params.InputFileOrURL != "" {
		err = readFileOrURL(params.InputFileOrURL, func(lineNumber int, line string) error {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				return nil
			}
			return errors.Wrapf(check(line), "line %d", lineNumber)
		})
		if err != nil {
			return numMatchesFound, err
		}
	}

	fmt.Fprintf(out,
		"\nFound %s matches | Checked %s loci against %s regions on %s contigs\n",
		humanize.Comma(int64(numMatchesFound)),
		humanize.Comma(int64(numLoci)),
		humanize.Comma(int64(idx.Len())),
		humanize.Comma(int64(len(idx.Contigs()))),
	)

	return numMatchesFound, nil
}
