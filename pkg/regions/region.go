package regions

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Region is one annotated range from a BED file, 0-based and half-open.
type Region struct {
	Contig string
	Start  int64
	Stop   int64
	Name   string
}

// Begin returns the inclusive start.
func (r Region) Begin() int64 {
	return r.Start
}

// End returns the exclusive stop.
func (r Region) End() int64 {
	return r.Stop
}

func (r Region) String() string {
	if r.Name == "" {
		return fmt.Sprintf("%s:%d-%d", r.Contig, r.Start, r.Stop)
	}
	return fmt.Sprintf("%s:%d-%d %s", r.Contig, r.Start, r.Stop, r.Name)
}

// ReadBED parses BED records from r. Blank lines, comments and track/browser
// headers are skipped. Only the first four columns are used. Every bad line is
// reported in the returned error, in which case no regions are returned.
func ReadBED(r io.Reader) ([]Region, error) {
	return collectBED("line", func(fn func(int, string) error) error {
		return readLines(r, fn)
	})
}

// LoadBED is ReadBED for a local file or an HTTP(S) URL.
func LoadBED(fileOrURL string) ([]Region, error) {
	return collectBED(fileOrURL, func(fn func(int, string) error) error {
		return readFileOrURL(fileOrURL, fn)
	})
}

func collectBED(source string, read func(func(int, string) error) error) ([]Region, error) {
	var regions []Region
	var result *multierror.Error

	err := read(func(lineNumber int, line string) error {
		reg, ok, err := parseBEDLine(line)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "%s %d", source, lineNumber))
		} else if ok {
			regions = append(regions, reg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return regions, nil
}

func parseBEDLine(line string) (Region, bool, error) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" ||
		strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "track") ||
		strings.HasPrefix(line, "browser") {
		return Region{}, false, nil
	}

	var fields []string
	if strings.ContainsRune(line, '\t') {
		fields = strings.Split(line, "\t")
	} else {
		fields = strings.Fields(line)
	}
	if len(fields) < 3 {
		return Region{}, false, errors.Errorf("expected at least 3 columns, got %d", len(fields))
	}

	start, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
	if err != nil {
		return Region{}, false, errors.Wrapf(err, "bad start")
	}
	stop, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64)
	if err != nil {
		return Region{}, false, errors.Wrapf(err, "bad stop")
	}
	if start < 0 || start >= stop {
		return Region{}, false, errors.Errorf("invalid region [%d, %d)", start, stop)
	}

	reg := Region{
		Contig: strings.TrimSpace(fields[0]),
		Start:  start,
		Stop:   stop,
	}
	if len(fields) > 3 {
		reg.Name = strings.TrimSpace(fields[3])
	}

	return reg, true, nil
}
