package locus

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Locus is a range on one contig, 0-based and half-open.
type Locus struct {
	Contig string
	Start  int64
	Stop   int64
}

// Begin returns the inclusive start.
func (l Locus) Begin() int64 {
	return l.Start
}

// End returns the exclusive stop.
func (l Locus) End() int64 {
	return l.Stop
}

func (l Locus) String() string {
	return fmt.Sprintf("%s:%d-%d", l.Contig, l.Start, l.Stop)
}

// Parse converts "chr1:1,000-2,000" into a Locus. A bare position such as
// "chr1:1500" selects that single base. Thousands separators are ignored.
func Parse(s string) (Locus, error) {
	s = strings.TrimSpace(s)

	i := strings.LastIndexByte(s, ':')
	if i <= 0 {
		return Locus{}, errors.Errorf("invalid locus '%s': expected contig:start-stop", s)
	}
	contig, coords := s[:i], strings.ReplaceAll(s[i+1:], ",", "")

	startStr, stopStr, isRange := strings.Cut(coords, "-")

	start, err := parseCoord(startStr)
	if err != nil {
		return Locus{}, errors.Wrapf(err, "invalid locus '%s'", s)
	}

	stop := start + 1
	if isRange {
		stop, err = parseCoord(stopStr)
		if err != nil {
			return Locus{}, errors.Wrapf(err, "invalid locus '%s'", s)
		}
	}

	if start >= stop {
		return Locus{}, errors.Errorf("invalid locus '%s': start must be before stop", s)
	}

	return Locus{Contig: contig, Start: start, Stop: stop}, nil
}

func parseCoord(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "could not parse coordinate '%s'", s)
	}
	if n < 0 {
		return 0, errors.Errorf("negative coordinate %d", n)
	}
	return n, nil
}
