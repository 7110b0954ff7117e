// Package interval implements a static interval tree over half-open integer
// ranges. A tree is built once from a slice of intervals and answers point
// (stabbing) and overlap queries. Trees are immutable and safe for concurrent
// use by multiple goroutines.
package interval

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

var (
	// ErrInvalidInterval is returned by Build for an interval whose begin is
	// not strictly before its end.
	ErrInvalidInterval = errors.New("invalid interval: begin must be before end")

	// ErrInvalidRange is returned by queries given a range whose begin is not
	// strictly before its end.
	ErrInvalidRange = errors.New("invalid query range: begin must be before end")

	// ErrInvalidThreshold is returned by FuzzyQuery and JaccardQuery for a
	// threshold outside [0, 1].
	ErrInvalidThreshold = errors.New("invalid threshold: must be within [0, 1]")
)

// Interval is anything that can be stored in a Tree. Begin is inclusive,
// End is exclusive and Begin must be less than End.
type Interval[T constraints.Integer] interface {
	Begin() T
	End() T
}

// Span is a plain half-open interval [Lo, Hi).
type Span[T constraints.Integer] struct {
	Lo T
	Hi T
}

// NewSpan returns a new Span or an error if hi is not after lo.
func NewSpan[T constraints.Integer](lo, hi T) (Span[T], error) {
	if lo >= hi {
		return Span[T]{}, errors.Wrapf(ErrInvalidInterval, "[%d, %d)", lo, hi)
	}
	return Span[T]{Lo: lo, Hi: hi}, nil
}

// Begin returns the inclusive lower bound.
func (s Span[T]) Begin() T {
	return s.Lo
}

// End returns the exclusive upper bound.
func (s Span[T]) End() T {
	return s.Hi
}

func (s Span[T]) String() string {
	return fmt.Sprintf("[%d, %d)", s.Lo, s.Hi)
}

// Contains reports whether point lies in iv.
func Contains[T constraints.Integer](iv Interval[T], point T) bool {
	return iv.Begin() <= point && point < iv.End()
}

// Overlaps reports whether iv intersects [begin, end).
func Overlaps[T constraints.Integer](iv Interval[T], begin, end T) bool {
	return iv.Begin() < end && iv.End() > begin
}

// Length returns End - Begin.
func Length[T constraints.Integer](iv Interval[T]) T {
	return iv.End() - iv.Begin()
}

// Intersection returns the number of positions shared by a and b.
func Intersection[T constraints.Integer](a, b Interval[T]) T {
	lo := max(a.Begin(), b.Begin())
	hi := min(a.End(), b.End())
	if lo >= hi {
		return 0
	}
	return hi - lo
}

// Jaccard returns the Jaccard coefficient of a and b, the size of their
// intersection divided by the size of their union.
func Jaccard[T constraints.Integer](a, b Interval[T]) float64 {
	inter := Intersection(a, b)
	if inter == 0 {
		return 0
	}
	union := Length(a) + Length(b) - inter
	return float64(inter) / float64(union)
}

func validate[T constraints.Integer](iv Interval[T]) error {
	if iv.Begin() >= iv.End() {
		return errors.Wrapf(ErrInvalidInterval, "[%d, %d)", iv.Begin(), iv.End())
	}
	return nil
}

func checkRange[T constraints.Integer](begin, end T) error {
	if begin >= end {
		return errors.Wrapf(ErrInvalidRange, "[%d, %d)", begin, end)
	}
	return nil
}
