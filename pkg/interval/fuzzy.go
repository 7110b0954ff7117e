package interval

import (
	"math"

	"github.com/pkg/errors"
)

// FuzzyQuery returns the intervals overlapping [begin, end) whose bounds are
// both within a margin of the query bounds. The margin is
// (end-begin)*(1-coverage)/2, so coverage 1 only returns exact matches and
// lower values tolerate proportionally sloppier boundaries.
func (t *Tree[T, I]) FuzzyQuery(begin, end T, coverage float64) ([]I, error) {
	if err := checkThreshold(coverage); err != nil {
		return nil, err
	}
	found, err := t.Query(begin, end)
	if err != nil {
		return nil, err
	}

	margin := float64(end-begin) * (1 - coverage) / 2
	b, e := float64(begin), float64(end)

	var result []I
	for _, iv := range found {
		ib, ie := float64(iv.Begin()), float64(iv.End())
		if ib >= b-margin && ib <= b+margin && ie >= e-margin && ie <= e+margin {
			result = append(result, iv)
		}
	}
	return result, nil
}

// JaccardQuery returns the intervals overlapping [begin, end) whose Jaccard
// coefficient with the query range is at least minJaccard.
func (t *Tree[T, I]) JaccardQuery(begin, end T, minJaccard float64) ([]I, error) {
	if err := checkThreshold(minJaccard); err != nil {
		return nil, err
	}
	found, err := t.Query(begin, end)
	if err != nil {
		return nil, err
	}

	q := Span[T]{Lo: begin, Hi: end}
	var result []I
	for _, iv := range found {
		if Jaccard[T](iv, q) >= minJaccard {
			result = append(result, iv)
		}
	}
	return result, nil
}

func checkThreshold(v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return errors.Wrapf(ErrInvalidThreshold, "%v", v)
	}
	return nil
}
