package interval

import (
	"iter"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Tree is an immutable interval tree. Each node holds one interval, ordered by
// Begin(), and the largest End() found in its subtree, which lets queries skip
// subtrees that cannot match.
//
// The zero value is an empty tree.
type Tree[T constraints.Integer, I Interval[T]] struct {
	root *node[T, I]
	size int
}

// Build returns a balanced tree holding items. Items may be unsorted, overlap
// or repeat. If any item has Begin() >= End() no tree is built and the
// returned error lists every offending item, each wrapping ErrInvalidInterval.
//
// items is not modified.
func Build[T constraints.Integer, I Interval[T]](items []I) (*Tree[T, I], error) {
	var result *multierror.Error
	for i, item := range items {
		if err := validate[T](item); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "item %d", i))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b I) int {
		switch {
		case a.Begin() < b.Begin():
			return -1
		case a.Begin() > b.Begin():
			return 1
		}
		return 0
	})

	return &Tree[T, I]{
		root: newNode[T, I](sorted),
		size: len(sorted),
	}, nil
}

// Len returns the number of intervals in the tree.
func (t *Tree[T, I]) Len() int {
	return t.size
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree[T, I]) Height() int {
	return t.root.height()
}

// Stab returns every interval containing point, that is Begin() <= point <
// End(). Callers must not rely on the order of the result.
func (t *Tree[T, I]) Stab(point T) []I {
	if t.root == nil || t.root.max <= point {
		return nil
	}
	return t.root.stab(point, nil)
}

// Query returns every interval overlapping [begin, end). Callers must not rely
// on the order of the result. An error wrapping ErrInvalidRange is returned if
// begin >= end.
func (t *Tree[T, I]) Query(begin, end T) ([]I, error) {
	if err := checkRange(begin, end); err != nil {
		return nil, err
	}
	if t.root == nil || t.root.max <= begin {
		return nil, nil
	}
	return t.root.overlapping(begin, end, nil), nil
}

// All returns an iterator over the intervals in ascending Begin() order.
func (t *Tree[T, I]) All() iter.Seq[I] {
	return func(yield func(I) bool) {
		t.root.walk(yield)
	}
}
