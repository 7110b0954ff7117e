package interval

import "golang.org/x/exp/constraints"

type node[T constraints.Integer, I Interval[T]] struct {
	item  I
	max   T // largest End() in this subtree
	left  *node[T, I]
	right *node[T, I]
}

// newNode builds a balanced subtree over items, which must be sorted by
// Begin(). The middle element becomes the root so equal begins stay in input
// order across the split.
func newNode[T constraints.Integer, I Interval[T]](items []I) *node[T, I] {
	if len(items) == 0 {
		return nil
	}

	mid := len(items) / 2
	n := &node[T, I]{
		item:  items[mid],
		left:  newNode[T, I](items[:mid]),
		right: newNode[T, I](items[mid+1:]),
	}
	n.update()

	return n
}

// update recomputes max from the node's own interval and its children.
func (n *node[T, I]) update() {
	n.max = n.item.End()
	if n.left != nil && n.left.max > n.max {
		n.max = n.left.max
	}
	if n.right != nil && n.right.max > n.max {
		n.max = n.right.max
	}
}

func (n *node[T, I]) stab(point T, result []I) []I {
	if Contains[T](n.item, point) {
		result = append(result, n.item)
	}
	if n.left != nil && n.left.max > point {
		result = n.left.stab(point, result)
	}
	if n.right != nil && n.item.Begin() <= point {
		result = n.right.stab(point, result)
	}
	return result
}

func (n *node[T, I]) overlapping(begin, end T, result []I) []I {
	if Overlaps[T](n.item, begin, end) {
		result = append(result, n.item)
	}
	if n.left != nil && n.left.max > begin {
		result = n.left.overlapping(begin, end, result)
	}
	if n.right != nil && n.item.Begin() < end {
		result = n.right.overlapping(begin, end, result)
	}
	return result
}

// walk visits the subtree in order and stops early when yield returns false.
func (n *node[T, I]) walk(yield func(I) bool) bool {
	if n == nil {
		return true
	}
	return n.left.walk(yield) && yield(n.item) && n.right.walk(yield)
}

func (n *node[T, I]) height() int {
	if n == nil {
		return 0
	}
	return 1 + max(n.left.height(), n.right.height())
}
