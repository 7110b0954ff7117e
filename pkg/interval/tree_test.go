package interval

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func spans(pairs ...int) []Span[int] {
	var out []Span[int]
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Span[int]{Lo: pairs[i], Hi: pairs[i+1]})
	}
	return out
}

func randomSpans(rng *rand.Rand, n, limit, maxLen int) []Span[int] {
	out := make([]Span[int], n)
	for i := range out {
		lo := rng.Intn(limit) - limit/4
		out[i] = Span[int]{Lo: lo, Hi: lo + 1 + rng.Intn(maxLen)}
	}
	return out
}

func bruteStab(items []Span[int], p int) []Span[int] {
	var out []Span[int]
	for _, s := range items {
		if s.Lo <= p && p < s.Hi {
			out = append(out, s)
		}
	}
	return out
}

func bruteQuery(items []Span[int], b, e int) []Span[int] {
	var out []Span[int]
	for _, s := range items {
		if s.Lo < e && s.Hi > b {
			out = append(out, s)
		}
	}
	return out
}

// checkNode verifies ordering and the max augmentation, returning the
// subtree's true max end and its begin bounds.
func checkNode(t *testing.T, n *node[int, Span[int]]) (maxEnd, lo, hi int) {
	t.Helper()

	maxEnd, lo, hi = n.item.Hi, n.item.Lo, n.item.Lo
	if n.left != nil {
		lm, llo, lhi := checkNode(t, n.left)
		require.LessOrEqual(t, lhi, n.item.Lo, "left subtree begins after node")
		maxEnd, lo = max(maxEnd, lm), llo
	}
	if n.right != nil {
		rm, rlo, rhi := checkNode(t, n.right)
		require.GreaterOrEqual(t, rlo, n.item.Lo, "right subtree begins before node")
		maxEnd, hi = max(maxEnd, rm), rhi
	}
	require.Equal(t, maxEnd, n.max, "max of node %v", n.item)
	return maxEnd, lo, hi
}

func TestTreeExample(t *testing.T) {
	r := require.New(t)

	tree, err := Build[int](spans(0, 3, 1, 4, 5, 7))
	r.NoError(err)
	r.Equal(3, tree.Len())

	r.ElementsMatch(spans(0, 3, 1, 4), tree.Stab(1))
	r.ElementsMatch(spans(5, 7), tree.Stab(6))
	r.Empty(tree.Stab(4))
	r.Empty(tree.Stab(7))
	r.Empty(tree.Stab(-1))

	tests := []struct {
		begin, end int
		want       []Span[int]
	}{
		{3, 5, spans(1, 4)},
		{0, 1, spans(0, 3)},
		{4, 5, nil},
		{-10, 0, nil},
		{7, 100, nil},
		{2, 6, spans(0, 3, 1, 4, 5, 7)},
		{-100, 100, spans(0, 3, 1, 4, 5, 7)},
	}

	for _, tt := range tests {
		res, err := tree.Query(tt.begin, tt.end)
		r.NoError(err)
		r.ElementsMatch(tt.want, res, "query [%d, %d)", tt.begin, tt.end)
	}
}

// Mirrors the overlapping run (0,3), (1,4), ..., (8,11).
func TestTreeStaircase(t *testing.T) {
	r := require.New(t)

	var items []Span[int]
	for i := 0; i < 9; i++ {
		items = append(items, Span[int]{Lo: i, Hi: i + 3})
	}
	tree, err := Build[int](items)
	r.NoError(err)

	r.ElementsMatch(spans(0, 3, 1, 4), tree.Stab(1))
	r.ElementsMatch(spans(4, 7, 5, 8, 6, 9), tree.Stab(6))
	r.ElementsMatch(spans(8, 11), tree.Stab(10))
	r.Empty(tree.Stab(11))

	res, err := tree.Query(4, 6)
	r.NoError(err)
	r.ElementsMatch(spans(2, 5, 3, 6, 4, 7, 5, 8), res)

	res, err = tree.Query(11, 12)
	r.NoError(err)
	r.Empty(res)
}

func TestTreeEmpty(t *testing.T) {
	r := require.New(t)

	for _, items := range [][]Span[int]{nil, {}} {
		tree, err := Build[int](items)
		r.NoError(err)
		r.Equal(0, tree.Len())
		r.Equal(0, tree.Height())

		for p := -5; p < 5; p++ {
			r.Empty(tree.Stab(p))
			res, err := tree.Query(p, p+3)
			r.NoError(err)
			r.Empty(res)
		}
	}

	var zero Tree[int, Span[int]]
	r.Empty(zero.Stab(0))
	r.Empty(slices.Collect(zero.All()))
}

func TestBuildRejectsMalformed(t *testing.T) {
	r := require.New(t)

	_, err := Build[int](spans(0, 3, 5, 5, 1, 4, 9, 2))
	r.Error(err)
	r.True(errors.Is(err, ErrInvalidInterval))
	r.Contains(err.Error(), "item 1")
	r.Contains(err.Error(), "item 3")
	r.NotContains(err.Error(), "item 0")

	_, err = Build[int](spans(-2, -1, 0, 1))
	r.NoError(err)
}

func TestQueryRejectsMalformedRange(t *testing.T) {
	r := require.New(t)

	tree, err := Build[int](spans(0, 3))
	r.NoError(err)

	for _, rng := range [][2]int{{3, 3}, {5, 1}} {
		res, err := tree.Query(rng[0], rng[1])
		r.Nil(res)
		r.True(errors.Is(err, ErrInvalidRange), "range %v", rng)
	}

	var empty Tree[int, Span[int]]
	_, err = empty.Query(1, 1)
	r.True(errors.Is(err, ErrInvalidRange))
}

func TestBuildDoesNotModifyInput(t *testing.T) {
	r := require.New(t)

	items := spans(5, 7, 0, 3, 1, 4)
	orig := slices.Clone(items)

	_, err := Build[int](items)
	r.NoError(err)
	r.Equal(orig, items)
}

func TestTreeRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		n := rng.Intn(200)
		items := randomSpans(rng, n, 300, 40)

		tree, err := Build[int](items)
		require.NoError(t, err)
		require.Equal(t, n, tree.Len())

		if tree.root != nil {
			checkNode(t, tree.root)
		}

		// Median splitting keeps the tree perfectly height balanced.
		height := 0
		for (1<<height)-1 < n {
			height++
		}
		require.Equal(t, height, tree.Height())

		for p := -100; p < 400; p += 3 {
			require.ElementsMatch(t, bruteStab(items, p), tree.Stab(p), "stab %d", p)

			single, err := tree.Query(p, p+1)
			require.NoError(t, err)
			require.ElementsMatch(t, tree.Stab(p), single, "point query %d", p)

			e := p + 1 + rng.Intn(50)
			res, err := tree.Query(p, e)
			require.NoError(t, err)
			require.ElementsMatch(t, bruteQuery(items, p, e), res, "query [%d, %d)", p, e)
		}
	}
}

func TestTreeDuplicates(t *testing.T) {
	r := require.New(t)

	items := spans(1, 5, 1, 5, 1, 5, 2, 3, 1, 2)
	tree, err := Build[int](items)
	r.NoError(err)
	checkNode(t, tree.root)

	r.Len(tree.Stab(1), 4)
	r.Len(tree.Stab(2), 4)
	r.Len(tree.Stab(4), 3)
}

func TestTreeAll(t *testing.T) {
	r := require.New(t)

	tree, err := Build[int](spans(5, 7, 0, 3, 1, 4, 0, 1))
	r.NoError(err)
	r.Equal(spans(0, 3, 0, 1, 1, 4, 5, 7), slices.Collect(tree.All()))

	var got []Span[int]
	for s := range tree.All() {
		got = append(got, s)
		if len(got) == 2 {
			break
		}
	}
	r.Equal(spans(0, 3, 0, 1), got)
}

func TestTreeConcurrentQueries(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	items := randomSpans(rng, 1000, 10000, 200)

	tree, err := Build[int](items)
	require.NoError(t, err)

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for p := w; p < 10000; p += 97 {
				if len(tree.Stab(p)) != len(bruteStab(items, p)) {
					return errors.Errorf("stab %d mismatch", p)
				}
				res, err := tree.Query(p, p+50)
				if err != nil {
					return err
				}
				if len(res) != len(bruteQuery(items, p, p+50)) {
					return errors.Errorf("query %d mismatch", p)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

type gene struct {
	name       string
	start, end int64
}

func (g *gene) Begin() int64 { return g.start }
func (g *gene) End() int64   { return g.end }

func TestTreeCustomType(t *testing.T) {
	r := require.New(t)

	brca1 := &gene{"BRCA1", 43044294, 43125483}
	nbr2 := &gene{"NBR2", 43125270, 43153785}
	tp53 := &gene{"TP53", 7668401, 7687550}

	tree, err := Build[int64]([]*gene{brca1, nbr2, tp53})
	r.NoError(err)

	r.ElementsMatch([]*gene{brca1, nbr2}, tree.Stab(43125300))
	r.Equal([]*gene{tp53}, tree.Stab(7668401))

	res, err := tree.Query(43125483, 43125484)
	r.NoError(err)
	r.Equal([]*gene{nbr2}, res)
}
