package regions

import (
	"cmp"
	"slices"
	"strings"

	"github.com/anrid/itree/pkg/interval"
	"github.com/anrid/itree/pkg/locus"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type tree = interval.Tree[int64, Region]

// Index holds one interval tree per contig. It is read-only once built and
// may be queried from many goroutines at once.
type Index struct {
	trees map[string]*tree
	size  int
}

// NewIndex groups regions by contig and builds the contig trees in parallel.
func NewIndex(regions []Region) (*Index, error) {
	byContig := make(map[string][]Region)
	for _, r := range regions {
		byContig[r.Contig] = append(byContig[r.Contig], r)
	}

	contigs := make([]string, 0, len(byContig))
	for c := range byContig {
		contigs = append(contigs, c)
	}
	slices.Sort(contigs)

	built := make([]*tree, len(contigs))

	var g errgroup.Group
	for i, c := range contigs {
		g.Go(func() error {
			t, err := interval.Build[int64](byContig[c])
			if err != nil {
				return errors.Wrapf(err, "could not index contig %s", c)
			}
			built[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	idx := &Index{
		trees: make(map[string]*tree, len(contigs)),
		size:  len(regions),
	}
	for i, c := range contigs {
		idx.trees[c] = built[i]
		logger().Debug("indexed contig",
			zap.String("contig", c),
			zap.Int("regions", built[i].Len()),
			zap.Int("height", built[i].Height()))
	}

	logger().Info("built region index", zap.Int("regions", idx.size), zap.Int("contigs", len(contigs)))

	return idx, nil
}

// Len returns the total number of regions.
func (idx *Index) Len() int {
	return idx.size
}

// Contigs returns the indexed contig names in sorted order.
func (idx *Index) Contigs() []string {
	contigs := make([]string, 0, len(idx.trees))
	for c := range idx.trees {
		contigs = append(contigs, c)
	}
	slices.Sort(contigs)
	return contigs
}

// Stab returns the regions on contig that contain pos, sorted by position.
func (idx *Index) Stab(contig string, pos int64) []Region {
	t, ok := idx.trees[contig]
	if !ok {
		return nil
	}
	return sorted(t.Stab(pos))
}

// Query returns the regions overlapping l, sorted by position.
func (idx *Index) Query(l locus.Locus) ([]Region, error) {
	if l.Start >= l.Stop {
		return nil, errors.Wrapf(interval.ErrInvalidRange, "query %s", l)
	}
	t, ok := idx.trees[l.Contig]
	if !ok {
		return nil, nil
	}
	found, err := t.Query(l.Start, l.Stop)
	if err != nil {
		return nil, errors.Wrapf(err, "query %s", l)
	}
	return sorted(found), nil
}

// FuzzyQuery returns the regions overlapping l whose boundaries are within the
// margin allowed by coverage, see interval.Tree.FuzzyQuery.
func (idx *Index) FuzzyQuery(l locus.Locus, coverage float64) ([]Region, error) {
	if l.Start >= l.Stop {
		return nil, errors.Wrapf(interval.ErrInvalidRange, "fuzzy query %s", l)
	}
	t, ok := idx.trees[l.Contig]
	if !ok {
		return nil, nil
	}
	found, err := t.FuzzyQuery(l.Start, l.Stop, coverage)
	if err != nil {
		return nil, errors.Wrapf(err, "fuzzy query %s", l)
	}
	return sorted(found), nil
}

func sorted(regions []Region) []Region {
	slices.SortFunc(regions, func(a, b Region) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Stop, b.Stop); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return regions
}
