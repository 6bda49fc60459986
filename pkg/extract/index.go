package extract

import (
	"github.com/dhconnelly/rtreego"

	"github.com/GeoscienceAustralia/Georegulation/internal/enc"
)

// ChartEntry is one chart in the spatial index.
type ChartEntry struct {
	Path     string
	Name     string
	Coverage enc.Bounds
	Scale    int
}

// Bounds implements rtreego.Spatial.
func (e ChartEntry) Bounds() rtreego.Rect {
	point := rtreego.Point{e.Coverage.MinLon, e.Coverage.MinLat}
	lengths := []float64{
		e.Coverage.MaxLon - e.Coverage.MinLon,
		e.Coverage.MaxLat - e.Coverage.MinLat,
	}
	// Degenerate extents (single-point charts) still need a valid rect.
	for i := range lengths {
		if lengths[i] <= 0 {
			lengths[i] = 1e-9
		}
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// ChartIndex answers "which charts cover this area" without re-parsing.
// Used to restrict a run to a geographic region before extraction begins.
type ChartIndex struct {
	entries []ChartEntry
	rtree   *rtreego.Rtree
}

// BuildChartIndex parses every chart once and indexes its coverage bounds.
// Unreadable charts are returned as errors but do not fail the index; they
// will be reported again as failures during extraction.
func BuildChartIndex(paths []string, parser enc.Parser) (*ChartIndex, []error) {
	idx := &ChartIndex{rtree: rtreego.NewTree(2, 25, 50)}
	var errs []error

	for _, path := range paths {
		chart, err := parser.Parse(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entry := ChartEntry{
			Path:     path,
			Name:     chart.DatasetName(),
			Coverage: chart.Bounds(),
			Scale:    chart.CompilationScale(),
		}
		idx.entries = append(idx.entries, entry)
		idx.rtree.Insert(entry)
	}

	return idx, errs
}

// Query returns the paths of charts whose coverage intersects b, in the
// order they were indexed.
func (idx *ChartIndex) Query(b enc.Bounds) []string {
	rect := ChartEntry{Coverage: b}.Bounds()
	matches := idx.rtree.SearchIntersect(rect)

	found := make(map[string]bool, len(matches))
	for _, m := range matches {
		found[m.(ChartEntry).Path] = true
	}

	var paths []string
	for _, e := range idx.entries {
		if found[e.Path] {
			paths = append(paths, e.Path)
		}
	}
	return paths
}

// Len returns the number of indexed charts.
func (idx *ChartIndex) Len() int { return len(idx.entries) }
