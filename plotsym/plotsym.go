// Package plotsym renders a front tree's chain layout as an SVG, for
// inspecting the shape of a symbolic analysis result by eye. It has no
// bearing on the analysis itself — purely a diagnostic aid, grounded on
// gonum.org/v1/plot the way the teacher repo uses it for its own example
// plots (plotter.XYs scatter/line data driven by a small in-memory
// dataset, no file I/O beyond the final Save call).
package plotsym

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/sparselu/usymlu/fronttree"
)

// Tree renders t's fronts as points (x = front index, y = row count) with
// a line connecting each front to its parent, giving a quick visual read
// on chain lengths and frontal-matrix size growth toward the root.
func Tree(t *fronttree.Tree) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "frontal tree"
	p.X.Label.Text = "front index"
	p.Y.Label.Text = "nrows"

	pts := make(plotter.XYs, t.Nfr)
	for f := 0; f < t.Nfr; f++ {
		pts[f].X = float64(f)
		pts[f].Y = float64(t.NRows[f])
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("plotsym: %w", err)
	}
	p.Add(scatter)

	var edges plotter.XYs
	for f := 0; f < t.Nfr; f++ {
		if parent := t.Parent[f]; parent != fronttree.NoParent() {
			edges = append(edges, plotter.XY{X: float64(f), Y: float64(t.NRows[f])})
			edges = append(edges, plotter.XY{X: float64(parent), Y: float64(t.NRows[parent])})
		}
	}
	if len(edges) > 0 {
		line, err := plotter.NewLine(edges)
		if err != nil {
			return nil, fmt.Errorf("plotsym: %w", err)
		}
		p.Add(line)
	}
	return p, nil
}

// SaveSVG renders Tree(t) to path as an SVG of the given size in points.
func SaveSVG(t *fronttree.Tree, width, height vg.Length, path string) error {
	p, err := Tree(t)
	if err != nil {
		return err
	}
	return p.Save(width, height, path)
}
