// Package gridplot renders diagnostic plots of vision grids.
package gridplot

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/blobstats/internal/vision/l4grid"
)

// Options controls plot output. Zero values select the defaults.
type Options struct {
	Title  string
	Width  vg.Length
	Height vg.Length
	Colors int // palette size
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "Sample occupancy"
	}
	if o.Width <= 0 {
		o.Width = 6 * vg.Inch
	}
	if o.Height <= 0 {
		o.Height = 4 * vg.Inch
	}
	if o.Colors <= 1 {
		o.Colors = 12
	}
	return o
}

// occupancy exposes per-node sample counts as a plotter.GridXYZ. Columns
// map to x and rows to y, so row 0 is drawn at the bottom.
type occupancy struct {
	g *l4grid.SampleGrid
}

func (o occupancy) Dims() (c, r int) { return o.g.Cols(), o.g.Rows() }

func (o occupancy) Z(c, r int) float64 { return float64(o.g.SamplesAt(r, c)) }

func (o occupancy) X(c int) float64 { return float64(c) }

func (o occupancy) Y(r int) float64 { return float64(r) }

// OccupancyPlot builds a heat map of the sample counts of g.
func OccupancyPlot(g *l4grid.SampleGrid, opts Options) (*plot.Plot, error) {
	if g == nil {
		return nil, errors.New("occupancy plot of nil grid")
	}
	opts = opts.withDefaults()

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Column"
	p.Y.Label.Text = "Row"

	hm := plotter.NewHeatMap(occupancy{g: g}, palette.Heat(opts.Colors, 1))
	if hm.Max <= hm.Min {
		// a flat grid still needs a non-empty colour range
		hm.Max = hm.Min + 1
	}
	p.Add(hm)
	return p, nil
}

// SaveOccupancy writes the occupancy heat map of g to path. The image
// format follows the file extension (png, svg, pdf, ...).
func SaveOccupancy(g *l4grid.SampleGrid, path string, opts Options) error {
	p, err := OccupancyPlot(g, opts)
	if err != nil {
		return err
	}
	opts = opts.withDefaults()
	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("save occupancy plot %s: %w", path, err)
	}
	return nil
}
