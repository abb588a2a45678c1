// Package figure draws the tail cross-section curves and the W spectrum of
// the contributions.
package figure

import (
	"fmt"
	"image/color"
	"math"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var palette = []color.Color{
	color.RGBA{R: 31, G: 119, B: 180, A: 255},
	color.RGBA{R: 255, G: 127, B: 14, A: 255},
	color.RGBA{R: 44, G: 160, B: 44, A: 255},
	color.RGBA{R: 214, G: 39, B: 40, A: 255},
}

const (
	Width  = 9 * vg.Inch
	Height = 8 * vg.Inch
)

type Curve struct {
	Label  string
	X, Y   []float64
	Dotted bool
}

type LogLog struct {
	Title  string
	XLabel string
	YLabel string
	XRange [2]float64
	YRange [2]float64
	Curves []Curve
}

// positive keeps the points a log scale can show.
func positive(x, y []float64) plotter.XYs {
	xys := make(plotter.XYs, 0, len(x))
	for i := range x {
		if x[i] > 0 && y[i] > 0 && !math.IsInf(y[i], 0) {
			xys = append(xys, plotter.XY{X: x[i], Y: y[i]})
		}
	}
	return xys
}

func (ll LogLog) Plot() (*hplot.Plot, error) {
	p := hplot.New()
	p.Title.Text = ll.Title
	p.X.Label.Text = ll.XLabel
	p.Y.Label.Text = ll.YLabel
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = true
	p.Legend.Padding = 2 * vg.Millimeter

	for i, curve := range ll.Curves {
		if len(curve.X) != len(curve.Y) {
			return nil, fmt.Errorf("curve %q has %d x and %d y values", curve.Label, len(curve.X), len(curve.Y))
		}
		xys := positive(curve.X, curve.Y)
		if len(xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = palette[i%len(palette)]
		if curve.Dotted {
			line.LineStyle.Dashes = []vg.Length{vg.Points(1), vg.Points(3)}
		}
		p.Add(line)
		p.Legend.Add(curve.Label, line)
	}
	// after Add, which widens the axes to the data
	p.X.Min, p.X.Max = ll.XRange[0], ll.XRange[1]
	p.Y.Min, p.Y.Max = ll.YRange[0], ll.YRange[1]
	return p, nil
}

// Save writes the plot once per file name; the extension selects the format.
func Save(p *hplot.Plot, files ...string) error {
	for _, file := range files {
		if err := p.Save(Width, Height, file); err != nil {
			return fmt.Errorf("saving %s: %w", file, err)
		}
	}
	return nil
}

// LogEdges returns n+1 logarithmically spaced bin edges over [lo, hi].
func LogEdges(lo, hi float64, n int) []float64 {
	edges := make([]float64, n+1)
	step := math.Log(hi/lo) / float64(n)
	for i := range edges {
		edges[i] = lo * math.Exp(step*float64(i))
	}
	edges[n] = hi
	return edges
}

// Spectrum bins the interval contributions at the interval midpoints, so
// that the histogram content of a bin is the cross-section collected in it.
func Spectrum(w, areas, edges []float64) (*hbook.H1D, error) {
	if len(w) != len(areas)+1 {
		return nil, fmt.Errorf("%d grid points for %d intervals", len(w), len(areas))
	}
	h := hbook.NewH1DFromEdges(edges)
	for i := range areas {
		h.Fill(0.5*(w[i]+w[i+1]), areas[i])
	}
	return h, nil
}

func SpectrumPlot(title, xLabel, yLabel string, spectra map[string]*hbook.H1D, order []string) *hplot.Plot {
	p := hplot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = true
	for i, name := range order {
		h, some := spectra[name]
		if !some {
			continue
		}
		hh := hplot.NewH1D(h)
		hh.LineStyle.Width = vg.Points(1.5)
		hh.LineStyle.Color = palette[i%len(palette)]
		p.Add(hh)
		p.Legend.Add(name, hh)
	}
	return p
}
