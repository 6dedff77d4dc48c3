// Package plotting renders aggregated benchmark records as error-barred
// line charts.
package plotting

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

// Render draws every series on one chart and saves it as both PNG and PDF
// next to pathPrefix.
func Render(series []Series, xLabel, yLabel, pathPrefix string) error {
	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	p := plot.New()
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Min = 0
	p.Y.Min = 0
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, s := range series {
		pts := errPoints{
			XYs:     make(plotter.XYs, len(s.X)),
			YErrors: make(plotter.YErrors, len(s.X)),
		}
		for j := range s.X {
			pts.XYs[j] = plotter.XY{X: s.X[j], Y: s.Y[j]}
			pts.YErrors[j].Low = s.YErr[j]
			pts.YErrors[j].High = s.YErr[j]
		}

		line, markers, err := plotter.NewLinePoints(pts.XYs)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(2)
		markers.Color = plotutil.Color(i)
		markers.Shape = plotutil.Shape(i)

		bars, err := plotter.NewYErrorBars(pts)
		if err != nil {
			return err
		}
		bars.Color = plotutil.Color(i)

		p.Add(line, markers, bars)
		p.Legend.Add(s.Label, line, markers)
	}

	for _, ext := range []string{".png", ".pdf"} {
		if err := p.Save(6*vg.Inch, 4*vg.Inch, pathPrefix+ext); err != nil {
			return err
		}
	}
	return nil
}
