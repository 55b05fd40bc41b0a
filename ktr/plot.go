package ktr

import (
	"image/color"
	"math"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotLevels writes a diagnostic chart of the fit to the given file: the
// response series, the reconstructed level curve and the level knots. The
// output format follows the file extension (png, svg, pdf).
func (f *Fit) PlotLevels(path string) error {
	levels, err := f.Levels()
	if err != nil {
		return err
	}
	levelCol, err := levels.Column("level")
	if err != nil {
		return err
	}
	knotTable, err := f.LevelKnots()
	if err != nil {
		return err
	}
	knotCol, err := knotTable.Column("level_knot")
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "fitted level"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Y.Label.Text = f.model.cfg.ResponseCol

	response, err := plotter.NewLine(timeXYs(f.meta.Dates, f.meta.Response))
	if err != nil {
		return err
	}
	response.Color = color.RGBA{R: 0x90, G: 0x90, B: 0x90, A: 0xff}

	level, err := plotter.NewLine(timeXYs(f.meta.Dates, levelCol))
	if err != nil {
		return err
	}
	level.Color = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	level.Width = vg.Points(1.5)

	knotPoints, err := plotter.NewScatter(timeXYs(knotTable.Dates(), knotCol))
	if err != nil {
		return err
	}
	knotPoints.Color = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}

	p.Add(response, level, knotPoints)
	p.Legend.Add(f.model.cfg.ResponseCol, response)
	p.Legend.Add("level", level)
	p.Legend.Add("level knots", knotPoints)
	p.Legend.Top = true

	return p.Save(10*vg.Inch, 4*vg.Inch, path)
}

// timeXYs pairs dates with values for plotting, skipping NaN values so gaps in
// the response do not break the line.
func timeXYs(dates []time.Time, values []float64) plotter.XYs {
	xys := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(dates[i].Unix()), Y: v})
	}
	return xys
}
