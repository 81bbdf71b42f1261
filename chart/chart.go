// Package chart renders aggregated series as time-series charts: a PNG with
// two stacked subplots for the log-replay path, and an ASCII chart for the
// live terminal.
package chart

import (
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/temhumi/temhumi/aggregate"
)

// Fixed axis ranges. Out-of-range data is clipped visually, never rejected.
const (
	humidityAxisMin = 20
	humidityAxisMax = 100
	tempAxisMin     = 10
	tempAxisMax     = 40
)

var (
	humidityColor = color.RGBA{R: 0x00, G: 0xBF, B: 0xFF, A: 0xFF} // deep sky blue
	tempColor     = color.RGBA{R: 0xFF, G: 0x63, B: 0x47, A: 0xFF} // tomato

	fontCache = font.NewCache(liberation.Collection())
)

// RenderPNG draws the humidity and temperature series as two stacked
// charts, smoothed when possible, with the raw aggregated points overlaid
// as markers, and writes the result to path.
func RenderPNG(points []aggregate.Point, path string) error {
	if len(points) == 0 {
		return fmt.Errorf("chart: no points to render")
	}

	sum := aggregate.Summarize(points)

	xs := make([]float64, len(points))
	hs := make([]float64, len(points))
	ts := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(p.Center.Unix())
		hs[i] = p.Humidity
		ts[i] = p.Temperature
	}

	humPlot, err := seriesPlot(xs, hs, seriesOpts{
		title:  "Temperature and Humidity Data from Log File",
		yLabel: "Humidity (%)",
		yMin:   humidityAxisMin,
		yMax:   humidityAxisMax,
		legend: fmt.Sprintf("Humidity (avg: %.1f%%)", sum.Humidity.Mean),
		color:  humidityColor,
	})
	if err != nil {
		return err
	}

	tempPlot, err := seriesPlot(xs, ts, seriesOpts{
		xLabel: "Time",
		yLabel: "Temperature (°C)",
		yMin:   tempAxisMin,
		yMax:   tempAxisMax,
		legend: fmt.Sprintf("Temperature (avg: %.1f°C)", sum.Temperature.Mean),
		color:  tempColor,
	})
	if err != nil {
		return err
	}

	img := vgimg.New(14*vg.Inch, 10*vg.Inch)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Millimeter,
		PadBottom: 12 * vg.Millimeter, // room for the stats box
		PadLeft:   vg.Millimeter,
		PadRight:  vg.Millimeter,
	}

	plots := [][]*plot.Plot{{humPlot}, {tempPlot}}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	drawStats(dc, sum)

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type seriesOpts struct {
	title  string
	xLabel string
	yLabel string
	legend string
	yMin   float64
	yMax   float64
	color  color.RGBA
}

func seriesPlot(xs, ys []float64, opts seriesOpts) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.title
	p.X.Label.Text = opts.xLabel
	p.Y.Label.Text = opts.yLabel
	p.X.Tick.Marker = plot.TimeTicks{
		Format: "15:04",
		Time:   plot.UnixTimeIn(time.Local),
	}
	p.Add(plotter.NewGrid())

	sx, sy, ok := Smooth(xs, ys, SmoothFactor)
	if !ok && len(xs) >= minSplinePoints {
		fmt.Println("Spline interpolation failed; plotting raw series")
	}

	line, err := plotter.NewLine(xyPairs(sx, sy))
	if err != nil {
		return nil, err
	}
	line.Color = opts.color
	line.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add(opts.legend, line)
	p.Legend.Top = true

	// Overlay the raw aggregated points as markers.
	scatter, err := plotter.NewScatter(xyPairs(xs, ys))
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = opts.color
	scatter.GlyphStyle.Radius = vg.Points(2)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(scatter)

	// Pin the axis range after adding plotters so the data cannot widen it.
	p.Y.Min = opts.yMin
	p.Y.Max = opts.yMax

	return p, nil
}

func xyPairs(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

// drawStats writes the summary text in the bottom-left corner of the
// canvas, below the plots.
func drawStats(dc draw.Canvas, sum aggregate.Summary) {
	face := fontCache.Lookup(font.Font{Typeface: "Liberation", Variant: "Sans"}, vg.Points(9))
	dc.SetColor(color.Black)

	lines := strings.Split(sum.String(), "\n")
	lineHeight := vg.Points(11)
	x := 4 * vg.Millimeter
	y := 2 * vg.Millimeter

	// vg's origin is the lower-left corner, so draw bottom-up.
	for i := len(lines) - 1; i >= 0; i-- {
		dc.FillString(face, vg.Point{X: x, Y: y}, lines[i])
		y += lineHeight
	}
}
