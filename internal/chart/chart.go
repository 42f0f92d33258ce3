// Package chart renders comparison grids as PNG images: one bar panel
// per measurement, every panel sharing axes so ratios are comparable
// across the grid.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/enersim/simprof/internal/compare"
	"github.com/enersim/simprof/internal/errorutil"
	"github.com/enersim/simprof/internal/quantile"
)

type Options struct {
	// DeviationBars draws each bar from the baseline instead of from
	// zero, so small ratios near 1.0 remain visible.
	DeviationBars bool
}

var (
	colorImprovement = color.RGBA{R: 46, G: 139, B: 87, A: 255}
	colorDegradation = color.RGBA{R: 220, G: 20, B: 60, A: 255}
	colorNeutral     = color.RGBA{R: 112, G: 128, B: 144, A: 255}
)

const (
	panelWidth  = 4 * vg.Inch
	panelHeight = 3 * vg.Inch
)

var barWidth = vg.Points(9)

// RenderGrid draws one panel per comparison into a tiled PNG. Grids
// larger than MaxCharts are truncated to the first MaxCharts panels.
func RenderGrid(w io.Writer, comparisons []compare.Comparison, opts Options) error {
	if len(comparisons) == 0 {
		return errorutil.ErrNothingToRender
	}
	if len(comparisons) > MaxCharts {
		comparisons = comparisons[:MaxCharts]
	}

	cols := Columns(len(comparisons))
	rows := Rows(len(comparisons), cols)
	yMin, yMax := ratioBounds(comparisons, opts.DeviationBars)

	plots := make([][]*plot.Plot, rows)
	for row := 0; row < rows; row++ {
		plots[row] = make([]*plot.Plot, cols)
		for col := 0; col < cols; col++ {
			i := row*cols + col
			if i >= len(comparisons) {
				continue
			}
			p, err := panel(comparisons[i], opts, yMin, yMax)
			if err != nil {
				return err
			}
			// Function names only appear under the last panel of
			// each column.
			if i+cols < len(comparisons) {
				p.X.Tick.Marker = plot.ConstantTicks(nil)
			}
			if col != 0 {
				p.Y.Label.Text = ""
			}
			plots[row][col] = p
		}
	}

	img := vgimg.New(vg.Length(cols)*panelWidth, vg.Length(rows)*panelHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows,
		Cols: cols,
		PadX: vg.Points(4),
		PadY: vg.Points(4),
	}
	canvases := plot.Align(plots, tiles, dc)
	for row := range plots {
		for col, p := range plots[row] {
			if p == nil {
				continue
			}
			p.Draw(canvases[row][col])
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("writing comparison grid: %w", err)
	}
	return nil
}

// RenderGridFile renders the grid into a PNG file at path.
func RenderGridFile(path string, comparisons []compare.Comparison, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := RenderGrid(f, comparisons, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func panel(c compare.Comparison, opts Options, yMin, yMax float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s\noverall ratio %.3f (%s)", c.Name, c.OverallRatio, compare.Classify(c.OverallRatio))
	p.Title.TextStyle.Font.Size = vg.Points(8)
	p.Y.Label.Text = "time ratio vs baseline"
	p.Y.Min = yMin
	p.Y.Max = yMax

	names := make([]string, len(c.Entries))
	groups := []struct {
		verdict compare.Verdict
		color   color.RGBA
	}{
		{compare.VerdictImprovement, colorImprovement},
		{compare.VerdictDegradation, colorDegradation},
		{compare.VerdictNeutral, colorNeutral},
	}
	for _, group := range groups {
		values := make(plotter.Values, len(c.Entries))
		var present bool
		for i, entry := range c.Entries {
			names[i] = entry.Function
			if compare.Classify(entry.Ratio) != group.verdict {
				continue
			}
			present = true
			if opts.DeviationBars {
				values[i] = entry.Ratio - 1
			} else {
				values[i] = entry.Ratio
			}
		}
		if !present {
			continue
		}
		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return nil, fmt.Errorf("building bars for %s: %w", c.Name, err)
		}
		bars.Color = group.color
		bars.LineStyle.Width = 0
		p.Add(bars)
	}

	baseline := baselineMarker(len(c.Entries), opts.DeviationBars)
	p.Add(baseline)

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.Font.Size = vg.Points(6)
	return p, nil
}

// baselineMarker draws the dashed parity line: ratio 1.0 normally, the
// zero axis in deviation mode.
func baselineMarker(entries int, deviation bool) *plotter.Line {
	y := 1.0
	if deviation {
		y = 0.0
	}
	line, _ := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: y},
		{X: float64(entries) - 0.5, Y: y},
	})
	line.Color = color.Black
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	return line
}

// ratioBounds computes y-limits shared by every panel so bars are
// comparable across the grid. Limits always include the dead band
// around the baseline plus some headroom.
func ratioBounds(comparisons []compare.Comparison, deviation bool) (float64, float64) {
	var ratios []float64
	for _, c := range comparisons {
		ratios = append(ratios, c.Ratios()...)
	}
	lo, hi := quantile.Bounds(ratios)
	if len(ratios) == 0 {
		lo, hi = 1, 1
	}

	if deviation {
		dev := math.Max(math.Abs(lo-1), math.Abs(hi-1))
		dev = math.Max(dev, 0.2)
		return -dev * 1.1, dev * 1.1
	}

	yMin := math.Min(lo*0.95, 0.8)
	yMax := math.Max(hi*1.05, 1.2)
	return math.Max(yMin, 0), yMax
}
