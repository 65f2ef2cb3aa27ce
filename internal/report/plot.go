package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/Hesham33Hh/Global-bond-analytics/internal/pipeline"
	"github.com/Hesham33Hh/Global-bond-analytics/internal/varmodel"
)

const chartDPI = 150

// Charts renders PNG line charts into Dir, printing a confirmation per
// saved file.
type Charts struct {
	Dir string
	W   io.Writer
}

// NewCharts creates the output directory if needed.
func NewCharts(dir string, w io.Writer) (*Charts, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}
	return &Charts{Dir: dir, W: w}, nil
}

// IRFCharts draws one chart per (response, impulse) variable pair over
// the given horizon.
func (c *Charts) IRFCharts(pack *pipeline.ResultsPack, country string, horizon int) error {
	ir, ok := pack.Model.(varmodel.ImpulseResponder)
	if !ok {
		return fmt.Errorf("model does not expose impulse responses")
	}
	for imp, impName := range pack.Variables {
		irfMat, err := ir.IRF(horizon, imp)
		if err != nil {
			return fmt.Errorf("irf for shock %s: %w", impName, err)
		}
		for resp, respName := range pack.Variables {
			pts := make(plotter.XYs, horizon)
			for h := 0; h < horizon; h++ {
				pts[h].X = float64(h)
				pts[h].Y = irfMat.At(h, resp)
			}

			pl := plot.New()
			pl.Title.Text = fmt.Sprintf("IRF: response %s to shock in %s", respName, impName)
			pl.X.Label.Text = "Horizon"
			pl.Y.Label.Text = "Response"
			line, err := plotter.NewLine(pts)
			if err != nil {
				return fmt.Errorf("irf line: %w", err)
			}
			pl.Add(line)

			name := fmt.Sprintf("irf_%s_%s_to_%s.png", slug(country), slug(respName), slug(impName))
			if err := c.save(pl, name); err != nil {
				return err
			}
		}
	}
	return nil
}

// ForecastCharts draws one level-forecast chart per variable.
func (c *Charts) ForecastCharts(fc *pipeline.Forecast, country string) error {
	for j, name := range fc.Names {
		pts := make(plotter.XYs, len(fc.Steps))
		for i, step := range fc.Steps {
			pts[i].X = float64(step)
			pts[i].Y = fc.Levels.At(i, j)
		}

		pl := plot.New()
		pl.Title.Text = fmt.Sprintf("Forecast (levels): %s", name)
		pl.X.Label.Text = "Step"
		pl.Y.Label.Text = name
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("forecast line: %w", err)
		}
		pl.Add(line)

		if err := c.save(pl, fmt.Sprintf("forecast_%s_%s.png", slug(country), slug(name))); err != nil {
			return err
		}
	}
	return nil
}

// RealVsPred draws observed against predicted values for one variable.
func (c *Charts) RealVsPred(years []int, yTrue, yPred []float64, country, variable string) error {
	if len(years) != len(yTrue) || len(yTrue) != len(yPred) {
		return fmt.Errorf("real-vs-pred: mismatched lengths %d/%d/%d", len(years), len(yTrue), len(yPred))
	}

	truePts := make(plotter.XYs, len(years))
	predPts := make(plotter.XYs, len(years))
	for i, y := range years {
		truePts[i].X, truePts[i].Y = float64(y), yTrue[i]
		predPts[i].X, predPts[i].Y = float64(y), yPred[i]
	}

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("%s - Real vs Predicted (%s)", country, variable)
	pl.X.Label.Text = "Year"
	pl.Y.Label.Text = "%"
	pl.Add(plotter.NewGrid())

	realLine, realPts, err := plotter.NewLinePoints(truePts)
	if err != nil {
		return fmt.Errorf("real line: %w", err)
	}
	predLine, predMarks, err := plotter.NewLinePoints(predPts)
	if err != nil {
		return fmt.Errorf("predicted line: %w", err)
	}
	predMarks.Shape = draw.PyramidGlyph{}
	pl.Add(realLine, realPts, predLine, predMarks)
	pl.Legend.Add("Real", realLine, realPts)
	pl.Legend.Add("Predicted", predLine, predMarks)

	return c.save(pl, fmt.Sprintf("real_vs_pred_%s_%s.png", slug(country), slug(variable)))
}

// save renders the plot to PNG at fixed DPI and prints a confirmation.
func (c *Charts) save(pl *plot.Plot, name string) error {
	path := filepath.Join(c.Dir, name)

	img := vgimg.NewWith(
		vgimg.UseWH(6*vg.Inch, 4*vg.Inch),
		vgimg.UseDPI(chartDPI),
	)
	pl.Draw(draw.New(img))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Fprintf(c.W, "[OK] chart saved: %s\n", path)
	return nil
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ReplaceAll(s, string(filepath.Separator), "_")
}
