package monitoring

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// TrainingCurve collects per-episode training progress for charting.
type TrainingCurve struct {
	Episodes []int
	Returns  []float64
	Averages []float64
	Scores   []int
}

// Record appends one episode
func (c *TrainingCurve) Record(episode int, ret, average float64, score int) {
	c.Episodes = append(c.Episodes, episode)
	c.Returns = append(c.Returns, ret)
	c.Averages = append(c.Averages, average)
	c.Scores = append(c.Scores, score)
}

// Len is the number of recorded episodes
func (c *TrainingCurve) Len() int { return len(c.Episodes) }

// RenderLearningCurve writes an HTML page with the episode return, its
// moving average and the score per episode.
func RenderLearningCurve(w io.Writer, curve *TrainingCurve, title string) error {
	if curve.Len() == 0 {
		return ErrEmptyCurve
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d episodes", curve.Len()),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	xs := make([]string, curve.Len())
	returns := make([]opts.LineData, curve.Len())
	averages := make([]opts.LineData, curve.Len())
	scores := make([]opts.LineData, curve.Len())
	for i := range curve.Episodes {
		xs[i] = strconv.Itoa(curve.Episodes[i])
		returns[i] = opts.LineData{Value: curve.Returns[i]}
		averages[i] = opts.LineData{Value: curve.Averages[i]}
		scores[i] = opts.LineData{Value: curve.Scores[i]}
	}

	line.SetXAxis(xs).
		AddSeries("return", returns).
		AddSeries(fmt.Sprintf("avg%d", DefaultWindow), averages).
		AddSeries("score", scores)

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(line)
	return page.Render(w)
}

// WriteLearningCurve renders the curve to an HTML file, creating parent
// directories as needed.
func WriteLearningCurve(path string, curve *TrainingCurve, title string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create chart directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := RenderLearningCurve(f, curve, title); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
