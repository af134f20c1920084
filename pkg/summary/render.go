package summary

import (
	"fmt"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/config"
)

type chartRenderer struct {
	width  int
	height int
}

// NewChartRenderer creates the bar-chart PNG renderer for summary images.
func NewChartRenderer(cfg *config.ImageConfig) *chartRenderer {
	return &chartRenderer{
		width:  cfg.Width,
		height: cfg.Height,
	}
}

// Render draws the top-GDP bar chart and writes it to path. The file is
// written to a temp sibling first and renamed, so readers of the cache path
// never observe a half-written image.
func (r *chartRenderer) Render(p *Projection, path string) error {
	bars := make([]chart.Value, 0, len(p.Top))
	for _, c := range p.Top {
		if c.EstimatedGDP == nil {
			continue
		}
		bars = append(bars, chart.Value{
			Label: c.Name,
			Value: *c.EstimatedGDP,
		})
	}
	if len(bars) == 0 {
		// The chart library rejects an empty series; an explicit placeholder
		// keeps the cache file in sync with an empty store.
		bars = append(bars, chart.Value{Label: "no data", Value: 1})
	}

	title := fmt.Sprintf("Top %d countries by estimated GDP (%d countries tracked)", TopN, p.Total)
	if p.LastRefreshedAt != nil {
		title = fmt.Sprintf("%s - refreshed %s", title, p.LastRefreshedAt.UTC().Format("2006-01-02 15:04 MST"))
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    r.width,
		Height:   r.height,
		BarWidth: 80,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.Style{},
		YAxis: chart.YAxis{
			ValueFormatter: gdpValueFormatter,
		},
		Bars: bars,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create image cache dir: %w", err)
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	if err := graph.Render(chart.PNG, f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close image file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to move image into place: %w", err)
	}
	return nil
}

// gdpValueFormatter renders axis ticks as compact billions/millions.
func gdpValueFormatter(v any) string {
	value, ok := v.(float64)
	if !ok {
		return ""
	}
	switch {
	case value >= 1e12:
		return fmt.Sprintf("%.1fT", value/1e12)
	case value >= 1e9:
		return fmt.Sprintf("%.1fB", value/1e9)
	case value >= 1e6:
		return fmt.Sprintf("%.1fM", value/1e6)
	default:
		return fmt.Sprintf("%.0f", value)
	}
}
