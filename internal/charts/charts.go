// Package charts renders the dashboard's category and trend charts as PNG.
package charts

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"tally/internal/core"
)

// ErrNoData is returned when there is nothing to draw. go-chart refuses
// empty series, so callers render a placeholder instead.
var ErrNoData = errors.New("no data to chart")

// Generator draws charts styled with one user's settings.
type Generator struct {
	Width    int
	Height   int
	settings core.UserSettings
}

// NewGenerator returns a generator with the user's colors and currency.
func NewGenerator(settings core.UserSettings) *Generator {
	return &Generator{Width: 800, Height: 500, settings: settings}
}

// Categories draws the breakdown as the user's preferred chart type.
func (g *Generator) Categories(w io.Writer, breakdown []core.CategoryAmount) error {
	values := g.values(breakdown)
	if len(values) == 0 {
		return ErrNoData
	}

	var err error
	switch g.settings.ChartType {
	case core.ChartBar:
		err = g.bar(w, "Spending by category", values)
	case core.ChartDoughnut:
		donut := chart.DonutChart{
			Width:      g.Width,
			Height:     g.Height,
			Values:     values,
			Background: g.background(),
		}
		err = donut.Render(chart.PNG, w)
	default:
		pie := chart.PieChart{
			Width:      g.Width,
			Height:     g.Height,
			Values:     values,
			Background: g.background(),
		}
		err = pie.Render(chart.PNG, w)
	}
	if err != nil {
		return fmt.Errorf("failed to render category chart: %w", err)
	}
	return nil
}

// Trend draws one bar per month, oldest first.
func (g *Generator) Trend(w io.Writer, trend []core.MonthlyAmount) error {
	values := make([]chart.Value, 0, len(trend))
	for _, m := range trend {
		values = append(values, chart.Value{
			Label: core.NewDate(m.Year, m.Month, 1).Format("Jan 06"),
			Value: m.Amount.Major(),
		})
	}
	if len(values) == 0 {
		return ErrNoData
	}
	if err := g.bar(w, "Monthly spending", values); err != nil {
		return fmt.Errorf("failed to render trend chart: %w", err)
	}
	return nil
}

func (g *Generator) bar(w io.Writer, title string, values []chart.Value) error {
	fill := hexColor(g.settings.PrimaryColor, chart.ColorBlue)
	stroke := hexColor(g.settings.SecondaryColor, chart.ColorBlack)

	top := 0.0
	for i := range values {
		values[i].Style = chart.Style{FillColor: fill, StrokeColor: stroke, StrokeWidth: 1}
		if values[i].Value > top {
			top = values[i].Value
		}
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      g.Width,
		Height:     g.Height,
		BarWidth:   barWidth(g.Width, len(values)),
		Background: g.background(),
		YAxis: chart.YAxis{
			// A single bar has no range of its own.
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: func(v interface{}) string {
				f, _ := v.(float64)
				return g.settings.FormatMoney(core.Money{Cents: int64(f * 100)})
			},
		},
		Bars: values,
	}
	return graph.Render(chart.PNG, w)
}

// values keeps positive totals and labels them with the formatted amount.
func (g *Generator) values(breakdown []core.CategoryAmount) []chart.Value {
	out := make([]chart.Value, 0, len(breakdown))
	for _, c := range breakdown {
		if c.Amount.Cents <= 0 {
			continue
		}
		out = append(out, chart.Value{
			Label: fmt.Sprintf("%s: %s", c.Name, g.settings.FormatMoney(c.Amount)),
			Value: c.Amount.Major(),
		})
	}
	return out
}

func (g *Generator) background() chart.Style {
	return chart.Style{
		Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		FillColor: chart.ColorWhite,
	}
}

func barWidth(width, n int) int {
	w := (width - 100) / (n * 2)
	switch {
	case w < 10:
		return 10
	case w > 80:
		return 80
	}
	return w
}

func hexColor(hex string, fallback drawing.Color) drawing.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return fallback
	}
	return drawing.ColorFromHex(hex)
}
