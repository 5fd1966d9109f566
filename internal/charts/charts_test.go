package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"

	"tally/internal/core"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestCategories_AllChartTypes(t *testing.T) {
	breakdown := []core.CategoryAmount{
		{Name: "Food", Amount: core.Money{Cents: 5000}},
		{Name: "Travel", Amount: core.Money{Cents: 12000}},
		{Name: "Empty", Amount: core.Money{}},
	}

	for _, kind := range core.ChartTypes {
		t.Run(kind, func(t *testing.T) {
			settings := core.DefaultSettings(1)
			settings.ChartType = kind

			var buf bytes.Buffer
			require.NoError(t, NewGenerator(settings).Categories(&buf, breakdown))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic), "output should be a PNG")
		})
	}
}

func TestCategories_NoData(t *testing.T) {
	var buf bytes.Buffer
	err := NewGenerator(core.DefaultSettings(1)).Categories(&buf, []core.CategoryAmount{{Name: "Zero"}})
	assert.ErrorIs(t, err, ErrNoData)
	assert.Zero(t, buf.Len())
}

func TestTrend(t *testing.T) {
	g := NewGenerator(core.DefaultSettings(1))

	var buf bytes.Buffer
	err := g.Trend(&buf, []core.MonthlyAmount{{Year: 2026, Month: 3, Amount: core.Money{Cents: 1500}}})
	require.NoError(t, err, "a single month still renders")
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	assert.ErrorIs(t, g.Trend(&bytes.Buffer{}, nil), ErrNoData)
}

func TestValuesLabels(t *testing.T) {
	settings := core.DefaultSettings(1)
	settings.CurrencyCode = "USD"
	settings.CurrencySymbol = "$"
	g := NewGenerator(settings)

	values := g.values([]core.CategoryAmount{{Name: "Food", Amount: core.Money{Cents: 123456}}})
	require.Len(t, values, 1)
	assert.Equal(t, "Food: "+settings.FormatMoney(core.Money{Cents: 123456}), values[0].Label)
	assert.InDelta(t, 1234.56, values[0].Value, 0.001)
}

func TestHexColorFallback(t *testing.T) {
	assert.Equal(t, chart.ColorBlack, hexColor("not-a-color", chart.ColorBlack))
	assert.NotEqual(t, chart.ColorBlack, hexColor("#007bff", chart.ColorBlack))
	assert.Equal(t, 10, barWidth(800, 100))
	assert.Equal(t, 80, barWidth(800, 1))
}
