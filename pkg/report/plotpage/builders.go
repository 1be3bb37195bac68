package plotpage

import (
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Chart sizing.
const (
	chartWidth       = "100%"
	barRowHeight     = 36
	minBarHeight     = 240
	barChartPadding  = 120
	pieChartHeight   = "420px"
	emptyChartHeight = "160px"
)

var pieRadius = []string{"35%", "65%"}

// Point is one labeled value.
type Point struct {
	Label string
	Value float64
}

// BuildHBarChart builds a horizontal bar chart, one bar per point, in point
// order from the top.
func BuildHBarChart(theme Theme, title, subtitle, valueName string, points []Point) *charts.Bar {
	co := NewChartOpts(theme)
	bar := charts.NewBar()

	if len(points) == 0 {
		bar.SetGlobalOptions(
			charts.WithInitializationOpts(co.Init(chartWidth, emptyChartHeight)),
			charts.WithTitleOpts(co.Title(title, "No data")),
		)

		return bar
	}

	height := max(len(points)*barRowHeight+barChartPadding, minBarHeight)

	bar.SetGlobalOptions(
		charts.WithInitializationOpts(co.Init(chartWidth, strconv.Itoa(height)+"px")),
		charts.WithTitleOpts(co.Title(title, subtitle)),
		charts.WithTooltipOpts(co.Tooltip("axis")),
		charts.WithGridOpts(co.Grid()),
		charts.WithXAxisOpts(co.ValueAxis(valueName)),
		charts.WithYAxisOpts(co.CategoryAxis()),
	)

	labels := make([]string, len(points))
	data := make([]opts.BarData, len(points))

	for i, p := range points {
		labels[i] = p.Label
		data[i] = opts.BarData{Value: p.Value}
	}

	bar.SetXAxis(labels).
		AddSeries(valueName, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: GetChartPalette(theme).Accent})).
		XYReversal()

	return bar
}

// BuildPieChart builds a ring chart of the points.
func BuildPieChart(theme Theme, title, subtitle string, points []Point) *charts.Pie {
	co := NewChartOpts(theme)
	pie := charts.NewPie()

	if len(points) == 0 {
		pie.SetGlobalOptions(
			charts.WithInitializationOpts(co.Init(chartWidth, emptyChartHeight)),
			charts.WithTitleOpts(co.Title(title, "No data")),
		)

		return pie
	}

	pie.SetGlobalOptions(
		charts.WithInitializationOpts(co.Init(chartWidth, pieChartHeight)),
		charts.WithTitleOpts(co.Title(title, subtitle)),
		charts.WithTooltipOpts(co.Tooltip("item")),
		charts.WithLegendOpts(co.Legend()),
	)

	palette := GetChartPalette(theme)
	data := make([]opts.PieData, len(points))

	for i, p := range points {
		data[i] = opts.PieData{
			Name:      p.Label,
			Value:     p.Value,
			ItemStyle: &opts.ItemStyle{Color: palette.Color(i)},
		}
	}

	pie.AddSeries(title, data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}: {d}%",
				Color:     co.TextMutedColor(),
			}),
			charts.WithPieChartOpts(opts.PieChart{Radius: pieRadius}),
		)

	return pie
}
