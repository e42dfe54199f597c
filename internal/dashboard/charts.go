package dashboard

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spacesedan/ytsentiment/internal/models"
	"github.com/spacesedan/ytsentiment/internal/processing"
)

const (
	CHART_WIDTH  = "900px"
	CHART_HEIGHT = "450px"
)

// BuildCharts lays out the interactive charts for one analysis. The daily
// trend is left out when the analysis has no rows.
func BuildCharts(a *models.Analysis) *components.Page {
	page := components.NewPage()
	page.PageTitle = "Sentiment charts"

	page.AddCharts(
		countsChart(a.LabelCounts),
		histogramChart(processing.ScoreHistogram(a.Comments, processing.HISTOGRAM_BINS)),
		boxPlotChart(a.ScoreStats),
	)
	if a.HasComments() {
		page.AddCharts(dailyChart(a.Daily))
	}
	return page
}

func initOpts(title string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Width: CHART_WIDTH, Height: CHART_HEIGHT}),
		charts.WithTitleOpts(opts.Title{Title: title}),
	}
}

func countsChart(counts []models.LabelCount) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(initOpts("Sentiment Distribution")...)

	labels := make([]string, len(counts))
	data := make([]opts.BarData, len(counts))
	for i, c := range counts {
		labels[i] = c.Label
		data[i] = opts.BarData{Value: c.Count}
	}

	bar.SetXAxis(labels).AddSeries("Count", data)
	return bar
}

func histogramChart(h processing.Histogram) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(initOpts("Sentiment Score Distribution by Category")...)

	bins := make([]string, 0, len(h.Edges))
	for i := 0; i+1 < len(h.Edges); i++ {
		bins = append(bins, fmt.Sprintf("%.3f-%.3f", h.Edges[i], h.Edges[i+1]))
	}
	bar.SetXAxis(bins)

	for _, label := range h.Labels {
		counts := h.Counts[label]
		data := make([]opts.BarData, len(counts))
		for i, c := range counts {
			data[i] = opts.BarData{Value: c}
		}
		bar.AddSeries(label, data, charts.WithBarChartOpts(opts.BarChart{Stack: "scores"}))
	}
	return bar
}

func boxPlotChart(stats []models.LabelStats) *charts.BoxPlot {
	box := charts.NewBoxPlot()
	box.SetGlobalOptions(initOpts("Sentiment Score Spread by Category")...)

	labels := make([]string, len(stats))
	data := make([]opts.BoxPlotData, len(stats))
	for i, s := range stats {
		labels[i] = s.Label
		data[i] = opts.BoxPlotData{Value: []float64{s.Min, s.Q1, s.Median, s.Q3, s.Max}}
	}

	box.SetXAxis(labels).AddSeries("Score", data)
	return box
}

func dailyChart(daily []models.DailySentiment) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(initOpts("Average Sentiment Over Time")...)

	dates := make([]string, len(daily))
	data := make([]opts.LineData, len(daily))
	for i, d := range daily {
		dates[i] = d.Date.Format("2006-01-02")
		data[i] = opts.LineData{Value: d.MeanSignedScore}
	}

	line.SetXAxis(dates).AddSeries("Mean signed score", data)
	return line
}
