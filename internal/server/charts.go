package server

import (
	"fmt"
	"net/http"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"play_insights/internal/domain/entity"
	"play_insights/pkg/lox"
)

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 4 * vg.Inch

	barWidth = vg.Length(20)
)

func (s CatalogServer) getV1ChartInstalls(w http.ResponseWriter, r *http.Request) error {
	_, filter, err := s.filterFromRequest(r)
	if err != nil {
		return err
	}

	data := s.stats.InstallsByCategory(filter, chartTopCategories)
	if len(data) == 0 {
		w.WriteHeader(http.StatusNoContent)

		return nil
	}

	p := plot.New()
	p.Title.Text = "Total installs by category"
	p.Y.Label.Text = "Installs"

	values := make(plotter.Values, len(data))
	names := make([]string, len(data))

	for i, d := range data {
		values[i] = d.Installs
		names[i] = d.Category
	}

	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return fmt.Errorf("plotter.NewBarChart: %w", err)
	}

	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars, plotter.NewGrid())
	p.NominalX(names...)

	return writeChartPNG(w, p)
}

func (s CatalogServer) getV1ChartAvgInstalls(w http.ResponseWriter, r *http.Request) error {
	_, filter, err := s.filterFromRequest(r)
	if err != nil {
		return err
	}

	data := s.stats.AvgInstallsByCategory(filter, chartAvgTopCategories)
	if len(data) == 0 {
		w.WriteHeader(http.StatusNoContent)

		return nil
	}

	p := plot.New()
	p.Title.Text = "Average installs by category"
	p.Y.Label.Text = "Installs per app"

	values := make(plotter.Values, len(data))
	names := make([]string, len(data))

	for i, d := range data {
		values[i] = d.Installs
		names[i] = d.Category
	}

	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return fmt.Errorf("plotter.NewBarChart: %w", err)
	}

	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars, plotter.NewGrid())
	p.NominalX(names...)

	return writeChartPNG(w, p)
}

func (s CatalogServer) getV1ChartPrices(w http.ResponseWriter, r *http.Request) error {
	_, filter, err := s.filterFromRequest(r)
	if err != nil {
		return err
	}

	histogram := s.stats.PriceHistogram(filter, priceHistogramBins)
	if histogram.Empty() {
		w.WriteHeader(http.StatusNoContent)

		return nil
	}

	p := plot.New()
	p.Title.Text = "Paid app price distribution"
	p.X.Label.Text = "Price ($)"
	p.Y.Label.Text = "Apps"

	values := make(plotter.Values, len(histogram.Counts))
	names := make([]string, len(histogram.Counts))

	for i, count := range histogram.Counts {
		values[i] = float64(count)
		names[i] = fmt.Sprintf("%.1f", float64(i)*histogram.BinWidth)
	}

	bars, err := plotter.NewBarChart(values, barWidth/2)
	if err != nil {
		return fmt.Errorf("plotter.NewBarChart: %w", err)
	}

	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars, plotter.NewGrid())
	p.NominalX(names...)

	return writeChartPNG(w, p)
}

func (s CatalogServer) getV1ChartRatings(w http.ResponseWriter, r *http.Request) error {
	_, filter, err := s.filterFromRequest(r)
	if err != nil {
		return err
	}

	apps := s.table.Filter(filter)
	if len(apps) == 0 {
		w.WriteHeader(http.StatusNoContent)

		return nil
	}

	p := plot.New()
	p.Title.Text = "Rating vs reviews"
	p.X.Label.Text = "Reviews"
	p.Y.Label.Text = "Rating"
	p.Y.Max = 5

	points := lox.Map(apps, func(app entity.App) plotter.XY {
		return plotter.XY{
			X: float64(app.Reviews),
			Y: app.Rating,
		}
	})

	scatter, err := plotter.NewScatter(plotter.XYs(points))
	if err != nil {
		return fmt.Errorf("plotter.NewScatter: %w", err)
	}

	scatter.GlyphStyle.Radius = vg.Points(2)

	p.Add(scatter, plotter.NewGrid())

	return writeChartPNG(w, p)
}

func writeChartPNG(w http.ResponseWriter, p *plot.Plot) error {
	writerTo, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return fmt.Errorf("plot.WriterTo: %w", err)
	}

	w.Header().Set("Content-Type", "image/png")

	if _, err := writerTo.WriteTo(w); err != nil {
		return fmt.Errorf("writerTo.WriteTo: %w", err)
	}

	return nil
}
