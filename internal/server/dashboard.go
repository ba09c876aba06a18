package server

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"play_insights/pkg/rest"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

//nolint:gochecknoglobals
var dashboardTemplate = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html"))

type dashboardData struct {
	Params     rest.FilterParams
	Categories []string
	Summary    rest.Summary
	AvgRating  float64
	TopApps    []rest.App
	// Query — выбранный фильтр в виде query string для ссылок на графики.
	Query template.URL
	Empty bool
}

func (s CatalogServer) getDashboard(w http.ResponseWriter, r *http.Request) error {
	params, filter, err := s.filterFromRequest(r)
	if err != nil {
		return err
	}

	summary := s.stats.Summary(filter)

	query := url.Values{}
	if params.Category != "" {
		query.Set("category", params.Category)
	}

	if params.Type != "" {
		query.Set("type", params.Type)
	}

	data := dashboardData{
		Params:     params,
		Categories: s.table.Categories(),
		Summary:    newRESTSummary(summary),
		TopApps:    newRESTApps(s.stats.TopByInstalls(filter, defaultTopApps)),
		Query:      template.URL(query.Encode()), //nolint:gosec // собрано из url.Values
		Empty:      summary.Count == 0,
	}

	if summary.AvgRating != nil {
		data.AvgRating = *summary.AvgRating
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := dashboardTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("dashboardTemplate.Execute: %w", err)
	}

	return nil
}
