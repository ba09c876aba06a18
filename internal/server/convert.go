package server

import (
	"fmt"
	"net/http"

	"play_insights/internal/domain/entity"
	"play_insights/internal/domain/service/stats"
	"play_insights/internal/domain/value"
	"play_insights/pkg/httpx/req"
	"play_insights/pkg/lox"
	"play_insights/pkg/rest"
)

func newFilterParams(r *http.Request) (rest.FilterParams, error) {
	query := r.URL.Query()

	limit, err := req.QueryInt(query, "limit", 0)
	if err != nil {
		return rest.FilterParams{}, fmt.Errorf("req.QueryInt: %w", err)
	}

	params := rest.FilterParams{
		Category: query.Get("category"),
		Type:     query.Get("type"),
		Limit:    limit,
	}

	if err := req.Validate(r.Context(), params); err != nil {
		return rest.FilterParams{}, fmt.Errorf("req.Validate: %w", err)
	}

	return params, nil
}

func newDomainFilter(params rest.FilterParams) (value.Filter, error) {
	appType, err := value.ParseTypeSelection(params.Type)
	if err != nil {
		return value.Filter{}, fmt.Errorf("value.ParseTypeSelection: %w", err)
	}

	return value.Filter{
		Category: params.Category,
		Type:     appType,
	}, nil
}

func newRESTApp(app entity.App) rest.App {
	return rest.App{
		Name:            app.Name,
		Category:        app.Category,
		Rating:          app.Rating,
		Reviews:         app.Reviews,
		Installs:        app.Installs,
		SizeMB:          app.SizeMB,
		Type:            app.Type.String(),
		Price:           app.Price,
		PopularityScore: app.PopularityScore,
	}
}

func newRESTApps(apps []entity.App) []rest.App {
	return lox.Map(apps, newRESTApp)
}

func newRESTSummary(summary stats.Summary) rest.Summary {
	return rest.Summary{
		Count:     summary.Count,
		AvgRating: summary.AvgRating,
		TopApp:    newRESTSummaryApp(summary.TopApp),
		TopPaid:   newRESTSummaryApp(summary.TopPaid),
	}
}

func newRESTSummaryApp(app *stats.AppScore) *rest.SummaryApp {
	if app == nil {
		return nil
	}

	return &rest.SummaryApp{
		Name:  app.Name,
		Value: app.Value,
	}
}

func newRESTCategoryInstalls(aggregates []stats.CategoryInstalls) []rest.CategoryInstalls {
	return lox.Map(aggregates, func(a stats.CategoryInstalls) rest.CategoryInstalls {
		return rest.CategoryInstalls{
			Category: a.Category,
			Installs: a.Installs,
		}
	})
}
