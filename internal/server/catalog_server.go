package server

import (
	"fmt"
	"net/http"

	"play_insights/internal/domain/entity"
	"play_insights/internal/domain/service/catalog"
	"play_insights/internal/domain/service/stats"
	"play_insights/internal/domain/value"
	"play_insights/pkg/httpx/reply"
	"play_insights/pkg/rest"
)

const (
	defaultTopApps        = 10
	chartTopCategories    = 15
	chartAvgTopCategories = 10
	priceHistogramBins    = 30
)

type statsService interface {
	Summary(value.Filter) stats.Summary
	InstallsByCategory(value.Filter, int) []stats.CategoryInstalls
	AvgInstallsByCategory(value.Filter, int) []stats.CategoryInstalls
	TopByInstalls(value.Filter, int) []entity.App
	PriceHistogram(value.Filter, int) stats.Histogram
}

type CatalogServer struct {
	table catalog.Table
	stats statsService
}

func NewCatalogServer(table catalog.Table, stats statsService) CatalogServer {
	return CatalogServer{
		table: table,
		stats: stats,
	}
}

func (s CatalogServer) filterFromRequest(r *http.Request) (rest.FilterParams, value.Filter, error) {
	params, err := newFilterParams(r)
	if err != nil {
		return rest.FilterParams{}, value.Filter{}, fmt.Errorf("newFilterParams: %w", err)
	}

	filter, err := newDomainFilter(params)
	if err != nil {
		return rest.FilterParams{}, value.Filter{}, fmt.Errorf("newDomainFilter: %w", err)
	}

	return params, filter, nil
}

func (s CatalogServer) getV1Apps(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	params, filter, err := s.filterFromRequest(r)
	if err != nil {
		return err
	}

	apps := s.table.Filter(filter)

	if params.Limit > 0 && len(apps) > params.Limit {
		apps = apps[:params.Limit]
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTApps(apps))

	return nil
}

func (s CatalogServer) getV1AppsSummary(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	_, filter, err := s.filterFromRequest(r)
	if err != nil {
		return err
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSummary(s.stats.Summary(filter)))

	return nil
}

func (s CatalogServer) getV1InstallsByCategory(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	params, filter, err := s.filterFromRequest(r)
	if err != nil {
		return err
	}

	limit := params.Limit
	if limit == 0 {
		limit = chartTopCategories
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTCategoryInstalls(s.stats.InstallsByCategory(filter, limit)))

	return nil
}

func (s CatalogServer) getV1Categories(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	reply.JSON(ctx, w, http.StatusOK, rest.Catalog{
		Categories: s.table.Categories(),
		Types:      []string{value.AppTypeFree.String(), value.AppTypePaid.String()},
	})

	return nil
}
