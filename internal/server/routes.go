package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"play_insights/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) { //nolint:funlen
	r.Get("/", handler(s.getDashboard))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/apps", func(r chi.Router) {
			r.Get("/", handler(s.getV1Apps))
			r.Get("/summary", handler(s.getV1AppsSummary))
			r.Get("/installs-by-category", handler(s.getV1InstallsByCategory))
		})

		r.Get("/categories", handler(s.getV1Categories))

		r.Route("/charts", func(r chi.Router) {
			r.Get("/installs.png", handler(s.getV1ChartInstalls))
			r.Get("/prices.png", handler(s.getV1ChartPrices))
			r.Get("/ratings.png", handler(s.getV1ChartRatings))
			r.Get("/avg-installs.png", handler(s.getV1ChartAvgInstalls))
		})

		r.Get("/export.xlsx", handler(s.getV1Export))
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
