package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	rowsReadTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "play_insights",
		Subsystem: "catalog",
		Name:      "rows_read_total",
		Help:      "Raw rows read from the dataset extract.",
	})

	rowsDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "play_insights",
		Subsystem: "catalog",
		Name:      "rows_dropped_total",
		Help:      "Rows dropped by the cleaning pipeline, by reason.",
	}, []string{"reason"})
)
