package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"play_insights/internal/config"
	"play_insights/internal/domain/service/catalog"
	"play_insights/internal/domain/service/stats"
	"play_insights/internal/infrastructure/datastore"
	"play_insights/internal/infrastructure/kaggle"
	"play_insights/internal/server"
	"play_insights/pkg/application/connectors"
	"play_insights/pkg/application/modules"
	"play_insights/pkg/contextx"
	"play_insights/pkg/logx"
	"play_insights/pkg/middlewarex"
)

func Run(ctx context.Context, log *slog.Logger) error {
	ctx = contextx.WithLogger(ctx, log)

	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	// 2. Таблица строится один раз на старте; дальше только чтение.
	// Ошибка получения датасета фатальна для сессии.
	table, err := loadTable(ctx, cfg)
	if err != nil {
		return fmt.Errorf("loadTable: %w", err)
	}

	log.Info("catalog ready",
		slog.Int("apps", table.Len()),
		slog.Int("categories", len(table.Categories())),
	)

	// 3. Сервисы и HTTP
	statsService := stats.NewService(table)
	srv := server.NewServer(server.NewCatalogServer(table, statsService))

	router := chi.NewRouter()
	router.Use(middlewarex.TraceID)
	router.Use(middlewarex.Logger)
	router.Use(middlewarex.Recovery)

	if cfg.App.LogRequests {
		masker := logx.NewSensitiveDataMasker()
		router.Use(middlewarex.RequestLogging(masker, cfg.App.LogFieldMaxLen))
		router.Use(middlewarex.ResponseLogging(masker, cfg.App.LogFieldMaxLen))
	}

	srv.RegisterRoutes(router)

	httpServer := &http.Server{ //nolint:exhaustruct
		Addr:    cfg.HTTP.ListenAddress,
		Handler: router,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, httpServer)
	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Probe.ListenAddress,
	}.Run(ctx, g)
	modules.MetricServer{ListenAddress: cfg.Metrics.ListenAddress}.Run(ctx, g)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

// loadTable отдаёт очищенную таблицу: сначала общий кеш (если настроен),
// затем Kaggle API с локальным файловым кешем.
func loadTable(ctx context.Context, cfg config.Config) (catalog.Table, error) {
	loader := catalog.NewLoader(kaggle.NewClient(cfg.Kaggle, cfg.App.LogFieldMaxLen))

	if !cfg.Redis.Enabled() {
		return loader.Load(ctx)
	}

	rd := &connectors.Redis{ //nolint:exhaustruct
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	defer rd.Close(ctx)

	datasetCache := datastore.NewDatasetCache(rd.Client(ctx), cfg.Redis.DatasetCacheTTL)

	apps, ok, err := datasetCache.Get(ctx, cfg.Kaggle.Dataset)
	if err != nil {
		// Кеш необязательный: промах или недоступность — не повод падать.
		logger(ctx).Warn("shared dataset cache unavailable", logx.Error(err))
	}

	if ok {
		logger(ctx).Info("dataset loaded from shared cache", slog.Int("apps", len(apps)))

		return catalog.NewTable(apps), nil
	}

	table, err := loader.Load(ctx)
	if err != nil {
		return catalog.Table{}, err
	}

	if err := datasetCache.Set(ctx, cfg.Kaggle.Dataset, table.Apps()); err != nil {
		logger(ctx).Warn("failed to populate shared dataset cache", logx.Error(err))
	}

	return table, nil
}
