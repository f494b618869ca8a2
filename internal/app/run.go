package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"campusair-server/internal/config"
	"campusair-server/internal/db"
	"campusair-server/internal/httpapi"
	"campusair-server/internal/metrics"
	air "campusair-server/internal/modules/air"
	"campusair-server/internal/modules/air/classify"
	"campusair-server/internal/modules/air/feed"
	"campusair-server/internal/modules/air/repository"
	"campusair-server/internal/modules/air/service"
	"campusair-server/internal/modules/air/timekey"
)

func Run(ctx context.Context, cfg config.Config) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"feedsFile", cfg.FeedsFile,
		"sqliteDriver", cfg.SQLiteDriver,
		"sqlitePath", cfg.SQLitePath,
		"sqliteMaxOpenConns", cfg.SQLiteMaxOpenConns,
		"sqliteMaxIdleConns", cfg.SQLiteMaxIdleConns,
	)

	dbConn, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(dbConn); closeErr != nil {
			slog.Error("db close", "error", closeErr)
		}
	}()

	if err := db.Migrate(dbConn); err != nil {
		return err
	}
	slog.Info("database ready")

	feedsCfg, err := feed.LoadConfig(cfg.FeedsFile)
	if err != nil {
		return err
	}
	loc, err := feedsCfg.Location()
	if err != nil {
		return err
	}

	keyer := timekey.New(loc)
	classifier := classify.New(feedsCfg.AliasTable())
	client := feed.NewClient(feedsCfg.FetchTimeout)

	sources := make([]service.FeedSource, 0, len(feedsCfg.Sources))
	for _, src := range feedsCfg.Sources {
		sources = append(sources, service.FeedSource{
			Source: feed.Source{Name: src.Name, URL: src.URL},
			Parser: feed.NewParser(src.SchemaFor(), keyer, classifier),
		})
	}

	m := metrics.New()
	settingsRepo := repository.NewRepository(dbConn)
	svc := service.NewService(slog.Default(), client, sources, settingsRepo, feedsCfg.Stations, m)

	mux := httpapi.NewMux(dbConn, m.Handler())
	air.RegisterFeature(mux, svc)
	srv := httpapi.NewServer(cfg, mux)

	pollCtx, stopPolling := context.WithCancel(ctx)
	defer stopPolling()
	go func() {
		if err := svc.Run(pollCtx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("poll loop stopped", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}
