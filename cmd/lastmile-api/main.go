// README: Entry point; loads config, wires services, starts HTTP server and background loops.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lastmile/internal/catalog"
	"lastmile/internal/config"
	httptransport "lastmile/internal/http"
	"lastmile/internal/infra"
	"lastmile/internal/modules/cluster"
	"lastmile/internal/modules/demand"
	"lastmile/internal/modules/dispatch"
	"lastmile/internal/modules/fleet"
	"lastmile/internal/modules/live"
	"lastmile/internal/modules/request"
	"lastmile/internal/modules/route"
	"lastmile/internal/routing"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat := catalog.New()

	var archive *request.Archive
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return fmt.Errorf("db init: %w", err)
		}
		defer dbPool.Close()
		archive = request.NewArchive(dbPool)
		if err := archive.Init(ctx); err != nil {
			return fmt.Errorf("archive init: %w", err)
		}
	} else {
		log.Info("request archive disabled: no LM_DB_DSN")
	}

	requestSvc := request.NewService(request.NewStore(), cat, archive, route.MaxCapacity(), log)

	provider, err := newProvider(cfg.Routing)
	if err != nil {
		return fmt.Errorf("routing provider: %w", err)
	}
	if provider == nil {
		log.Info("road routing disabled: straight-line estimates only")
	}
	builder := route.NewBuilder(provider, cfg.Routing.Timeout, cfg.Routing.FallbackSpeedKmh, log)

	view := live.NewView(cfg.Feed.RetireAfter, log)

	dispatchSvc := dispatch.NewService(
		requestSvc,
		cluster.NewEngine(route.MaxCapacity()),
		builder,
		view,
		cfg.Dispatch.TriggerThreshold,
		cfg.Dispatch.BuildParallelism,
		log,
	)
	go dispatchSvc.Run(ctx)

	if cfg.Feed.URL != "" {
		feed := live.NewFeedClient(cfg.Feed.URL, cfg.Feed.Timeout)
		poller := live.NewPoller(view, feed, cfg.Feed.Interval, cfg.Feed.Timeout, log)
		go poller.Run(ctx)
	} else {
		log.Info("feed polling disabled: no LM_FEED_URL")
	}

	var fleetSvc *fleet.Service
	if cfg.Redis.Addr != "" {
		redisClient := infra.NewRedis(cfg.Redis.Addr)
		defer func() { _ = redisClient.Close() }()
		fleetSvc = fleet.NewService(fleet.NewStore(redisClient), log)
		go fleetSvc.RunStaleSweep(ctx, time.Minute, 10*time.Minute)
	} else {
		log.Info("fleet tracking disabled: no LM_REDIS_ADDR")
	}

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Catalog:  cat,
		Requests: requestSvc,
		Dispatch: dispatchSvc,
		View:     view,
		Fleet:    fleetSvc,
		Demand:   demand.NewGenerator(requestSvc, cat, time.Now().UnixNano(), log),
		Log:      log,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info("listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func newProvider(cfg config.RoutingConfig) (routing.Provider, error) {
	switch cfg.Provider {
	case "ors":
		return routing.NewORSProvider(cfg.ORSKey, cfg.ORSBaseURL, cfg.Timeout)
	case "google":
		return routing.NewGoogleProvider(cfg.GoogleKey)
	case "", "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown routing provider %q", cfg.Provider)
	}
}
