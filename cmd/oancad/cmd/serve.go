package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/mackayauctioneers-design/oanca/internal/api/handlers"
	"github.com/mackayauctioneers-design/oanca/internal/api/middleware"
	"github.com/mackayauctioneers-design/oanca/internal/config"
	"github.com/mackayauctioneers-design/oanca/internal/engine"
	"github.com/mackayauctioneers-design/oanca/internal/notify"
	"github.com/mackayauctioneers-design/oanca/internal/store"
	"github.com/mackayauctioneers-design/oanca/internal/telemetry"
	"github.com/mackayauctioneers-design/oanca/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pricing API server and scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx := context.Background()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.Endpoint, cfg.Telemetry.ServiceName)
		if err != nil {
			return fmt.Errorf("setting up telemetry: %w", err)
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				log.Error("telemetry shutdown", "error", err)
			}
		}()
		log.Info("telemetry export enabled", "endpoint", cfg.Telemetry.Endpoint)
	}

	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	var notifier notify.Notifier = notify.NewNoOpNotifier(log)
	if cfg.Notifications.Discord.Enabled {
		notifier = notify.NewDiscordNotifier(cfg.Notifications.Discord.WebhookURL)
		log.Info("discord escalations enabled")
	}

	eng := engine.New(st, notifier,
		engine.WithLogger(log),
		engine.WithPoolLimit(cfg.Pricing.MaxPoolSize),
	)

	sched, err := engine.NewScheduler(eng, log, cfg.Schedule.LedgerAuditInterval.Std())
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	e := buildServer(cfg, log, st, eng)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func buildServer(
	cfg *config.Config,
	log *slog.Logger,
	st store.Store,
	eng *engine.Engine,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout.Std()
	e.Server.WriteTimeout = cfg.Server.WriteTimeout.Std()

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())
	e.Use(middleware.RateLimit(cfg.Pricing.RateLimit.PerSecond, cfg.Pricing.RateLimit.Burst))

	health := handlers.NewHealthHandler(st)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	humaCfg := huma.DefaultConfig("OANCA Pricing API", Version)
	api := humaecho.New(e, humaCfg)

	handlers.RegisterPriceRoutes(api, handlers.NewPriceHandler(eng))
	handlers.RegisterRecordRoutes(api, handlers.NewRecordsHandler(st))
	handlers.RegisterAuditRoutes(api, handlers.NewAuditsHandler(st))
	handlers.RegisterStatsRoutes(api, handlers.NewStatsHandler(st))

	return e
}
