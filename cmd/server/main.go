package main

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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/shopreviews/modules/reviews"
	"github.com/dmitrymomot/shopreviews/pkg/config"
	"github.com/dmitrymomot/shopreviews/pkg/httpserver"
	"github.com/dmitrymomot/shopreviews/pkg/i18n"
	"github.com/dmitrymomot/shopreviews/pkg/logger"
	"github.com/dmitrymomot/shopreviews/pkg/pg"
	"github.com/dmitrymomot/shopreviews/pkg/redis"
	"github.com/dmitrymomot/shopreviews/pkg/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := config.LoadEnv(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
		logger.WithContextExtractors(session.LogExtractor),
	}
	if cfg.LogLevel != "" {
		logOpts = append(logOpts, logger.WithLevelName(cfg.LogLevel))
	}
	log := logger.New(logOpts...)

	var (
		storage reviews.Storage
		checks  []func(context.Context) error
	)
	switch cfg.Storage {
	case storageMemory:
		log.WarnContext(ctx, "reviews are kept in memory and lost on restart")
		storage = reviews.NewMemoryStorage()
	case storagePostgres:
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := pg.Migrate(ctx, pool, pgCfg, log, pg.WithMigrationsFS(reviews.Migrations, "migrations")); err != nil {
			return err
		}
		storage = reviews.NewPGStorage(pool)
		checks = append(checks, pg.Healthcheck(pool))
	default:
		return fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	var sessCfg session.Config
	if err := config.Load(&sessCfg); err != nil {
		return err
	}
	sessOpts := []session.Option{session.WithConfig(sessCfg), session.WithLogger(log)}
	if sessCfg.Store == sessionRedis {
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()

		sessOpts = append(sessOpts, session.WithStore(session.NewRedisStore(client, sessCfg.RedisPrefix)))
		checks = append(checks, redis.Healthcheck(client))
	}
	sessions := session.New(sessOpts...)

	translator, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(reviews.Locales, "locales"),
		i18n.WithDefaultLanguage(cfg.DefaultLanguage),
		i18n.WithLogger(log),
		i18n.WithMissingTranslationsLogging(cfg.isDevelopment()),
	)
	if err != nil {
		return err
	}

	var reviewsCfg reviews.Config
	if err := config.Load(&reviewsCfg); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	reviewsHandler := reviews.NewHandler(reviewsCfg, storage, translator,
		reviews.WithHandlerLogger(log),
		reviews.WithHandlerMetrics(reviews.NewMetrics(reg)),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, checks...))
	r.Handle(cfg.MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(sessions.Middleware)
		r.Use(i18n.Middleware(translator))

		r.Mount(cfg.ReviewsPath, reviewsHandler.Routes())
		if cfg.isDevelopment() {
			r.Get("/dev/login", devLogin(sessions, cfg.ReviewsPath))
		}
	})

	var srvCfg httpserver.Config
	if err := config.Load(&srvCfg); err != nil {
		return err
	}
	return httpserver.New(srvCfg, httpserver.WithLogger(log)).Run(ctx, r)
}

// requestLogger logs every finished request with its status and duration.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()
			next.ServeHTTP(ww, r)
			log.LogAttrs(r.Context(), slog.LevelInfo, "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(started)),
			)
		})
	}
}

// devLogin signs in as ?user_id=... so the account pages can be tried
// without the shop's login flow.
func devLogin(sessions *session.Manager, next string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		if _, err := sessions.Authenticate(r.Context(), w, r, userID, false); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Redirect(w, r, next, http.StatusSeeOther)
	}
}
