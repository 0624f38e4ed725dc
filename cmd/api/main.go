package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/MYAIBV/my-ai-portfolio/internal/assist"
	"github.com/MYAIBV/my-ai-portfolio/internal/auth"
	"github.com/MYAIBV/my-ai-portfolio/internal/config"
	"github.com/MYAIBV/my-ai-portfolio/internal/kv"
	"github.com/MYAIBV/my-ai-portfolio/internal/middleware"
	"github.com/MYAIBV/my-ai-portfolio/internal/showcase"
	"github.com/MYAIBV/my-ai-portfolio/internal/users"
	"github.com/MYAIBV/my-ai-portfolio/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Without Redis the backend runs on the in-memory hash, enough for
	// local development; data does not survive a restart.
	var store kv.Hash = kv.NewMemory()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisStore *kv.RedisHash
		var err error
		if cfg.RedisURL != "" {
			redisStore, err = kv.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisStore = kv.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisStore.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		store = redisStore
	} else {
		logger.Warn("redis not configured, using in-memory store")
	}

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:   []byte(cfg.JWTSecret),
			TokenTTL: time.Duration(cfg.TokenTTLMinutes) * time.Minute,
			Issuer:   "my-ai-portfolio",
		}
	} else {
		logger.Warn("JWT_SECRET not set, login disabled")
	}

	val := validation.New()

	showcaseService := showcase.NewService(showcase.NewRepository(store))
	showcaseHandler := showcase.NewHandler(showcaseService, val, logger)

	userStore := users.NewStore(store)
	userHandler := users.NewHandler(userStore, jwtManager, val, logger, cfg.CookieSecure)

	assistClient := assist.NewClient(cfg.GeminiAPIKey, cfg.GeminiEndpoint)
	if assistClient == nil {
		logger.Info("ai assist disabled")
	} else {
		logger.Info("ai assist enabled")
	}
	assistHandler := assist.NewHandler(assistClient, val, logger)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(middleware.Session(jwtManager))

	window := time.Duration(cfg.RateLimitWindowSec) * time.Second
	loginLimiter := middleware.NewRateLimiter(cfg.RateLimitLogin, window)
	aiLimiter := middleware.NewRateLimiter(cfg.RateLimitAI, window)

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(a chi.Router) {
			a.With(loginLimiter.Middleware).Post("/login", userHandler.Login)
			a.Post("/logout", userHandler.Logout)
			a.Get("/me", userHandler.Me)
		})

		api.Route("/showcase", func(sc chi.Router) {
			sc.Get("/", showcaseHandler.List)
			sc.Get("/by-slug/{slug}", showcaseHandler.GetBySlug)
			sc.Get("/{id}", showcaseHandler.Get)

			sc.Group(func(protected chi.Router) {
				protected.Use(middleware.RequireUser)
				protected.Post("/", showcaseHandler.Create)
				protected.Put("/{id}", showcaseHandler.Update)
				protected.Delete("/{id}", showcaseHandler.Delete)
			})
		})

		// The assist client may sleep through rate-limit retries, so
		// this route deliberately has no chi timeout middleware.
		api.With(middleware.RequireUser, aiLimiter.Middleware).Post("/ai", assistHandler.Assist)
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
