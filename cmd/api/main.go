//	@title			Blog Media API
//	@version		1.0
//	@description	Media resolution and delivery for the blog: serve-by-id route and post read API.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Editor JWT. Format: **Bearer {token}**

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/amtop/blog/internal/config"
	"github.com/amtop/blog/internal/db"
	"github.com/amtop/blog/internal/health"
	"github.com/amtop/blog/internal/logging"
	"github.com/amtop/blog/internal/media"
	appMiddleware "github.com/amtop/blog/internal/middleware"
	"github.com/amtop/blog/internal/post"
	"github.com/amtop/blog/internal/storage"

	_ "github.com/amtop/blog/docs/swagger"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, !cfg.IsProduction())

	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL, log); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	// The backend is chosen once from the environment and never re-evaluated.
	plugin := storage.Select(cfg.Env, cfg.MediaStaticDir)
	log.Info().
		Str("mode", string(plugin.Mode)).
		Str("bucket", plugin.Bucket).
		Str("static_dir", plugin.StaticDir).
		Msg("media storage selected")

	backend, err := storage.Open(ctx, plugin)
	if err != nil {
		log.Fatal().Err(err).Msg("object storage init failed")
	}
	defer backend.Close()

	checks := []health.Check{
		{Name: "database", Pinger: pool},
		{Name: "storage", Pinger: backend},
	}

	// Wire dependencies: repository → (cache) → handler
	var mediaStore media.Store = media.NewRepository(pool)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		mediaStore = media.NewCachedStore(mediaStore, rdb, cfg.MediaCacheTTL)
		checks = append(checks, health.Check{
			Name:   "cache",
			Pinger: health.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		})
		log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.MediaCacheTTL).Msg("media record cache enabled")
	}

	resolver := media.NewResolver(cfg.SiteURL)
	mediaHandler := media.NewHandler(mediaStore, plugin.StaticDir, cfg.SiteURL)

	postRepo := post.NewRepository(pool)
	postSvc := post.NewService(postRepo, resolver)
	postHandler := post.NewHandler(postSvc)

	healthHandler := health.NewHandler(string(plugin.Mode), checks...)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// Swagger UI at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Route("/media/serve", func(r chi.Router) {
			// No id segment: the handler answers 400.
			r.Get("/", mediaHandler.Serve)
			r.Head("/", mediaHandler.Serve)
			r.Get("/{id}", mediaHandler.Serve)
			r.Head("/{id}", mediaHandler.Serve)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.List)
			r.Get("/{slug}", postHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(appMiddleware.RequireEditor(cfg.JWTSecret))
				r.Get("/{slug}/preview", postHandler.Preview)
			})
		})
	})

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// Large media files stream to slow clients.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("server listening")
		log.Info().Msgf("swagger UI at http://localhost:%s/swagger/", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-quit
	log.Info().Msg("shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
		return
	}

	log.Info().Msg("server stopped")
}
