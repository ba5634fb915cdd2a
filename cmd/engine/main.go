package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/lmittmann/tint"
	"github.com/redis/go-redis/v9"

	"heron-feed/internal/cache"
	"heron-feed/internal/config"
	"heron-feed/internal/engine"
	"heron-feed/internal/handlers"
	"heron-feed/internal/middleware"
	"heron-feed/internal/posting"
	"heron-feed/internal/render"
	"heron-feed/internal/state"
	"heron-feed/internal/textparse"
	"heron-feed/internal/utils"
	"heron-feed/internal/websocket"
)

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

// newAuthorCache picks the backend configured for author lookups.
func newAuthorCache(cfg *config.CacheConfig, logger *slog.Logger) (cache.AuthorCache, error) {
	switch cfg.Backend {
	case "memory":
		return cache.NewMemory(), nil
	case "mongo":
		logger.Info("connecting author cache", "backend", "mongo")
		return cache.NewMongo(cfg.MongoURI)
	case "redis":
		logger.Info("connecting author cache", "backend", "redis", "addr", cfg.RedisAddr)
		return cache.NewRedis(&redis.Options{Addr: cfg.RedisAddr}, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg.Debug)
	slog.SetDefault(logger)

	metrics := utils.NewMetricsCollector()

	authorCache, err := newAuthorCache(cfg.Cache, logger)
	if err != nil {
		logger.Error("author cache init failed", "error", err)
		os.Exit(1)
	}

	// Hub fans notifications and navigation events out to connected sessions.
	hub := websocket.NewHub()
	go hub.Run()

	upstream := posting.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Token)
	upstream.HTTPClient.Timeout = cfg.Upstream.Timeout

	store := state.NewStore()
	sink := cache.NewSink(authorCache, metrics)
	registry := render.NewRegistry(textparse.New(), sink, logger)

	system := actor.NewActorSystem()
	feedEngine := engine.NewEngine(system, store, registry, upstream, hub, hub, metrics)
	defer feedEngine.Shutdown()

	sessions := middleware.NewSessions(cfg.JWTSecret)
	server := handlers.NewServer(system, feedEngine, metrics, hub, sessions)

	corsConfig := middleware.DefaultCORSConfig(cfg.AllowedOrigins)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting feed engine", "addr", serverAddr, "cache", cfg.Cache.Backend, "upstream", cfg.Upstream.BaseURL)
	if err := http.ListenAndServe(serverAddr, server.Routes(corsConfig)); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
