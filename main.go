package main

import (
	"io"
	"log"
	"net/http"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/TimilsinaBimal/tmdb-addon/config"
	"github.com/TimilsinaBimal/tmdb-addon/handlers"
	"github.com/TimilsinaBimal/tmdb-addon/internal/cache"
	"github.com/TimilsinaBimal/tmdb-addon/services/cinemeta"
	"github.com/TimilsinaBimal/tmdb-addon/services/metadata"
	"github.com/TimilsinaBimal/tmdb-addon/services/rpdb"
	"github.com/TimilsinaBimal/tmdb-addon/services/tmdb"
	"github.com/TimilsinaBimal/tmdb-addon/utils"
)

func main() {
	cfg := config.Load()

	if cfg.LogFile != "" {
		log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    20, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}))
	}

	if cfg.TMDBAPIKey == "" {
		log.Fatal("[main] TMDB_API is required")
	}

	var store cache.Store
	switch {
	case cfg.NoCache:
		log.Printf("[main] caching disabled")
	case cfg.CacheDB != "":
		s, err := cache.NewSQLiteStore(cfg.CacheDB)
		if err != nil {
			log.Fatalf("[main] open cache store: %v", err)
		}
		store = s
		log.Printf("[main] using sqlite cache at %s", cfg.CacheDB)
	default:
		store = cache.NewMemoryStore(cfg.MetaTTL)
		log.Printf("[main] using in-memory cache")
	}

	overrides, err := metadata.LoadOverrides()
	if err != nil {
		log.Fatalf("[main] load overrides: %v", err)
	}

	service := metadata.NewService(
		tmdb.NewClient(cfg.TMDBAPIKey, nil),
		cinemeta.NewClient(nil),
		rpdb.NewClient(nil),
		store,
		overrides,
		cfg.HostName,
		cfg.MetaTTL,
		cfg.CatalogTTL,
	)

	router := utils.NewRouter()
	handlers.NewAddonHandler(service).Register(router)

	addr := ":" + cfg.Port
	log.Printf("[main] listening on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("[main] server: %v", err)
	}
}
