package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"gp-tracker/internal/api"
	"gp-tracker/internal/db"
	"gp-tracker/internal/logger"
	"gp-tracker/internal/pricing"
	"gp-tracker/internal/store"
	"gp-tracker/internal/wiki"
)

var version = "dev"

func main() {
	port := flag.Int("port", 13380, "HTTP server port")
	contact := flag.String("contact", "", "contact address sent in the feed User-Agent (required by the feed's usage policy)")
	feedURL := flag.String("feed", wiki.DefaultBaseURL, "price feed base URL")
	flag.Parse()

	logger.Banner(version)

	wd, _ := os.Getwd()
	dataDir := filepath.Join(wd, "data")

	database, err := db.Open(filepath.Join(wd, "tracker.db"))
	if err != nil {
		logger.Error("DB", fmt.Sprintf("Failed to open database: %v", err))
		os.Exit(1)
	}
	defer database.Close()

	snapshots, err := store.New(dataDir)
	if err != nil {
		logger.Error("Store", fmt.Sprintf("Failed to create data dir: %v", err))
		os.Exit(1)
	}

	userAgent := fmt.Sprintf("gp-tracker/%s", version)
	if *contact != "" {
		userAgent += " - " + *contact
	}
	client := wiki.NewClient(*feedURL, userAgent, wiki.DefaultRetryPolicy())

	cache := pricing.NewCache(pricing.DefaultTTL)
	resolver := pricing.NewResolver(cache, nil)
	refresher := pricing.NewRefresher(client, cache, snapshots, pricing.DefaultTTL)

	logger.Info("Price", fmt.Sprintf("Fallback table %s (%d entries)", pricing.FallbackTableVersion, len(pricing.FallbackPrices)))

	// Warm the cache from the persisted snapshot, then refresh if stale.
	// Until either completes, resolution runs on the fallback table alone.
	go func() {
		records, meta, err := snapshots.Load()
		if err != nil {
			logger.Warn("Store", fmt.Sprintf("Snapshot load failed: %v", err))
		} else if meta != nil {
			cache.Replace(records, meta.LastUpdated)
			refresher.SetMeta(meta)
			logger.Success("Store", fmt.Sprintf("Loaded snapshot: %d items from %s",
				len(records), meta.LastUpdated.Format(time.RFC3339)))
		}

		if refresher.NeedsRefresh(time.Now()) {
			logger.Info("Price", "Catalog stale, refreshing...")
			if _, err := refresher.Refresh(context.Background()); err != nil {
				logger.Warn("Price", fmt.Sprintf("Startup refresh failed: %v", err))
			}
		}

		logger.Section("Catalog")
		logger.Stats("Cached items", cache.Len())
		logger.Stats("Fallback entries", len(pricing.FallbackPrices))
	}()

	srv := api.NewServer(cache, resolver, refresher, database)

	addr := fmt.Sprintf("127.0.0.1:%d", *port)
	logger.Server(addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		logger.Error("Server", fmt.Sprintf("Failed: %v", err))
		os.Exit(1)
	}
}
