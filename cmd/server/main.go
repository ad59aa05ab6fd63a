package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"CryptoRadar/internal/auth"
	"CryptoRadar/internal/config"
	"CryptoRadar/internal/fetcher"
	"CryptoRadar/internal/history"
	"CryptoRadar/internal/server"
	"CryptoRadar/internal/stats"
	"CryptoRadar/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CryptoRadar starting...")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	dataFiles := []string{cfg.Data.UserEntriesFile, cfg.Data.AccountsFile, cfg.Data.HistoryCSV}
	if cfg.Data.SQLitePath != "" {
		dataFiles = append(dataFiles, cfg.Data.SQLitePath)
	}
	for _, p := range dataFiles {
		if dir := filepath.Dir(p); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				log.Fatalf("[FATAL] create data dir %s: %v", dir, err)
			}
		}
	}

	// Provider chain: CoinGecko, then CoinMarketCap when a key is present,
	// then the synthetic generator so the dashboard is never empty.
	fetchers := []fetcher.Fetcher{
		fetcher.NewCoinGeckoFetcher(cfg.Providers.CoinGeckoBaseURL, cfg.Proxy),
	}
	if cfg.Providers.CoinMarketCapAPIKey != "" {
		fetchers = append(fetchers, fetcher.NewCoinMarketCapFetcher(
			cfg.Providers.CoinMarketCapBaseURL, cfg.Providers.CoinMarketCapAPIKey, cfg.Proxy))
	} else {
		log.Println("[INFO] coinmarketcap key absent, secondary provider disabled")
	}
	fetchers = append(fetchers, fetcher.NewDemoFetcher())
	chain := fetcher.NewChain(fetchers...)

	// Stores
	entries := store.NewEntryStore(cfg.Data.UserEntriesFile)
	accounts, err := auth.NewStore(cfg.Data.AccountsFile, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword)
	if err != nil {
		log.Fatalf("[FATAL] init account store: %v", err)
	}
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMin)*time.Minute)

	// History recorder: SQLite when configured, CSV otherwise.
	var rec history.Recorder
	if cfg.Data.SQLitePath != "" {
		sr, err := history.NewSQLiteRecorder(cfg.Data.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using csv: %v", err)
			rec = history.NewCSVRecorder(cfg.Data.HistoryCSV)
		} else {
			rec = sr
		}
	} else {
		rec = history.NewCSVRecorder(cfg.Data.HistoryCSV)
	}
	defer rec.Close()

	// Optional scheduled snapshots deepen the history log without waiting
	// for dashboard interactions.
	if cfg.Snapshot.Cron != "" {
		c := cron.New(cron.WithSeconds())
		_, err := c.AddFunc(cfg.Snapshot.Cron, func() {
			now := time.Now()
			merged := stats.Merge(chain.Fetch(cfg.Snapshot.Limit), entries.Load())
			if err := rec.Append(merged, now); err != nil {
				log.Printf("[WARN] scheduled snapshot append: %v", err)
			} else {
				log.Printf("[INFO] scheduled snapshot logged, %d rows", len(merged))
			}
		})
		if err != nil {
			log.Fatalf("[FATAL] register snapshot cron: %v", err)
		}
		c.Start()
		defer c.Stop()
		log.Printf("[INFO] scheduled snapshots enabled: %s", cfg.Snapshot.Cron)
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(cfg, chain, entries, accounts, tokens, rec).Router(),
	}

	go func() {
		log.Printf("[INFO] listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[FATAL] listen: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[WARN] shutdown: %v", err)
	}
	log.Println("[INFO] CryptoRadar stopped")
}
