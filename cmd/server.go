package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/xandnet/peerwatch/api"
	"github.com/xandnet/peerwatch/collector"
	"github.com/xandnet/peerwatch/db"
	"github.com/xandnet/peerwatch/geo"
	"github.com/xandnet/peerwatch/internal/cache"
	"github.com/xandnet/peerwatch/internal/config"
	"github.com/xandnet/peerwatch/internal/logger"
	"github.com/xandnet/peerwatch/internal/metrics"
)

var zlog = logger.New("cmd")

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the dashboard service",
	Long:  `Starts the HTTP API, the periodic snapshot collection and the history retention cleanup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.LoadConfig()
		cfg := config.GetConfig()
		logger.SetDebug(cfg.General.Debug)

		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return fmt.Errorf("cannot create data dir: %w", err)
		}
		if err := db.ConnectDatabase(cfg.Database.Path); err != nil {
			return fmt.Errorf("cannot open database: %w", err)
		}
		history := db.NewHistoryRepository(db.DB)

		cacheStore, err := newCacheStore(cfg)
		if err != nil {
			return fmt.Errorf("cannot connect cache backend: %w", err)
		}

		coll := collector.New(collectorConfig(cfg))
		m := metrics.NewMetrics()
		resolver := geo.NewResolver(
			cfg.Geo.LookupURL,
			time.Duration(cfg.Geo.CacheTTLSeconds)*time.Second,
			time.Duration(cfg.Geo.MinIntervalMilli)*time.Millisecond,
			cacheStore,
		)

		handler := api.NewHandler(coll, cacheStore, history, resolver, m,
			time.Duration(cfg.Collector.SnapshotTTLSeconds)*time.Second)
		router := api.SetupRouter(handler)

		scheduler := cron.New()

		interval := cfg.Collector.IntervalSeconds
		if interval <= 0 {
			interval = 120
		}
		scheduler.AddFunc(fmt.Sprintf("@every %ds", interval), func() {
			snap := coll.Collect(context.Background())
			m.ObserveCollection(snap)
			if err := history.InsertSnapshot(context.Background(), snap); err != nil {
				zlog.Sugar().Errorf("cannot persist snapshot: %v", err)
			}
		})

		scheduler.AddFunc("@daily", func() {
			cutoff := time.Now().AddDate(0, 0, -cfg.Collector.RetentionDays)
			pruned, err := history.PruneBefore(context.Background(), cutoff)
			if err != nil {
				zlog.Sugar().Errorf("retention cleanup failed: %v", err)
				return
			}
			zlog.Sugar().Infof("retention cleanup removed %d rows", pruned)
		})

		scheduler.Start()

		errChan := make(chan error, 1)
		go func() {
			zlog.Sugar().Infof("dashboard API listening on :%d", cfg.Rest.Port)
			errChan <- router.Run(fmt.Sprintf(":%d", cfg.Rest.Port))
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errChan:
			scheduler.Stop()
			return multierr.Append(err, cacheStore.Close())
		case sig := <-sigChan:
			zlog.Sugar().Infof("received %s, shutting down", sig)
			ctx := scheduler.Stop()
			<-ctx.Done()
			return cacheStore.Close()
		}
	},
}

func newCacheStore(cfg *config.Config) (cache.Cache, error) {
	if cfg.Cache.Backend == "redis" {
		return cache.NewRedisCache(context.Background(), cfg.Cache.RedisAddr, cfg.Cache.RedisPass)
	}
	return cache.NewMemoryCache(), nil
}

func collectorConfig(cfg *config.Config) collector.Config {
	return collector.Config{
		Seeds:        cfg.Collector.Seeds,
		RPCPort:      cfg.Collector.RPCPort,
		Timeout:      time.Duration(cfg.Collector.TimeoutSeconds) * time.Second,
		Concurrency:  cfg.Collector.Concurrency,
		FetchStats:   cfg.Collector.FetchStats,
		FetchCredits: cfg.Collector.FetchCredits,
		CreditsURL:   cfg.Collector.CreditsURL,
		Thresholds: collector.Thresholds{
			Online:   int64(cfg.Collector.OnlineThreshold),
			Degraded: int64(cfg.Collector.DegradedThreshold),
			Offline:  int64(cfg.Collector.OfflineThreshold),
		},
		Debug: cfg.General.Debug,
	}
}
