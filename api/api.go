package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xandnet/peerwatch/db"
	"github.com/xandnet/peerwatch/geo"
	"github.com/xandnet/peerwatch/internal/cache"
	"github.com/xandnet/peerwatch/internal/logger"
	"github.com/xandnet/peerwatch/internal/metrics"
	"github.com/xandnet/peerwatch/models"
)

var zlog = logger.New("api")

const snapshotCacheKey = "snapshot:latest"

// SnapshotCollector is the piece of the collector the API layer
// depends on. Satisfied by *collector.Collector and by test doubles.
type SnapshotCollector interface {
	Collect(ctx context.Context) *models.Snapshot
}

// Handler carries the collaborators of the HTTP layer: the collector,
// the snapshot cache, history storage, geolocation and metrics.
type Handler struct {
	collector   SnapshotCollector
	cache       cache.Cache
	history     *db.HistoryRepository
	geo         *geo.Resolver
	metrics     *metrics.Metrics
	snapshotTTL time.Duration
}

func NewHandler(
	c SnapshotCollector,
	cacheStore cache.Cache,
	history *db.HistoryRepository,
	resolver *geo.Resolver,
	m *metrics.Metrics,
	snapshotTTL time.Duration,
) *Handler {
	return &Handler{
		collector:   c,
		cache:       cacheStore,
		history:     history,
		geo:         resolver,
		metrics:     m,
		snapshotTTL: snapshotTTL,
	}
}

// snapshot serves the latest snapshot, reading through the cache. The
// collector itself never caches; serving stale-but-fresh-enough data is
// this layer's policy.
func (h *Handler) snapshot(ctx context.Context) *models.Snapshot {
	if cached, ok, err := h.cache.Get(ctx, snapshotCacheKey); err == nil && ok {
		var snap models.Snapshot
		if err := json.Unmarshal(cached, &snap); err == nil {
			if h.metrics != nil {
				h.metrics.CacheHitsTotal.Inc()
			}
			return &snap
		}
	}
	if h.metrics != nil {
		h.metrics.CacheMissesTotal.Inc()
	}

	snap := h.collector.Collect(ctx)
	if h.metrics != nil {
		h.metrics.ObserveCollection(snap)
	}

	if encoded, err := json.Marshal(snap); err == nil {
		if err := h.cache.Set(ctx, snapshotCacheKey, encoded, h.snapshotTTL); err != nil {
			zlog.Sugar().Warnf("snapshot cache set failed: %v", err)
		}
	}

	return snap
}

// HandleHealth  godoc
//
//	@Summary		Service liveness
//	@Description	Reports that the dashboard service is up
//	@Tags			health
//	@Produce		json
//	@Success		200	{string}	string
//	@Router			/health [get]
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok", "timestamp": time.Now().In(time.UTC)})
}

func SetupRouter(h *Handler) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(getCustomCorsConfig()))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.HandleHealth)
		v1.GET("/peers", h.HandleListPeers)
		v1.GET("/peers/:pubkey", h.HandleGetPeer)
		v1.GET("/stats", h.HandleNetworkStats)
		v1.GET("/map", h.HandleMap)
		v1.GET("/scores", h.HandleScores)
		v1.GET("/history", h.HandleHistory)
		v1.GET("/export/csv", h.HandleExportCSV)
	}

	return router
}

func getCustomCorsConfig() cors.Config {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	return config
}
