// Package collector implements the network snapshot collector: it
// discovers peers from every bootstrap source in parallel, merges the
// conflicting reports into one canonical peer set, enriches each peer
// with live telemetry under bounded concurrency, classifies health from
// staleness, and returns one immutable snapshot. All per-source and
// per-peer failures are surfaced as data on the snapshot, never as a
// returned error.
package collector

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/xandnet/peerwatch/internal/logger"
	"github.com/xandnet/peerwatch/models"
	"github.com/xandnet/peerwatch/rpc"
)

var zlog = logger.New("collector")

// DefaultConcurrency bounds simultaneous telemetry calls when the
// config does not set one.
const DefaultConcurrency = 10

// DefaultSeeds are the well-known bootstrap entry points into the
// storage network. They are the default for Config.Seeds, not a hidden
// global: every run reads the seed list from its config.
var DefaultSeeds = []string{
	"seed1.xandnet.io",
	"seed2.xandnet.io",
	"seed3.xandnet.io",
	"seed4.xandnet.io",
	"seed5.xandnet.io",
	"seed6.xandnet.io",
	"seed7.xandnet.io",
	"seed8.xandnet.io",
}

// Config controls one collector instance. Zero values fall back to the
// production defaults.
type Config struct {
	Seeds        []string
	RPCPort      int
	Timeout      time.Duration
	Concurrency  int
	FetchStats   bool
	FetchCredits bool
	CreditsURL   string
	Thresholds   Thresholds
	Debug        bool
}

// Collector produces network snapshots. Each Collect call is a fresh,
// independent run; the collector keeps no state across runs.
type Collector struct {
	cfg        Config
	client     *rpc.Client
	httpClient *http.Client
	now        func() time.Time
}

// New builds a collector from the given config, applying defaults for
// unset fields.
func New(cfg Config) *Collector {
	if len(cfg.Seeds) == 0 {
		cfg.Seeds = DefaultSeeds
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Thresholds == (Thresholds{}) {
		cfg.Thresholds = DefaultThresholds()
	}
	return &Collector{
		cfg:        cfg,
		client:     rpc.NewClient(cfg.RPCPort, cfg.Timeout, cfg.Debug),
		httpClient: &http.Client{},
		now:        time.Now,
	}
}

// Collect runs one full collection cycle: parallel discovery over all
// seeds, merge, batched telemetry enrichment and best-effort credits.
// It always returns a snapshot; a run where every source failed shows
// up as an empty peer set with one seed_unreachable error per source.
func (c *Collector) Collect(ctx context.Context) *models.Snapshot {
	start := c.now()
	runID := uuid.NewString()

	results := c.discover(ctx)
	merged, errs := mergePeers(results)

	peers := make([]models.Peer, 0, len(merged))
	for _, p := range merged {
		peers = append(peers, p)
	}
	// Stable output order regardless of map iteration and source
	// response order.
	sort.Slice(peers, func(i, j int) bool { return peers[i].Pubkey < peers[j].Pubkey })

	var enriched []models.EnrichedPeer
	withTelemetry := 0
	if c.cfg.FetchStats {
		var telemetryErrs []models.CollectionError
		enriched, telemetryErrs, withTelemetry = c.enrichTelemetry(ctx, peers)
		errs = append(errs, telemetryErrs...)
	} else {
		enriched = c.classifyOnly(peers)
	}

	if c.cfg.FetchCredits && c.cfg.CreditsURL != "" {
		credits, err := c.fetchCredits(ctx)
		if err != nil {
			// Credits are non-essential: failures are not even
			// collection errors, only visible in debug mode.
			if c.cfg.Debug {
				zlog.Sugar().Debugf("credits fetch skipped: %v", err)
			}
		} else {
			applyCredits(enriched, credits)
		}
	}

	snapshot := &models.Snapshot{
		ID:                 runID,
		Peers:              enriched,
		TotalDiscovered:    len(enriched),
		TotalWithTelemetry: withTelemetry,
		Errors:             errs,
		DurationMS:         time.Since(start).Milliseconds(),
		CollectedAt:        start,
	}

	zlog.Sugar().Infow("collection complete",
		"run_id", runID,
		"discovered", snapshot.TotalDiscovered,
		"with_telemetry", snapshot.TotalWithTelemetry,
		"errors", len(snapshot.Errors),
		"duration_ms", snapshot.DurationMS,
	)

	return snapshot
}

// discover fans out one list-peers call per bootstrap source and waits
// for every outcome. A slow or failed source never aborts the others;
// each result, success or failure, is observed independently.
func (c *Collector) discover(ctx context.Context) []sourceResult {
	results := make(chan sourceResult, len(c.cfg.Seeds))
	for _, seed := range c.cfg.Seeds {
		go func(seed string) {
			list, err := c.client.ListPeers(ctx, seed)
			if err != nil {
				results <- sourceResult{seed: seed, err: err}
				return
			}
			results <- sourceResult{seed: seed, peers: list.Peers}
		}(seed)
	}

	settled := make([]sourceResult, 0, len(c.cfg.Seeds))
	for range c.cfg.Seeds {
		settled = append(settled, <-results)
	}
	return settled
}
