package collector

import (
	"context"
	"errors"

	"github.com/xandnet/peerwatch/models"
	"github.com/xandnet/peerwatch/rpc"
	"github.com/xandnet/peerwatch/utils"
)

// telemetryResult is the settled outcome of one peer's get-telemetry
// call.
type telemetryResult struct {
	index     int
	telemetry *models.Telemetry
	err       error
}

// enrichTelemetry fetches live telemetry for every merged peer under
// the configured concurrency ceiling. Peers are processed in fixed-size
// batches: all calls in a batch run concurrently and every call settles
// before the next batch starts. This deliberately bounds peak load on
// the peer network instead of minimizing phase latency.
//
// Results are merged into the output slice only by this coordinating
// goroutine, after each call has settled; in-flight calls never touch
// shared state.
func (c *Collector) enrichTelemetry(ctx context.Context, peers []models.Peer) ([]models.EnrichedPeer, []models.CollectionError, int) {
	enriched := make([]models.EnrichedPeer, len(peers))
	errs := []models.CollectionError{}
	withTelemetry := 0
	now := c.now()

	batchSize := c.cfg.Concurrency
	if batchSize <= 0 {
		batchSize = DefaultConcurrency
	}

	for start := 0; start < len(peers); start += batchSize {
		end := start + batchSize
		if end > len(peers) {
			end = len(peers)
		}
		batch := peers[start:end]

		results := make(chan telemetryResult, len(batch))
		for i, p := range batch {
			go func(idx int, peer models.Peer) {
				host, port := peer.RPCHostPort()
				telemetry, err := c.client.GetTelemetry(ctx, host, port)
				results <- telemetryResult{index: idx, telemetry: telemetry, err: err}
			}(start+i, p)
		}

		for range batch {
			res := <-results
			peer := peers[res.index]
			status := DetermineStatus(now, peer.LastSeenTimestamp, c.cfg.Thresholds)

			ep := models.EnrichedPeer{Peer: peer, Status: status}

			switch {
			case res.err == nil:
				ep.Telemetry = res.telemetry
				if res.telemetry.RAMTotal > 0 {
					pct := float64(res.telemetry.RAMUsed) / float64(res.telemetry.RAMTotal) * 100
					ep.RAMPercent = &pct
				}
				ep.UptimeHum = utils.HumanDuration(res.telemetry.UptimeSeconds)
				withTelemetry++

			case isUnreachable(res.err):
				// Reachable via gossip but not respondable
				// directly: a fresh peer is degraded, not online.
				if status == models.StatusOnline {
					ep.Status = models.StatusDegraded
				}

			default:
				// The peer answered but with a malformed payload or
				// an application-level error.
				errs = append(errs, models.CollectionError{
					Kind:    models.ErrStatsUnreachable,
					Target:  truncateKey(peer.Pubkey),
					Message: res.err.Error(),
				})
			}

			enriched[res.index] = ep
		}
	}

	return enriched, errs, withTelemetry
}

// classifyOnly builds enriched peers from staleness alone, for runs
// with telemetry fetching disabled.
func (c *Collector) classifyOnly(peers []models.Peer) []models.EnrichedPeer {
	now := c.now()
	enriched := make([]models.EnrichedPeer, len(peers))
	for i, p := range peers {
		enriched[i] = models.EnrichedPeer{
			Peer:   p,
			Status: DetermineStatus(now, p.LastSeenTimestamp, c.cfg.Thresholds),
		}
	}
	return enriched
}

func isUnreachable(err error) bool {
	var netErr *rpc.NetworkError
	var timeoutErr *rpc.TimeoutError
	return errors.As(err, &netErr) || errors.As(err, &timeoutErr)
}
