package collector

import (
	"errors"
	"fmt"

	"github.com/xandnet/peerwatch/models"
	"github.com/xandnet/peerwatch/rpc"
)

// sourceResult is the settled outcome of one bootstrap source's
// discovery call: either its peer list or the failure that replaced it.
type sourceResult struct {
	seed  string
	peers []models.Peer
	err   error
}

// mergePeers folds every (source, peer) pair into one deduplicated peer
// set keyed by pubkey. A pubkey already recorded is replaced only when
// the new report's last_seen_timestamp is strictly greater, so the
// outcome is independent of the order sources respond in. Sources that
// failed contribute zero peers and one error: validation_error when the
// source answered with a malformed peer list, seed_unreachable for
// everything else.
func mergePeers(results []sourceResult) (map[string]models.Peer, []models.CollectionError) {
	merged := make(map[string]models.Peer)
	errs := []models.CollectionError{}

	for _, res := range results {
		if res.err != nil {
			errs = append(errs, models.CollectionError{
				Kind:    sourceErrorKind(res.err),
				Target:  res.seed,
				Message: res.err.Error(),
			})
			continue
		}
		for _, p := range res.peers {
			existing, seen := merged[p.Pubkey]
			if !seen || p.LastSeenTimestamp > existing.LastSeenTimestamp {
				merged[p.Pubkey] = p
			}
		}
	}

	return merged, errs
}

// sourceErrorKind distinguishes a source that answered with a malformed
// peer list from one that could not be reached at all.
func sourceErrorKind(err error) models.CollectionErrorKind {
	var vErr *rpc.ValidationError
	if errors.As(err, &vErr) {
		return models.ErrValidation
	}
	return models.ErrSeedUnreachable
}

// truncateKey shortens a pubkey for error messages so logs and API
// error payloads stay readable.
func truncateKey(pubkey string) string {
	if len(pubkey) <= 12 {
		return pubkey
	}
	return fmt.Sprintf("%s...", pubkey[:12])
}
