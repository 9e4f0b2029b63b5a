package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/buger/jsonparser"

	"github.com/xandnet/peerwatch/models"
)

// CreditsTimeout is the separate, longer timeout for the auxiliary
// credits source. Credits are a non-essential enhancement; this phase
// never blocks or fails core collection.
const CreditsTimeout = 10 * time.Second

// fetchCredits looks up the external reputation number per pubkey from
// the configured HTTP source. The response is expected to carry a
// credits array of {pubkey, amount} objects.
func (c *Collector) fetchCredits(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, CreditsTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.CreditsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("credits source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	credits := make(map[string]int64)
	_, err = jsonparser.ArrayEach(body, func(value []byte, dataType jsonparser.ValueType, offset int, _ error) {
		pubkey, err := jsonparser.GetString(value, "pubkey")
		if err != nil {
			return
		}
		amount, err := jsonparser.GetInt(value, "amount")
		if err != nil {
			return
		}
		credits[pubkey] = amount
	}, "credits")
	if err != nil {
		return nil, fmt.Errorf("cannot iterate over credits list: %v", err)
	}

	return credits, nil
}

// applyCredits merges fetched credits into the enriched peer set by
// exact pubkey match. Peers absent from the credits response keep a nil
// credits field.
func applyCredits(peers []models.EnrichedPeer, credits map[string]int64) {
	for i := range peers {
		if amount, ok := credits[peers[i].Pubkey]; ok {
			v := amount
			peers[i].Credits = &v
		}
	}
}
