// Package geo resolves peer IPs to locations through a public lookup
// service. Lookups are cached per IP with a long TTL and spaced out to
// stay under the upstream rate limit; geolocation never sits on the
// collection path.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/xandnet/peerwatch/internal/cache"
	"github.com/xandnet/peerwatch/internal/logger"
	"github.com/xandnet/peerwatch/models"
)

var zlog = logger.New("geo")

// Resolver looks up IP locations with caching and upstream spacing.
type Resolver struct {
	lookupURL   string
	cacheTTL    time.Duration
	minInterval time.Duration
	cache       cache.Cache
	http        *http.Client

	mu       sync.Mutex
	lastCall time.Time
}

// NewResolver builds a resolver over the given cache. lookupURL is the
// service base, e.g. "http://ip-api.com/json".
func NewResolver(lookupURL string, cacheTTL, minInterval time.Duration, c cache.Cache) *Resolver {
	return &Resolver{
		lookupURL:   lookupURL,
		cacheTTL:    cacheTTL,
		minInterval: minInterval,
		cache:       c,
		http:        &http.Client{Timeout: 10 * time.Second},
	}
}

type lookupResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Country string  `json:"country"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	ISP     string  `json:"isp"`
}

// Lookup resolves one IP, serving from cache when possible.
func (r *Resolver) Lookup(ctx context.Context, ip string) (*models.Location, error) {
	key := "geo:" + ip
	if cached, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		var loc models.Location
		if err := json.Unmarshal(cached, &loc); err == nil {
			return &loc, nil
		}
	}

	r.throttle()

	endpoint := fmt.Sprintf("%s/%s?fields=status,message,country,city,lat,lon,isp", r.lookupURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geo lookup returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var decoded lookupResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, err
	}
	if decoded.Status != "success" {
		return nil, fmt.Errorf("geo lookup failed for %s: %s", ip, decoded.Message)
	}

	loc := &models.Location{
		IP:      ip,
		Country: decoded.Country,
		City:    decoded.City,
		Lat:     decoded.Lat,
		Lon:     decoded.Lon,
		ISP:     decoded.ISP,
	}

	if encoded, err := json.Marshal(loc); err == nil {
		if err := r.cache.Set(ctx, key, encoded, r.cacheTTL); err != nil {
			zlog.Sugar().Debugf("geo cache set failed for %s: %v", ip, err)
		}
	}

	return loc, nil
}

// throttle enforces the minimum interval between upstream calls.
func (r *Resolver) throttle() {
	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := time.Since(r.lastCall)
	if elapsed < r.minInterval {
		time.Sleep(r.minInterval - elapsed)
	}
	r.lastCall = time.Now()
}
