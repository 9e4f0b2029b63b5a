package utils

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/xandnet/peerwatch/internal/config"
)

// GetInternalBaseURL is a helper method to allow calls to the service's own API
func GetInternalBaseURL(internalEndpoint string) (string, error) {
	if internalEndpoint == "" {
		return "", fmt.Errorf("internalEndpoint cannot be empty")
	}

	endpoint := fmt.Sprintf(
		"http://localhost:%d%s",
		config.GetConfig().Rest.Port,
		internalEndpoint,
	)

	return endpoint, nil
}

// ResponseBody makes a request against the running service's API and
// returns the raw response body. Used by CLI commands.
func ResponseBody(client *http.Client, methodType, internalEndpoint string, body []byte) ([]byte, error) {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	endpoint, err := GetInternalBaseURL(internalEndpoint)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(methodType, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("cannot create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot make request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot read response body: %v", err)
	}

	return respBody, nil
}

// HumanDuration renders an uptime in seconds as a compact "3d 4h 12m"
// style string.
func HumanDuration(seconds int64) string {
	if seconds < 0 {
		return ""
	}
	d := seconds / 86400
	h := (seconds % 86400) / 3600
	m := (seconds % 3600) / 60

	switch {
	case d > 0:
		return fmt.Sprintf("%dd %dh %dm", d, h, m)
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// HumanBytes renders a byte count for display.
func HumanBytes(n int64) string {
	if n < 0 {
		return ""
	}
	return humanize.Bytes(uint64(n))
}
