package collector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xandnet/peerwatch/models"
)

func TestDetermineStatusBoundaries(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	th := DefaultThresholds()

	tests := []struct {
		age  int64
		want models.PeerStatus
	}{
		{0, models.StatusOnline},
		{239, models.StatusOnline},
		{240, models.StatusDegraded},
		{599, models.StatusDegraded},
		{600, models.StatusOffline},
		{3599, models.StatusOffline},
		{3600, models.StatusUnknown},
		{4000, models.StatusUnknown},
	}

	for _, tc := range tests {
		got := DetermineStatus(now, now.Unix()-tc.age, th)
		assert.Equal(t, tc.want, got, "age %ds", tc.age)
	}
}

func TestDetermineStatusFutureTimestamp(t *testing.T) {
	// A peer-reported timestamp slightly ahead of our clock still
	// classifies as online.
	now := time.Unix(1_700_000_000, 0)
	got := DetermineStatus(now, now.Unix()+30, DefaultThresholds())
	assert.Equal(t, models.StatusOnline, got)
}

func TestDetermineStatusCustomThresholds(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	th := Thresholds{Online: 10, Degraded: 20, Offline: 30}

	assert.Equal(t, models.StatusOnline, DetermineStatus(now, now.Unix()-9, th))
	assert.Equal(t, models.StatusDegraded, DetermineStatus(now, now.Unix()-10, th))
	assert.Equal(t, models.StatusOffline, DetermineStatus(now, now.Unix()-20, th))
	assert.Equal(t, models.StatusUnknown, DetermineStatus(now, now.Unix()-30, th))
}
