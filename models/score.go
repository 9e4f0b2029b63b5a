package models

// PeerScore is one entry in the ranked reputation output of the scoring
// function. Scores are a pure transform of a snapshot's peers.
type PeerScore struct {
	Rank             int        `json:"rank"`
	Pubkey           string     `json:"pubkey"`
	Address          string     `json:"address"`
	Status           PeerStatus `json:"status"`
	UptimeScore      float64    `json:"uptime_score"`      // 0-100
	PerformanceScore float64    `json:"performance_score"` // 0-100
	TotalScore       float64    `json:"total_score"`       // 0-100
	Credits          int64      `json:"credits"`
	Version          string     `json:"version"`
	VersionCurrent   bool       `json:"version_current"`
}
