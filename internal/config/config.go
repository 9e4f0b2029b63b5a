package config

type Config struct {
	General   `mapstructure:"general"`
	Rest      `mapstructure:"rest"`
	Collector `mapstructure:"collector"`
	Cache     `mapstructure:"cache"`
	Database  `mapstructure:"database"`
	Geo       `mapstructure:"geo"`
}

type General struct {
	DataDir string `mapstructure:"data_dir"`
	Debug   bool   `mapstructure:"debug"`
}

type Rest struct {
	Port int `mapstructure:"port"`
}

type Collector struct {
	Seeds              []string `mapstructure:"seeds"`
	RPCPort            int      `mapstructure:"rpc_port"`
	TimeoutSeconds     int      `mapstructure:"timeout_seconds"`
	Concurrency        int      `mapstructure:"concurrency"`
	FetchStats         bool     `mapstructure:"fetch_stats"`
	FetchCredits       bool     `mapstructure:"fetch_credits"`
	CreditsURL         string   `mapstructure:"credits_url"`
	IntervalSeconds    int      `mapstructure:"interval_seconds"` // periodic collection cadence
	OnlineThreshold    int      `mapstructure:"online_threshold_seconds"`
	DegradedThreshold  int      `mapstructure:"degraded_threshold_seconds"`
	OfflineThreshold   int      `mapstructure:"offline_threshold_seconds"`
	RetentionDays      int      `mapstructure:"retention_days"`
	SnapshotTTLSeconds int      `mapstructure:"snapshot_ttl_seconds"` // cache TTL for served snapshots
}

type Cache struct {
	Backend   string `mapstructure:"backend"` // "memory" or "redis"
	RedisAddr string `mapstructure:"redis_addr"`
	RedisPass string `mapstructure:"redis_pass"`
}

type Database struct {
	Path string `mapstructure:"path"`
}

type Geo struct {
	LookupURL        string `mapstructure:"lookup_url"`
	CacheTTLSeconds  int    `mapstructure:"cache_ttl_seconds"`
	MinIntervalMilli int    `mapstructure:"min_interval_ms"` // upstream rate limit spacing
}
