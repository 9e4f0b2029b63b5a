package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"

	"github.com/spf13/viper"
)

var cfg Config
var home = os.Getenv("HOME")

func getViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("peerwatch_config")
	v.SetConfigType("json")
	v.AddConfigPath(".")                // config file reading order starts with current working directory
	v.AddConfigPath("$HOME/.peerwatch") // then home directory
	v.AddConfigPath("/etc/peerwatch/")  // finally /etc/peerwatch
	return v
}

func setDefaultConfig() *viper.Viper {
	v := getViper()
	v.SetDefault("general.data_dir", home+"/.peerwatch")
	v.SetDefault("general.debug", false)
	v.SetDefault("rest.port", 8080)
	v.SetDefault("collector.seeds", []string{
		"seed1.xandnet.io",
		"seed2.xandnet.io",
		"seed3.xandnet.io",
		"seed4.xandnet.io",
		"seed5.xandnet.io",
		"seed6.xandnet.io",
		"seed7.xandnet.io",
		"seed8.xandnet.io",
	})
	v.SetDefault("collector.rpc_port", 6000)
	v.SetDefault("collector.timeout_seconds", 8)
	v.SetDefault("collector.concurrency", 10)
	v.SetDefault("collector.fetch_stats", true)
	v.SetDefault("collector.fetch_credits", true)
	v.SetDefault("collector.credits_url", "https://credits.xandnet.io/api/peer-credits")
	v.SetDefault("collector.interval_seconds", 120)
	v.SetDefault("collector.online_threshold_seconds", 240)
	v.SetDefault("collector.degraded_threshold_seconds", 600)
	v.SetDefault("collector.offline_threshold_seconds", 3600)
	v.SetDefault("collector.retention_days", 30)
	v.SetDefault("collector.snapshot_ttl_seconds", 60)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("database.path", home+"/.peerwatch/peerwatch.db")
	v.SetDefault("geo.lookup_url", "http://ip-api.com/json")
	v.SetDefault("geo.cache_ttl_seconds", 86400)
	v.SetDefault("geo.min_interval_ms", 1500)
	return v
}

func LoadConfig() {
	paths := []string{
		".",
		home + "/.peerwatch",
		"/etc/peerwatch",
	}
	configFile := "peerwatch_config.json"
	v := setDefaultConfig()

	config, err := findConfig(paths, configFile)
	if err != nil {
		setDefaultConfig().Unmarshal(&cfg)
		return
	}

	modifiedConfig := removeComments(config)
	if err = v.ReadConfig(bytes.NewBuffer(modifiedConfig)); err != nil { // Viper only reads buffer, keeping comments in original config
		setDefaultConfig().Unmarshal(&cfg)
		return
	}

	if err = v.Unmarshal(&cfg); err != nil {
		setDefaultConfig().Unmarshal(&cfg)
	}
}

func SetConfig(key string, value interface{}) {
	v := getViper()
	v.Set(key, value)
	err := v.Unmarshal(&cfg)
	if err != nil {
		setDefaultConfig().Unmarshal(&cfg)
	}
}

func GetConfig() *Config {
	if reflect.DeepEqual(cfg, Config{}) {
		LoadConfig()
	}
	return &cfg
}

func findConfig(paths []string, filename string) ([]byte, error) {
	for _, path := range paths {
		fullPath := filepath.Join(path, filename)
		if _, err := os.Stat(fullPath); err == nil {
			return os.ReadFile(fullPath)
		}
	}

	return nil, fmt.Errorf("file not found in any of the paths")
}

func removeComments(configBytes []byte) []byte {
	re := regexp.MustCompile("(?s)//.*?\n") // match all '//' until the end of the line
	return re.ReplaceAll(configBytes, nil)
}
