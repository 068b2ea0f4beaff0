// Package config loads the external, collaborator-level configuration
// described in spec.md §6: server bind address, shard count, and log
// path/level. The core itself reads no configuration (it receives its
// parameters at construction); this package exists purely to resolve those
// parameters once, at process startup, for cmd/server to hand to the core
// and its collaborators.
//
// Keys are read from an optional config file and from environment
// variables under the APP_ prefix, with "__" as the section separator
// (e.g. APP_SERVER__HOST, APP_SERVER__PORT, APP_SHARD_COUNT, APP_LOG_PATH,
// APP_LOG_LEVEL), using github.com/spf13/viper's env-key replacer — the
// idiomatic way the pack's service repos (grafana-tempo, moby-moby, and
// others indexed under _examples/other_examples/manifests) realize this
// exact prefix/separator convention. The teacher itself reads flat env
// vars directly (NODE_ID, COORDINATOR_ADDR via getenv/mustGetenv); viper
// generalizes that same "construct from environment, fail fast on
// required values" approach to the section-separator scheme spec.md
// mandates.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved set of collaborator parameters for one process.
type Config struct {
	ServerHost string
	ServerPort int
	ShardCount int
	LogPath    string
	LogLevel   string
}

// Load resolves Config from (in increasing priority) built-in defaults, an
// optional config file at configPath, and APP_-prefixed environment
// variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("shard_count", 64)
	v.SetDefault("log_path", "")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %q: %w", configPath, err)
		}
	}

	cfg := &Config{
		ServerHost: v.GetString("server.host"),
		ServerPort: v.GetInt("server.port"),
		ShardCount: v.GetInt("shard_count"),
		LogPath:    v.GetString("log_path"),
		LogLevel:   v.GetString("log_level"),
	}

	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("server.port %d out of range [1, 65535]", cfg.ServerPort)
	}
	if cfg.ShardCount <= 0 {
		return nil, fmt.Errorf("shard_count must be positive, got %d", cfg.ShardCount)
	}

	return cfg, nil
}

// Addr returns the host:port the HTTP server should bind to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}
