package consumer

import (
	"time"

	appconfig "github.com/gridstream/gridstream/internal/config"
)

// Config controls the consumer claim/process/ack loop.
type Config struct {
	Group     string
	BatchSize int
	Block     time.Duration
	Backoff   time.Duration
}

func DefaultConfig() Config {
	return Config{
		Group:     "processing_group",
		BatchSize: 10,
		Block:     5 * time.Second,
		Backoff:   5 * time.Second,
	}
}

// FromAppConfig derives the loop configuration from application config.
func FromAppConfig(cfg appconfig.Config) Config {
	return Config{
		Group:     cfg.ConsumerGroup,
		BatchSize: cfg.ConsumerBatchSize,
		Block:     cfg.ConsumerBlock,
		Backoff:   cfg.ConsumerBackoff,
	}.withDefaults()
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.Group == "" {
		c.Group = defaults.Group
	}
	if c.BatchSize <= 0 {
		c.BatchSize = defaults.BatchSize
	}
	if c.Block <= 0 {
		c.Block = defaults.Block
	}
	if c.Backoff <= 0 {
		c.Backoff = defaults.Backoff
	}
	return c
}
