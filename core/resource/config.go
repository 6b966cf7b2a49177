package resource

import "time"

// Cleanup policies.
const (
	// CleanupManual evicts only on an explicit CleanUp call.
	CleanupManual = "manual"
	// CleanupFrame evicts after every LoadAllToRenderer pass.
	CleanupFrame = "frame"
	// CleanupInterval evicts from the Scheduler every CleanupIntervalMs.
	CleanupInterval = "interval"
	// CleanupImmediate evicts as soon as Detach drops the count to zero.
	CleanupImmediate = "immediate"
)

// Config holds configuration for the resource manager.
type Config struct {
	// DefaultMipmapLevel is handed to texture kinds.
	DefaultMipmapLevel int `mapstructure:"default_mipmap_level" default:"0"`
	// CleanupPolicy selects when zero-reference resources are evicted.
	CleanupPolicy string `mapstructure:"cleanup_policy" default:"manual"`
	// CleanupIntervalMs is the eviction period for the interval policy.
	CleanupIntervalMs int `mapstructure:"cleanup_interval_ms" default:"5000"`
	// FlushIntervalMs is the render tick period used by the Scheduler.
	FlushIntervalMs int `mapstructure:"flush_interval_ms" default:"16"`
}

// IsValidCleanupPolicy checks if the configured policy is known.
func (c Config) IsValidCleanupPolicy() bool {
	switch c.CleanupPolicy {
	case CleanupManual, CleanupFrame, CleanupInterval, CleanupImmediate:
		return true
	default:
		return false
	}
}

// CleanupEvery returns the interval policy period.
func (c Config) CleanupEvery() time.Duration {
	if c.CleanupIntervalMs <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.CleanupIntervalMs) * time.Millisecond
}

// FlushEvery returns the render tick period.
func (c Config) FlushEvery() time.Duration {
	if c.FlushIntervalMs <= 0 {
		return 16 * time.Millisecond
	}
	return time.Duration(c.FlushIntervalMs) * time.Millisecond
}
