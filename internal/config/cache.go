package config

import "time"

// CacheConfig controls the Redis response cache in front of the read
// endpoints (exam listings, room and course directories, rosters).
// Listings are visibility scoped per caller, so the cache middleware
// binds every entry to one authenticated user; the TTL here only bounds
// how stale a repeat read by the same caller may be.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads the RESPONSE_CACHE_* variables.  The short
// default TTL keeps listings near-fresh while absorbing the repeat reads
// of registration-period traffic.
func LoadCacheConfig() CacheConfig {
	cfg := CacheConfig{
		Enabled:      envBool("RESPONSE_CACHE_ENABLED", true),
		TTL:          envDur("RESPONSE_CACHE_TTL", 30*time.Second),
		Prefix:       envStr("RESPONSE_CACHE_PREFIX", "exam-scheduler:http"),
		MaxBodyBytes: envInt("RESPONSE_CACHE_MAX_BODY_BYTES", 1<<20),
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Second
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	return cfg
}
