package config

import (
	"strings"
	"time"
)

// CacheConfig defines settings for the rendered-page cache middleware.
// Caching is opt-in (CACHE_ENABLED) and also off when no Redis client is
// configured.  While on, writes that bypass this process (another admin
// instance without the cache, a SQL console) stay invisible for up to TTL.
// Methods lists the HTTP methods to cache (GET, HEAD).  TTL bounds how long a
// page may be served from Redis; every successful write request purges the
// whole Prefix namespace regardless of TTL.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	KeyStrategy  string
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.  Defaults
// are used when variables are not set.  All methods are upper-cased.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", false),
		Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       envStr("CACHE_PREFIX", "sakila:page"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			m[p] = true
		}
	}
	return m
}
