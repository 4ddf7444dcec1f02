package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Whitelist:     make(map[string]bool),
		Blacklist:     make(map[string]bool),
		EndpointConfigs: []EndpointConfig{
			{Path: "/api/search", Method: "POST", Limit: 60, Window: time.Minute, Burst: 2},
		},
	}
}

func TestLimiter_AllowsWithinBurst(t *testing.T) {
	l := NewLimiter(newTestConfig())
	defer l.Stop()

	allowed, info := l.Allow("1.2.3.4", "/api/search", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 60, info.Limit)

	allowed, _ = l.Allow("1.2.3.4", "/api/search", "POST")
	assert.True(t, allowed)
}

func TestLimiter_BlocksWhenBurstExhausted(t *testing.T) {
	l := NewLimiter(newTestConfig())
	defer l.Stop()

	// Burst of 2: third immediate request must be rejected.
	l.Allow("1.2.3.4", "/api/search", "POST")
	l.Allow("1.2.3.4", "/api/search", "POST")
	allowed, info := l.Allow("1.2.3.4", "/api/search", "POST")

	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(newTestConfig())
	defer l.Stop()

	l.Allow("1.2.3.4", "/api/search", "POST")
	l.Allow("1.2.3.4", "/api/search", "POST")

	allowed, _ := l.Allow("5.6.7.8", "/api/search", "POST")
	assert.True(t, allowed)
}

func TestLimiter_DisabledAllowsEverything(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/api/search", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_WhitelistBypassesLimit(t *testing.T) {
	cfg := newTestConfig()
	cfg.Whitelist["10.0.0.1"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/api/search", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_BlacklistRejectsImmediately(t *testing.T) {
	cfg := newTestConfig()
	cfg.Blacklist["10.0.0.2"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, _ := l.Allow("10.0.0.2", "/api/search", "POST")
	assert.False(t, allowed)
}

func TestMatchEndpoint_HealthUnlimited(t *testing.T) {
	config := MatchEndpoint("/api/health", "GET", DefaultEndpointConfigs())
	require.NotNil(t, config)
	assert.Equal(t, 0, config.Limit)
}

func TestMatchEndpoint_ExactAndPrefix(t *testing.T) {
	configs := DefaultEndpointConfigs()

	exact := MatchEndpoint("/api/search", "POST", configs)
	require.NotNil(t, exact)
	assert.Equal(t, 60, exact.Limit)

	prefix := MatchEndpoint("/api/candidates/123", "DELETE", configs)
	require.NotNil(t, prefix)
	assert.Equal(t, "/api/candidates/", prefix.Path)

	assert.Nil(t, MatchEndpoint("/api/candidates/123", "GET", configs))
}

func TestTokenBucket_Refills(t *testing.T) {
	// 100 tokens/second so the bucket refills within a short test.
	tb := newTokenBucket(1, 100)

	require.True(t, tb.allow())
	require.False(t, tb.allow())

	time.Sleep(20 * time.Millisecond)
	assert.True(t, tb.allow())
}
