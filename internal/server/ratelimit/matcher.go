package ratelimit

import (
	"strings"
)

// MatchEndpoint matches a request path and method to an endpoint
// configuration. Returns nil when no configuration applies, in which case the
// caller falls back to the global default. Paths ending in "/" are treated as
// prefixes so "/api/candidates/" matches "/api/candidates/{id}".
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Health and stats probes are unlimited.
	if method == "GET" && (path == "/api/health" || path == "/api/stats") {
		return &EndpointConfig{
			Limit:  0,
			Window: 0,
			Burst:  0,
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") {
			if strings.HasPrefix(path, config.Path) {
				return config
			}
		}
	}

	return nil
}
