package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits a route to Limit requests per Window per client.
type Rule struct {
	Limit  int
	Window time.Duration
}

func (r Rule) refillRate() float64 {
	if r.Window <= 0 {
		return float64(r.Limit)
	}
	return float64(r.Limit) / r.Window.Seconds()
}

// Config holds limiter settings. Rules are keyed by the mux route pattern.
type Config struct {
	Enabled         bool
	Rules           map[string]Rule
	ExemptClients   map[string]bool
	CleanupInterval time.Duration
	IdleTTL         time.Duration
}

// LoadConfig builds the limiter config from environment variables with
// sensible defaults. Refreshes are expensive, awards are not, so their
// default budgets differ by an order of magnitude.
func LoadConfig() *Config {
	return &Config{
		Enabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		Rules: map[string]Rule{
			"POST /jobs/{id}/matches/refresh": {
				Limit:  getEnvInt("RATE_LIMIT_REFRESH_PER_MINUTE", 6),
				Window: time.Minute,
			},
			"POST /actors/{id}/awards": {
				Limit:  getEnvInt("RATE_LIMIT_AWARDS_PER_MINUTE", 60),
				Window: time.Minute,
			},
		},
		ExemptClients:   parseClientList(os.Getenv("RATE_LIMIT_EXEMPT_CLIENTS")),
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         15 * time.Minute,
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func parseClientList(list string) map[string]bool {
	clients := make(map[string]bool)
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			clients[entry] = true
		}
	}
	return clients
}
