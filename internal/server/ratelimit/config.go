package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits one route. Paths ending in "/" match by prefix.
type Rule struct {
	Path   string
	Method string
	Limit  int           // Requests refilled per Window
	Window time.Duration // Refill period
	Burst  int           // Bucket capacity (defaults to Limit if 0)
}

// Matches reports whether the rule applies to a request
func (r Rule) Matches(path, method string) bool {
	if r.Method != method {
		return false
	}
	if strings.HasSuffix(r.Path, "/") {
		return strings.HasPrefix(path, r.Path)
	}
	return r.Path == path
}

// Config holds rate limiting configuration.
// Requests that match no rule are not limited.
type Config struct {
	Enabled         bool
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	Rules           []Rule
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	limit := getEnvInt("RATE_LIMIT_GENERATION_LIMIT", 30)
	window := getEnvDuration("RATE_LIMIT_GENERATION_WINDOW", time.Minute)
	burst := getEnvInt("RATE_LIMIT_GENERATION_BURST", 5)

	return &Config{
		Enabled:         true,
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTTL:         time.Hour,
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Rules:           GenerationRules(limit, window, burst),
	}
}

// GenerationRules limits every endpoint that calls the remote model
func GenerationRules(limit int, window time.Duration, burst int) []Rule {
	paths := []string{"/ask", "/ask/voice", "/summarize", "/resume/extras", "/resume", "/cover-letter", "/describe-image"}
	rules := make([]Rule, 0, len(paths))
	for _, p := range paths {
		rules = append(rules, Rule{Path: p, Method: "POST", Limit: limit, Window: window, Burst: burst})
	}
	return rules
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
