package featuregate

import (
	"github.com/PennitApp/Pennit/internal/pkg/env"
)

// Config holds the deployment-wide feature switches. It is built once at
// process start and passed explicitly to every consumer; the value never
// changes within a running process, so all requests observe the same gates.
type Config struct {
	MonetizationEnabled bool
}

// Load builds the feature config from environment configuration.
// MONETIZATION_ENABLED must be the literal string "true" to enable the
// paywall and earnings features; any other value (including absence)
// disables them. There is no error path: a missing or malformed switch
// fails closed.
func Load() Config {
	return Config{
		MonetizationEnabled: env.GetEnv("MONETIZATION_ENABLED", "") == "true",
	}
}

// FromValue builds a config directly, mainly for tests and wiring code
// that already resolved the switch.
func FromValue(monetizationEnabled bool) Config {
	return Config{MonetizationEnabled: monetizationEnabled}
}
