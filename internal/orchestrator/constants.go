package orchestrator

import (
	"os"
	"strconv"
	"time"
)

// Rollback timeout and retry budget for compensation. Release steps themselves
// never retry. Each value can be overridden through its environment variable.
var (
	// RollbackTimeout bounds the whole compensation pass
	RollbackTimeout = durationFromEnv("RELEASE_TAGGER_ROLLBACK_TIMEOUT", 2*time.Minute)
	// DefaultRetryCount is the number of retries for a compensating action
	DefaultRetryCount = uint64(retryCountFromEnv("RELEASE_TAGGER_RETRY_COUNT", 3))
	// DefaultRetryDelay is the initial delay for exponential backoff
	DefaultRetryDelay = durationFromEnv("RELEASE_TAGGER_RETRY_DELAY", 1*time.Second)
)

func durationFromEnv(envVar string, fallback time.Duration) time.Duration {
	if env := os.Getenv(envVar); env != "" {
		if duration, err := time.ParseDuration(env); err == nil && duration > 0 {
			return duration
		}
	}
	return fallback
}

func retryCountFromEnv(envVar string, fallback int) int {
	if env := os.Getenv(envVar); env != "" {
		if count, err := strconv.Atoi(env); err == nil && count >= 0 {
			return count
		}
	}
	return fallback
}
