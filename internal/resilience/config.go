package resilience

import (
	"time"

	"github.com/sells-group/adscout/internal/config"
)

// FromMediaConfig derives retry and breaker settings for the media API.
func FromMediaConfig(cfg config.MediaConfig) (RetryConfig, CircuitBreakerConfig) {
	retry := DefaultRetryConfig()
	if cfg.RetryAttempts > 0 {
		retry.MaxAttempts = cfg.RetryAttempts
	}

	breaker := DefaultCircuitBreakerConfig()
	if cfg.BreakerThreshold > 0 {
		breaker.FailureThreshold = cfg.BreakerThreshold
	}
	if cfg.BreakerResetSecs > 0 {
		breaker.ResetTimeout = time.Duration(cfg.BreakerResetSecs) * time.Second
	}
	return retry, breaker
}
