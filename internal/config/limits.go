package config

// ProviderLimitsConfig controls how hard we lean on the upstream provider.
type ProviderLimitsConfig struct {
	RequestsPerMinute int
	RetryAttempts     int
	RetryBackoff      Duration
	BreakerFailures   int
	BreakerCooldown   Duration
}

func loadProviderLimits() ProviderLimitsConfig {
	return ProviderLimitsConfig{
		RequestsPerMinute: intEnvOrDefault(envRequestsPerMinute, defaultRequestsPerMinute),
		RetryAttempts:     intEnvOrDefault(envRetryAttempts, defaultRetryAttempts),
		RetryBackoff:      durationEnvOrDefault(envRetryBackoff, defaultRetryBackoff),
		BreakerFailures:   intEnvOrDefault(envBreakerFailures, defaultBreakerFailures),
		BreakerCooldown:   durationEnvOrDefault(envBreakerCooldown, defaultBreakerCooldown),
	}
}
