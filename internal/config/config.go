package config

// Config holds runtime configuration for the server.
type Config struct {
	Port        string
	Provider    string
	Balldontlie BalldontlieConfig
	Limits      ProviderLimitsConfig
	Resolver    ResolverConfig
	HTTP        HTTPConfig
	Metrics     MetricsConfig
}

// HTTPConfig controls the public HTTP surface.
type HTTPConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:        envOrDefault(envPort, defaultPort),
		Provider:    envOrDefault(envProvider, defaultProvider),
		Balldontlie: loadBalldontlie(),
		Limits:      loadProviderLimits(),
		Resolver:    loadResolver(),
		HTTP: HTTPConfig{
			AllowedOrigins: listEnvOrDefault(envCORSOrigins, []string{"*"}),
		},
		Metrics: loadMetrics(),
	}
}
