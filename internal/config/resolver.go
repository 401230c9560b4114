package config

// ResolverConfig tunes next-game resolution.
type ResolverConfig struct {
	WindowDays        int
	SeasonPageSize    int
	LiveWindow        Duration
	DisplayTimezone   string
	BoxScoreTimeout   Duration
	ConcurrentWindow  bool
	WindowConcurrency int
}

func loadResolver() ResolverConfig {
	return ResolverConfig{
		WindowDays:        intEnvOrDefault(envWindowDays, defaultWindowDays),
		SeasonPageSize:    intEnvOrDefault(envSeasonPageSize, defaultSeasonPageSize),
		LiveWindow:        durationEnvOrDefault(envLiveWindow, defaultLiveWindow),
		DisplayTimezone:   envOrDefault(envDisplayTimezone, defaultDisplayTimezone),
		BoxScoreTimeout:   durationEnvOrDefault(envBoxScoreTimeout, defaultBoxScoreTimeout),
		ConcurrentWindow:  boolEnvOrDefault(envConcurrentWindow, defaultConcurrentWindow),
		WindowConcurrency: intEnvOrDefault(envWindowConcurrency, defaultWindowConcurrency),
	}
}
