package server

import "time"

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	// Resolutions can queue behind the provider rate limiter for tens of seconds.
	writeTimeout = 2 * time.Minute
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
