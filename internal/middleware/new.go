package middleware

import (
	"eod-extractor/pkg/log"
)

// Config carries the knobs for the HTTP middlewares.
type Config struct {
	AuthToken       string
	RateLimitPerMin int
}

type Middleware struct {
	l   log.Logger
	cfg Config
}

func New(l log.Logger, cfg Config) Middleware {
	return Middleware{
		l:   l,
		cfg: cfg,
	}
}
