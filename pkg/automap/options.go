package automap

// options.go defines the functional options accepted by New/NewFrozen and
// the config object they populate, following the teacher's
// pkg/config.go pattern: every option just captures a pointer to an
// external collaborator (logger, registry, hasher override); nothing here
// allocates beyond that.
//
// © 2025 automap authors. MIT License.

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures a map at construction time.
type Option func(*config)

// config bundles every knob that influences construction and diagnostics.
// Fields are immutable once the map is built.
type config struct {
	logger  *zap.Logger
	metrics metricsSink
	path    buildPath
}

func defaultConfig() *config {
	return &config{
		logger:  zap.NewNop(),
		metrics: noopMetrics{},
	}
}

func (c *config) apply(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// WithLogger attaches a *zap.Logger that receives a Debug line when a map
// is built, a Debug line when Add grows a mutable map's table, and a Warn
// line whenever the typed-array fast path rejects a buffer. Growth during
// construction or Update is not logged line by line. Passing nil is
// equivalent to not calling WithLogger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics registers the map's counters (builds, build duplicates,
// table growths, lookups) on reg. Passing nil is equivalent to not
// calling WithMetrics — the map falls back to a no-op sink that costs
// nothing on the hot path.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(c *config) {
		if reg != nil {
			c.metrics = newPromMetrics(reg)
		}
	}
}

// WithHasher forces the generic-object construction path even when the
// input would otherwise qualify for the typed-array fast path; useful for
// tests and benchmarks that want to compare both paths over the same
// data. It has no effect on an input that only the generic path can
// handle anyway.
func WithHasher(forceGeneric bool) Option {
	return func(c *config) {
		if forceGeneric {
			c.path = pathGenericForced
		}
	}
}

type buildPath uint8

const (
	pathAuto buildPath = iota
	pathGenericForced
)
