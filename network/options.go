// SPDX-License-Identifier: MIT

package network

import "github.com/katalvlaran/rosterflow/cost"

// Option customizes network construction.
type Option func(*config)

// config is resolved once per Build and read by every Constructor.
type config struct {
	schedule cost.Schedule
}

func newConfig(opts ...Option) config {
	c := config{schedule: cost.Linear()}
	for _, o := range opts {
		o(&c)
	}

	return c
}

// WithSchedule sets the rank-to-cost schedule of preference edges.
// Panics on nil.
func WithSchedule(s cost.Schedule) Option {
	if s == nil {
		panic("network: WithSchedule(nil)")
	}
	return func(c *config) {
		c.schedule = s
	}
}
