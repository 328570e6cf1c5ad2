// SPDX-License-Identifier: MIT

package spin

import "go.uber.org/zap"

// MaxSites bounds N so that 2^N and its products with a boson dimension stay
// well inside int range and inside memory that a sparse operator can occupy.
const MaxSites = 30

// Option configures a Factory.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for cache-miss diagnostics (debug level).
// A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func gatherOptions(user ...Option) options {
	o := options{logger: zap.NewNop()}
	for _, set := range user {
		set(&o)
	}

	return o
}
