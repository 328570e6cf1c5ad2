// SPDX-License-Identifier: MIT

package term

import "go.uber.org/zap"

// Option configures an Accumulator.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger for rebuild diagnostics. A nil logger is ignored.
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
