// SPDX-License-Identifier: MIT

package model

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/qham/spin"
	"github.com/katalvlaran/qham/term"
)

// Option configures a builder (and, through Build, its factory).
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used by the builder, its accumulators and any
// factory created by Build. A nil logger is ignored.
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

func (o options) termOptions() []term.Option { return []term.Option{term.WithLogger(o.logger)} }

func (o options) spinOptions() []spin.Option { return []spin.Option{spin.WithLogger(o.logger)} }
