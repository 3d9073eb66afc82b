package schema

import (
	"log/slog"

	"github.com/getmockd/fixturegen/pkg/logging"
)

type options struct {
	logger   *slog.Logger
	seed     *uint64
	identity string
}

func newOptions(opts []Option) *options {
	o := &options{logger: logging.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures loading and building.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSeed overrides the document's seed.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// WithIdentity overrides the document's identity provider kind.
func WithIdentity(kind string) Option {
	return func(o *options) {
		o.identity = kind
	}
}
