package store

import (
	"fmt"
	"log/slog"

	"github.com/viant/vecstore/index"
	"github.com/viant/vecstore/index/balltree"
	"github.com/viant/vecstore/index/linear"
	"github.com/viant/vecstore/logger"
)

// DefaultK is the neighbor count used by callers that do not choose one.
const DefaultK = 5

// Options configures a Store.
type Options struct {
	// Kind selects the backend. Defaults to index.KindLinear.
	Kind index.Kind

	// LeafSize is the ball-tree leaf capacity. Must be positive when Kind is
	// index.KindBallTree.
	LeafSize int

	// Logger receives debug records for every operation.
	Logger *slog.Logger
}

// DefaultOptions contains the default configuration of a Store.
var DefaultOptions = Options{
	Kind:     index.KindLinear,
	LeafSize: balltree.DefaultLeafSize,
}

// Option mutates Options.
type Option func(o *Options)

// WithIndex selects the backend kind.
func WithIndex(kind index.Kind) Option {
	return func(o *Options) {
		o.Kind = kind
	}
}

// WithLeafSize sets the ball-tree leaf capacity.
func WithLeafSize(size int) Option {
	return func(o *Options) {
		o.LeafSize = size
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

func (o *Options) newIndex() (index.Index, error) {
	switch o.Kind {
	case index.KindLinear:
		return linear.New(), nil
	case index.KindBallTree:
		if o.LeafSize < 1 {
			return nil, fmt.Errorf("%w: leaf size must be positive, got %d", ErrInvalidConfiguration, o.LeafSize)
		}
		return balltree.New(balltree.WithLeafSize(o.LeafSize)), nil
	}
	return nil, fmt.Errorf("%w: %w: %q", ErrInvalidConfiguration, index.ErrUnknownKind, o.Kind)
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return logger.Nop()
	}
	return o.Logger
}
