package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/quire/internal/engine/boundary"
	"github.com/dshills/quire/internal/engine/document"
	"github.com/dshills/quire/internal/event"
)

// EmptyNodePolicy decides what happens to a node a deletion leaves empty.
type EmptyNodePolicy uint8

const (
	// RetainEmptyNodes keeps zero-length nodes in the document.
	RetainEmptyNodes EmptyNodePolicy = iota

	// PruneEmptyNodes removes a node emptied by a deletion, unless it is the
	// only node left.
	PruneEmptyNodes
)

// String returns the policy name.
func (p EmptyNodePolicy) String() string {
	switch p {
	case RetainEmptyNodes:
		return "retain"
	case PruneEmptyNodes:
		return "prune"
	default:
		return "unknown"
	}
}

// ParseEmptyNodePolicy parses "retain" or "prune".
func ParseEmptyNodePolicy(s string) (EmptyNodePolicy, error) {
	switch s {
	case "", "retain":
		return RetainEmptyNodes, nil
	case "prune":
		return PruneEmptyNodes, nil
	default:
		return RetainEmptyNodes, fmt.Errorf("unknown empty node policy %q", s)
	}
}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithNodes sets the initial nodes of the document, one per content string.
func WithNodes(contents ...string) Option {
	return func(e *Engine) {
		e.docOpts = append(e.docOpts, document.WithNodes(contents...))
	}
}

// WithIDGenerator replaces the random generator used for node ids.
func WithIDGenerator(gen func() NodeID) Option {
	return func(e *Engine) {
		e.docOpts = append(e.docOpts, document.WithIDGenerator(gen))
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithBus publishes engine events on an existing bus.
func WithBus(b *event.Bus) Option {
	return func(e *Engine) {
		if b != nil {
			e.bus = b
		}
	}
}

// WithClassifier sets the word classifier used by word movement.
func WithClassifier(c boundary.Classifier) Option {
	return func(e *Engine) {
		if c != nil {
			e.classifier = c
		}
	}
}

// WithEmptyNodePolicy sets the empty node policy.
//
// Under PruneEmptyNodes a deletion that empties a node removes it, and the
// cursor lands at the end of the previous node instead of at the start of
// the deleted range. The default RetainEmptyNodes always collapses a deleted
// range to its start.
func WithEmptyNodePolicy(p EmptyNodePolicy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithDefaultNodeKind sets the kind of nodes created without an explicit
// kind. It does not restrict which kinds are allowed.
func WithDefaultNodeKind(kind string) Option {
	return func(e *Engine) {
		if kind != "" {
			e.defaultKind = kind
		}
	}
}

// WithNodeKinds sets the default node kind and restricts InsertNode to the
// given kinds. The default kind is always allowed.
func WithNodeKinds(defaultKind string, kinds ...string) Option {
	return func(e *Engine) {
		if defaultKind != "" {
			e.defaultKind = defaultKind
		}
		e.kinds = map[string]struct{}{e.defaultKind: {}}
		for _, k := range kinds {
			e.kinds[k] = struct{}{}
		}
	}
}

// WithReadOnly creates a read-only engine.
// Write operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
