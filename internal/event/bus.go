package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the logger used to report handler failures.
func WithLogger(l *zap.Logger) Option {
	return func(b *Bus) {
		if l != nil {
			b.logger = l
		}
	}
}

// Stats holds delivery counters.
type Stats struct {
	EventsPublished  uint64
	EventsDelivered  uint64
	HandlerErrors    uint64
	HandlerPanics    uint64
	SubscriptionsNow int
}

// Subscription is a registered handler.
type Subscription struct {
	id      string
	pattern Topic
	handler Handler
	active  atomic.Bool
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string { return s.id }

// Topic returns the subscribed topic pattern.
func (s *Subscription) Topic() Topic { return s.pattern }

// IsActive returns true until the subscription is cancelled.
func (s *Subscription) IsActive() bool { return s.active.Load() }

// Bus delivers events synchronously to matching subscriptions.
// Bus is safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	subs   []*Subscription
	logger *zap.Logger

	eventsPublished atomic.Uint64
	eventsDelivered atomic.Uint64
	handlerErrors   atomic.Uint64
	handlerPanics   atomic.Uint64
}

// NewBus creates a new event bus with the given options.
func NewBus(opts ...Option) *Bus {
	b := &Bus{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers handler for every topic matching pattern.
func (b *Bus) Subscribe(pattern Topic, handler Handler) (*Subscription, error) {
	if !pattern.IsValid() {
		return nil, fmt.Errorf("subscribe %q: %w", pattern, ErrInvalidTopic)
	}
	if handler == nil {
		return nil, ErrNilHandler
	}

	sub := &Subscription{id: uuid.NewString(), pattern: pattern, handler: handler}
	sub.active.Store(true)

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()
	return sub, nil
}

// Unsubscribe cancels a subscription.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s == sub {
			s.active.Store(false)
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Publish delivers an event to every matching subscription and returns the
// joined handler errors, if any. Handlers may publish or subscribe; the set
// of recipients is fixed when Publish starts.
func (b *Bus) Publish(ctx context.Context, ev Event) error {
	if !ev.Topic.IsValid() {
		return fmt.Errorf("publish %q: %w", ev.Topic, ErrInvalidTopic)
	}
	b.eventsPublished.Add(1)

	b.mu.RLock()
	var targets []*Subscription
	for _, s := range b.subs {
		if ev.Topic.Matches(s.pattern) {
			targets = append(targets, s)
		}
	}
	b.mu.RUnlock()

	var errs []error
	for _, s := range targets {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if !s.IsActive() {
			continue
		}
		if err := b.deliver(ctx, s, ev); err != nil {
			b.handlerErrors.Add(1)
			b.logger.Warn("event handler failed",
				zap.String("topic", ev.Topic.String()),
				zap.String("subscription", s.id),
				zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Bus) deliver(ctx context.Context, s *Subscription, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	b.eventsDelivered.Add(1)
	return s.handler(ctx, ev)
}

// Stats returns the current delivery counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	n := len(b.subs)
	b.mu.RUnlock()
	return Stats{
		EventsPublished:  b.eventsPublished.Load(),
		EventsDelivered:  b.eventsDelivered.Load(),
		HandlerErrors:    b.handlerErrors.Load(),
		HandlerPanics:    b.handlerPanics.Load(),
		SubscriptionsNow: n,
	}
}
