package event

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTopicMatches(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"document.changed", "document.changed", true},
		{"document.changed", "document.*", true},
		{"document.changed", "*.changed", true},
		{"document.changed", "**", true},
		{"document.changed", "selection.*", false},
		{"document.changed", "document", false},
		{"document", "document.**", true},
		{"a.b.c", "a.*", false},
		{"a.b.c", "a.**.c", true},
	}
	for _, tt := range tests {
		if got := tt.topic.Matches(tt.pattern); got != tt.want {
			t.Errorf("%q.Matches(%q) = %v, want %v", tt.topic, tt.pattern, got, tt.want)
		}
	}
}

func TestTopicIsValid(t *testing.T) {
	for _, topic := range []Topic{"", ".a", "a.", "a..b"} {
		if topic.IsValid() {
			t.Errorf("%q should be invalid", topic)
		}
	}
	if !TopicDocumentChanged.IsValid() {
		t.Error("document.changed should be valid")
	}
}

func TestPublishDeliversInOrder(t *testing.T) {
	bus := NewBus()
	var got []string

	record := func(name string) Handler {
		return func(_ context.Context, ev Event) error {
			got = append(got, name+":"+ev.Topic.String())
			return nil
		}
	}
	if _, err := bus.Subscribe("document.*", record("a")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := bus.Subscribe("**", record("b")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := bus.Subscribe(TopicSelectionChanged, record("c")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := bus.Publish(context.Background(), NewEvent(TopicDocumentChanged, 1, "test")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a:document.changed", "b:document.changed"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected %v, got %v", want, got)
	}

	stats := bus.Stats()
	if stats.EventsPublished != 1 || stats.EventsDelivered != 2 || stats.SubscriptionsNow != 3 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0
	sub, err := bus.Subscribe(TopicDocumentChanged, func(context.Context, Event) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := bus.Unsubscribe(sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.IsActive() {
		t.Error("subscription should be inactive")
	}
	if err := bus.Unsubscribe(sub); !errors.Is(err, ErrSubscriptionNotFound) {
		t.Errorf("expected ErrSubscriptionNotFound, got %v", err)
	}
	_ = bus.Publish(context.Background(), NewEvent(TopicDocumentChanged, nil, "test"))
	if calls != 0 {
		t.Errorf("unsubscribed handler called %d times", calls)
	}
}

func TestSubscribeValidation(t *testing.T) {
	bus := NewBus()
	if _, err := bus.Subscribe("", func(context.Context, Event) error { return nil }); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("expected ErrInvalidTopic, got %v", err)
	}
	if _, err := bus.Subscribe(TopicDocumentChanged, nil); !errors.Is(err, ErrNilHandler) {
		t.Errorf("expected ErrNilHandler, got %v", err)
	}
}

func TestHandlerErrorsAndPanics(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	bus := NewBus(WithLogger(zap.New(core)))
	errBoom := errors.New("boom")
	ran := false

	_, _ = bus.Subscribe("**", func(context.Context, Event) error { return errBoom })
	_, _ = bus.Subscribe("**", func(context.Context, Event) error { panic("render crashed") })
	_, _ = bus.Subscribe("**", func(context.Context, Event) error {
		ran = true
		return nil
	})

	err := bus.Publish(context.Background(), NewEvent(TopicSelectionChanged, nil, "test"))
	if !errors.Is(err, errBoom) || !errors.Is(err, ErrHandlerPanic) {
		t.Errorf("expected joined handler errors, got %v", err)
	}
	if !ran {
		t.Error("handlers after a failing handler should still run")
	}
	if logs.Len() != 2 {
		t.Errorf("expected 2 warnings, got %d", logs.Len())
	}
	if s := bus.Stats(); s.HandlerErrors != 2 || s.HandlerPanics != 1 {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestPublishCancelledContext(t *testing.T) {
	bus := NewBus()
	calls := 0
	_, _ = bus.Subscribe("**", func(context.Context, Event) error {
		calls++
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := bus.Publish(ctx, NewEvent(TopicDocumentChanged, nil, "test")); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("handler should not run on cancelled context, ran %d times", calls)
	}
}

func TestNewEventMetadata(t *testing.T) {
	a := NewEvent(TopicDocumentChanged, "x", "engine")
	b := NewEvent(TopicDocumentChanged, "x", "engine")
	if a.Metadata.ID == "" || a.Metadata.ID == b.Metadata.ID {
		t.Error("events should get unique ids")
	}
	if a.Metadata.Source != "engine" || a.Metadata.Timestamp.IsZero() {
		t.Errorf("unexpected metadata %+v", a.Metadata)
	}
}
