// Package progress reports the progress of concurrently processed items.
// A Tracker reads events from a channel and forwards them to a Visualizer.
//
// Usage:
//
//	events := make(chan progress.Event[string])
//	tracker := progress.NewTracker(events, counter.New[string](os.Stderr, 10))
//	go tracker.Start()
//	// ... send events, then close(events) ...
//	tracker.Summary(err)
package progress

import (
	"context"
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

// State is the lifecycle state of a tracked item.
type State string

const (
	Running   State = "running"
	Completed State = "completed"
	Failed    State = "failed"
	Cancelled State = "cancelled"
)

// Event reports the state of the item ID.
type Event[T any] struct {
	ID    string
	Data  T
	State State
	Err   error
}

// Visualizer displays progress events.
type Visualizer[T any] interface {
	HandleEvent(event Event[T])
	// Summary is called once after all events are handled.
	Summary(err error)
}

// IsTerminal reports whether w is connected to a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

type Tracker[T any] struct {
	events     <-chan Event[T]
	visualizer Visualizer[T]
	finished   chan struct{}
}

func NewTracker[T any](events <-chan Event[T], visualizer Visualizer[T]) *Tracker[T] {
	return &Tracker[T]{
		events:     events,
		visualizer: visualizer,
		finished:   make(chan struct{}),
	}
}

// Start forwards events until the channel is closed. Run it in its own goroutine.
// Failures caused by context cancellation are reported as Cancelled.
func (t *Tracker[T]) Start() {
	defer close(t.finished)
	for evt := range t.events {
		if evt.Err != nil && (errors.Is(evt.Err, context.Canceled) || errors.Is(evt.Err, context.DeadlineExceeded)) {
			evt.State = Cancelled
			evt.Err = nil
		}
		t.visualizer.HandleEvent(evt)
	}
}

// Summary waits until all events are handled and shows the summary.
func (t *Tracker[T]) Summary(err error) {
	<-t.finished
	t.visualizer.Summary(err)
}
