package progress_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"ocm.software/open-component-model/webassets/cli/internal/render/progress"
)

type recorder struct {
	events  []progress.Event[int]
	summary error
}

func (r *recorder) HandleEvent(e progress.Event[int]) { r.events = append(r.events, e) }

func (r *recorder) Summary(err error) { r.summary = err }

func TestTracker(t *testing.T) {
	r := require.New(t)
	events := make(chan progress.Event[int])
	rec := &recorder{}
	tracker := progress.NewTracker(events, rec)
	go tracker.Start()

	failure := errors.New("unable to open archive")
	events <- progress.Event[int]{ID: "a", Data: 1, State: progress.Running}
	events <- progress.Event[int]{ID: "a", Data: 1, State: progress.Completed}
	events <- progress.Event[int]{ID: "b", Data: 2, State: progress.Failed, Err: failure}
	events <- progress.Event[int]{ID: "c", Data: 3, State: progress.Failed, Err: context.Canceled}
	close(events)
	tracker.Summary(failure)

	r.Len(rec.events, 4)
	r.Equal(progress.Completed, rec.events[1].State)
	r.Equal(progress.Failed, rec.events[2].State)
	r.ErrorIs(rec.events[2].Err, failure)
	r.Equal(progress.Cancelled, rec.events[3].State, "cancellation is not reported as failure")
	r.NoError(rec.events[3].Err)
	r.ErrorIs(rec.summary, failure)
}

func TestIsTerminal(t *testing.T) {
	require.False(t, progress.IsTerminal(&recorderWriter{}))
}

type recorderWriter struct{}

func (*recorderWriter) Write(p []byte) (int, error) { return len(p), nil }
