// Package counter renders progress as one line per finished item, prefixed by a counter.
//
//	[1/3] ✓ org.webjars:swagger-ui:3.25.0
//	[2/3] ✗ org.webjars:redoc:2.0.0
//	    ↳ failed to extract resources
//	      ↳ unable to open archive
package counter

import (
	"fmt"
	"io"
	"strings"

	"ocm.software/open-component-model/webassets/cli/internal/render/progress"
)

type visualizer[T any] struct {
	out   io.Writer
	total int
	done  int
}

// New creates a visualizer writing to out for total items.
func New[T any](out io.Writer, total int) progress.Visualizer[T] {
	return &visualizer[T]{out: out, total: total}
}

func (v *visualizer[T]) HandleEvent(event progress.Event[T]) {
	var mark string
	switch event.State {
	case progress.Completed:
		mark = "✓"
	case progress.Failed:
		mark = "✗"
	case progress.Cancelled:
		mark = "-"
	default:
		return
	}
	v.done++
	_, _ = fmt.Fprintf(v.out, "[%d/%d] %s %s\n", v.done, v.total, mark, event.ID)
	if event.Err != nil {
		_, _ = io.WriteString(v.out, TreeErrorFormatter(event.Err))
	}
}

func (v *visualizer[T]) Summary(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(v.out, "stopped after %d of %d\n", v.done, v.total)
	}
}

// TreeErrorFormatter formats an error chain as an indented tree, one level per ": " separator.
func TreeErrorFormatter(err error) string {
	if err == nil {
		return ""
	}
	var sb strings.Builder
	for i, part := range strings.Split(err.Error(), ": ") {
		fmt.Fprintf(&sb, "    %s↳ %s\n", strings.Repeat("  ", i), part)
	}
	return sb.String()
}
