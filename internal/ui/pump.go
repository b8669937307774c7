package ui

import (
	"context"
	"fmt"
	"time"
)

// DefaultTick is the redraw interval.
const DefaultTick = 200 * time.Millisecond

// KeySource delivers raw key presses and terminal failures.
type KeySource interface {
	Keys() <-chan Key
	Errors() <-chan error
}

// StartPump merges key presses and a fixed-rate clock into one ordered event
// stream. The returned channel is never closed; the pump stops only when ctx
// is canceled. Events wait in an unbounded queue until the consumer takes
// them, with consecutive ticks collapsed into one.
func StartPump(ctx context.Context, src KeySource, interval time.Duration) <-chan Event {
	if interval <= 0 {
		interval = DefaultTick
	}
	out := make(chan Event)
	go pump(ctx, src, interval, out)
	return out
}

func pump(ctx context.Context, src KeySource, interval time.Duration, out chan<- Event) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	keys := src.Keys()
	errs := src.Errors()
	var queue []Event

	push := func(ev Event) {
		if ev.Kind == EventTick && len(queue) > 0 && queue[len(queue)-1].Kind == EventTick {
			return
		}
		queue = append(queue, ev)
	}

	for {
		var send chan<- Event
		var next Event
		if len(queue) > 0 {
			send = out
			next = queue[0]
		}

		select {
		case <-ctx.Done():
			return
		case k, ok := <-keys:
			if !ok {
				keys = nil
				push(fatal(ErrChannelClosed))
				continue
			}
			push(KeyPress(k))
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			push(fatal(fmt.Errorf("%w: %w", ErrTerminal, err)))
		case <-ticker.C:
			push(Tick())
		case send <- next:
			queue = queue[1:]
		}
	}
}
