package out

import (
	"context"
	"log/slog"

	"exodus/internal/modules/progress/domain"
	progressout "exodus/internal/modules/progress/port/out"
	"exodus/internal/platform/clock"
)

// ChannelNotifier hands first-completion events to a single consumer such as
// the TUI. Sends never block; events are dropped when the buffer is full.
type ChannelNotifier struct {
	events chan domain.CompletionEvent
}

func NewChannelNotifier(buffer int) *ChannelNotifier {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelNotifier{events: make(chan domain.CompletionEvent, buffer)}
}

var _ progressout.CompletionNotifier = (*ChannelNotifier)(nil)

func (n *ChannelNotifier) NotifyFirstCompletion(_ context.Context, event domain.CompletionEvent) {
	select {
	case n.events <- event:
	default:
	}
}

func (n *ChannelNotifier) Events() <-chan domain.CompletionEvent {
	return n.events
}

type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return LogNotifier{logger: logger}
}

func (n LogNotifier) NotifyFirstCompletion(ctx context.Context, event domain.CompletionEvent) {
	n.logger.InfoContext(ctx, "discipline completed", "date", clock.DateKey(event.Date), "discipline", event.DisciplineID)
}
