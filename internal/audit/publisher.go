package audit

import (
	"context"
	"log/slog"
	"time"
)

// Publisher hands events to a worker inbox without blocking domain logic.
// A full inbox drops the event and logs; audit is best-effort in the demo,
// the receipt itself is the durable record.
type Publisher struct {
	inbox  chan<- Event
	logger *slog.Logger
}

func NewPublisher(inbox chan<- Event, logger *slog.Logger) *Publisher {
	return &Publisher{inbox: inbox, logger: logger}
}

func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "audit inbox full, dropping event",
			"action", event.Action,
			"wallet_address", event.WalletAddress,
		)
	}
}
