// Package gateway abstracts direct-message delivery to a user. The scheduler
// treats an unreachable recipient and a transient failure identically: log,
// skip, no retry within the tick.
package gateway

import "context"

// Outcome classifies one delivery attempt.
type Outcome int

const (
	// Delivered: the message was accepted by the chat platform.
	Delivered Outcome = iota
	// Unreachable: the recipient can't receive messages (blocked the bot,
	// never started a chat). Retrying won't help.
	Unreachable
	// TransientError: network failure, rate limit, or a server-side error.
	TransientError
)

func (o Outcome) String() string {
	switch o {
	case Delivered:
		return "delivered"
	case Unreachable:
		return "unreachable"
	default:
		return "transient_error"
	}
}

// Notifier sends a direct message to a user. The error carries detail for
// logging when the outcome is not Delivered.
type Notifier interface {
	Notify(ctx context.Context, userID int64, text string) (Outcome, error)
}
