package email

import "context"

// Sender provides a testable abstraction over email delivery.
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}
