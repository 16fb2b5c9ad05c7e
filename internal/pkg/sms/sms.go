package sms

import (
	"context"
	"io"
)

// MaxContentLength is the maximum message body length accepted by the gateway.
//
// Messages beyond this limit are rejected, never truncated.
const MaxContentLength = 1600

// Message represents a text message payload.
type Message struct {
	// To is the destination number in E.164 form.
	To string
	// Body is the message text.
	Body string
	// WhatsApp selects the WhatsApp transport instead of plain SMS.
	WhatsApp bool
}

// Sender abstracts an SMS/WhatsApp provider.
type Sender interface {
	io.Closer
	// Send dispatches the given message using the underlying provider.
	Send(ctx context.Context, msg Message) error
}
