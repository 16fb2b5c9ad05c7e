// Package dispatch performs channel delivery for notifications. The four
// channels form a closed set behind one Send contract; callers get an
// aggregate-friendly outcome, never a per-channel error type.
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/servizo/servizo/internal/notification/entity"
	"github.com/servizo/servizo/internal/pkg/instrument"
	"github.com/servizo/servizo/internal/pkg/mail"
	"github.com/servizo/servizo/internal/pkg/sms"
	"github.com/servizo/servizo/internal/pkg/uid"
	"go.opentelemetry.io/otel/trace"
)

// Payload is the channel-agnostic content of one delivery.
type Payload struct {
	Kind    entity.Kind
	Subject string
	Content string
}

// Outcome is the result of one (recipient, channel) attempt.
type Outcome struct {
	Delivered bool
	Reason    entity.FailureReason
}

func success() Outcome {
	return Outcome{Delivered: true}
}

func failure(reason entity.FailureReason) Outcome {
	return Outcome{Reason: reason}
}

type InboxWriter interface {
	CreateNotification(ctx context.Context, data entity.CreateNotification) error
}

type PushSender interface {
	Send(ctx context.Context, userID int64, payload Payload) error
}

type EmailSender interface {
	Send(ctx context.Context, msg mail.Message) error
}

type SMSSender interface {
	Send(ctx context.Context, msg sms.Message) error
}

type Dispatcher struct {
	inbox    InboxWriter
	push     PushSender
	email    EmailSender
	sms      SMSSender
	uid      uid.NumberID
	ins      instrument.Instrumentation
	attempts uint64
	backoff  time.Duration
}

type Config struct {
	Inbox InboxWriter
	Push  PushSender
	Email EmailSender
	SMS   SMSSender
	UID   uid.NumberID
	Ins   instrument.Instrumentation

	// MaxAttempts bounds retries of transient failures; zero means one
	// attempt with no retry.
	MaxAttempts uint64
	Backoff     time.Duration
}

func New(cfg Config) *Dispatcher {
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}

	return &Dispatcher{
		inbox:    cfg.Inbox,
		push:     cfg.Push,
		email:    cfg.Email,
		sms:      cfg.SMS,
		uid:      cfg.UID,
		ins:      cfg.Ins,
		attempts: cfg.MaxAttempts,
		backoff:  backoff,
	}
}

func (d *Dispatcher) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return d.ins.Tracer("notification.dispatch").Start(ctx, name)
}

// Send delivers the payload to the recipient over the given channel. Failed
// attempts are classified, logged and folded into the outcome; reasons are
// never surfaced to campaign callers.
func (d *Dispatcher) Send(ctx context.Context, ch entity.Channel, rcpt entity.AudienceUser, p Payload) Outcome {
	ctx, span := d.startSpan(ctx, "Send")
	defer span.End()

	var out Outcome
	switch ch {
	case entity.ChannelInApp:
		out = d.sendInApp(ctx, rcpt, p)
	case entity.ChannelPush:
		out = d.sendPush(ctx, rcpt, p)
	case entity.ChannelEmail:
		out = d.sendEmail(ctx, rcpt, p)
	case entity.ChannelSMS:
		out = d.sendSMS(ctx, rcpt, p)
	default:
		out = failure(entity.ReasonPermanent)
	}

	if !out.Delivered {
		slog.WarnContext(ctx, "delivery attempt failed",
			"channel", ch.String(), "user_id", rcpt.ID, "reason", out.Reason.String())
	}

	return out
}

func (d *Dispatcher) sendInApp(ctx context.Context, rcpt entity.AudienceUser, p Payload) Outcome {
	err := d.inbox.CreateNotification(ctx, entity.CreateNotification{
		ID:     d.uid.Generate(),
		UserID: rcpt.ID,
		Kind:   p.Kind,
		Title:  p.Subject,
		Body:   p.Content,
	})
	if err != nil {
		return failure(entity.ReasonTransient)
	}

	return success()
}

func (d *Dispatcher) sendPush(ctx context.Context, rcpt entity.AudienceUser, p Payload) Outcome {
	if err := d.withRetry(ctx, func(ctx context.Context) error {
		return d.push.Send(ctx, rcpt.ID, p)
	}); err != nil {
		return failure(classifyTransport(err))
	}

	return success()
}

func (d *Dispatcher) sendEmail(ctx context.Context, rcpt entity.AudienceUser, p Payload) Outcome {
	if p.Subject == "" || rcpt.Email == "" {
		return failure(entity.ReasonInvalidRecipient)
	}

	if err := d.withRetry(ctx, func(ctx context.Context) error {
		return d.email.Send(ctx, mail.Message{
			To:       []string{rcpt.Email},
			Subject:  p.Subject,
			TextBody: p.Content,
		})
	}); err != nil {
		return failure(classifyTransport(err))
	}

	return success()
}

func (d *Dispatcher) sendSMS(ctx context.Context, rcpt entity.AudienceUser, p Payload) Outcome {
	if rcpt.Phone == "" {
		return failure(entity.ReasonInvalidRecipient)
	}
	if len(p.Content) > sms.MaxContentLength {
		return failure(entity.ReasonContentRejected)
	}

	if err := d.withRetry(ctx, func(ctx context.Context) error {
		return d.sms.Send(ctx, sms.Message{To: rcpt.Phone, Body: p.Content})
	}); err != nil {
		return failure(classifySMS(err))
	}

	return success()
}

// withRetry retries transient failures with constant backoff up to the
// configured attempt limit; permanent failures return immediately.
func (d *Dispatcher) withRetry(ctx context.Context, fn func(context.Context) error) error {
	backoff := retry.WithMaxRetries(d.attempts, retry.NewConstant(d.backoff))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if isTransient(err) {
			return retry.RetryableError(err)
		}

		return err
	})
}

func isTransient(err error) bool {
	if errors.Is(err, sms.ErrUnavailable) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func classifyTransport(err error) entity.FailureReason {
	if isTransient(err) {
		return entity.ReasonTransient
	}

	return entity.ReasonPermanent
}

func classifySMS(err error) entity.FailureReason {
	switch {
	case errors.Is(err, sms.ErrNoRecipient):
		return entity.ReasonInvalidRecipient
	case errors.Is(err, sms.ErrContentTooLong):
		return entity.ReasonContentRejected
	case errors.Is(err, sms.ErrUnavailable):
		return entity.ReasonTransient
	case errors.Is(err, sms.ErrRejected):
		return entity.ReasonPermanent
	default:
		return classifyTransport(err)
	}
}
