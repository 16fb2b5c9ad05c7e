package notification

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
	"github.com/servizo/servizo/internal/notification/dispatch"
	"github.com/servizo/servizo/internal/notification/inbound"
	"github.com/servizo/servizo/internal/notification/outbound/db"
	"github.com/servizo/servizo/internal/notification/outbound/email"
	"github.com/servizo/servizo/internal/notification/outbound/push"
	smsout "github.com/servizo/servizo/internal/notification/outbound/sms"
	"github.com/servizo/servizo/internal/notification/usecase"
	"github.com/servizo/servizo/internal/pkg/clock"
	"github.com/servizo/servizo/internal/pkg/config"
	"github.com/servizo/servizo/internal/pkg/goroutine"
	"github.com/servizo/servizo/internal/pkg/idempotency"
	"github.com/servizo/servizo/internal/pkg/instrument"
	"github.com/servizo/servizo/internal/pkg/mail"
	"github.com/servizo/servizo/internal/pkg/messaging"
	"github.com/servizo/servizo/internal/pkg/router"
	"github.com/servizo/servizo/internal/pkg/sms"
	"github.com/servizo/servizo/internal/pkg/uid"
	"github.com/servizo/servizo/internal/pkg/validator"
)

type Dependency struct {
	Ctx         context.Context
	DBConn      *pgxpool.Pool
	Messaging   messaging.Messaging
	Config      config.Config
	Instrument  instrument.Instrumentation
	UID         uid.NumberID
	UUID        uid.StringID
	Clock       clock.Clocker
	Goroutine   *goroutine.Manager
	Validator   validator.Validator
	Router      *router.Router
	Mail        mail.Mail
	SMS         sms.Sender
	Idempotency idempotency.Idempotency
	Cron        *cron.Cron
}

func New(dep Dependency) error {
	dbNotif := db.NewDB(dep.DBConn, dep.Instrument)

	dispatcher := dispatch.New(dispatch.Config{
		Inbox:       dbNotif,
		Push:        push.New(dep.Messaging, dep.Config.GetString("modules.notification.push_topic"), dep.Instrument),
		Email:       email.New(dep.Mail, dep.Instrument),
		SMS:         smsout.New(dep.SMS, dep.Instrument),
		UID:         dep.UID,
		Ins:         dep.Instrument,
		MaxAttempts: uint64(dep.Config.GetInt("modules.notification.max_send_attempts")),
		Backoff:     dep.Config.GetSecond("modules.notification.send_backoff_seconds"),
	})

	uc := usecase.NewNotification(usecase.Dependency{
		RepoDB:      dbNotif,
		Config:      dep.Config,
		UID:         dep.UID,
		Clock:       dep.Clock,
		Validator:   dep.Validator,
		Dispatcher:  dispatcher,
		Idempotency: dep.Idempotency,
		Instrument:  dep.Instrument,
		PoolSize:    dep.Config.GetInt("modules.notification.dispatch_pool_size"),
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}

	if dep.Cron != nil {
		flushCtx := dep.Ctx
		if flushCtx == nil {
			flushCtx = context.Background()
		}
		for _, spec := range []string{"@hourly", "@daily"} {
			if _, err := dep.Cron.AddFunc(spec, func() {
				if err := uc.FlushDeferred(context.WithoutCancel(flushCtx)); err != nil {
					slog.Error("failed to flush deferred notifications", "error", err)
				}
			}); err != nil {
				return err
			}
		}
	}

	return nil
}
