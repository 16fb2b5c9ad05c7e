package app

import (
	"log/slog"
	"os"

	"github.com/servizo/servizo/internal/conversation"
	"github.com/servizo/servizo/internal/notification"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.conversation.enabled") {
		if err := conversation.New(conversation.Dependency{
			DBConn:     a.dbConn,
			Messaging:  a.messaging,
			Instrument: a.ins,
			UID:        a.uid,
			Validator:  a.validator,
			Router:     a.router,
		}); err != nil {
			slog.Error("failed to init module conversation", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:         a.ctx,
			DBConn:      a.dbConn,
			Messaging:   a.messaging,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			UUID:        a.uuid,
			Clock:       a.clock,
			Goroutine:   a.goroutine,
			Validator:   a.validator,
			Router:      a.router,
			Mail:        a.mail,
			SMS:         a.sms,
			Idempotency: a.idemp,
			Cron:        a.cron,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
