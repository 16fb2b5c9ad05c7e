package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/servizo/servizo/internal/pkg/clock"
	"github.com/servizo/servizo/internal/pkg/config"
	"github.com/servizo/servizo/internal/pkg/goroutine"
	"github.com/servizo/servizo/internal/pkg/idempotency"
	"github.com/servizo/servizo/internal/pkg/instrument"
	"github.com/servizo/servizo/internal/pkg/jwt"
	"github.com/servizo/servizo/internal/pkg/mail"
	"github.com/servizo/servizo/internal/pkg/messaging"
	"github.com/servizo/servizo/internal/pkg/router"
	"github.com/servizo/servizo/internal/pkg/sms"
	"github.com/servizo/servizo/internal/pkg/uid"
	"github.com/servizo/servizo/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uid       uid.NumberID
	uuid      uid.StringID
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	sms       sms.Sender
	messaging messaging.Messaging
	cron      *cron.Cron

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initSMS()
	app.initMessaging()
	app.initCron()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
