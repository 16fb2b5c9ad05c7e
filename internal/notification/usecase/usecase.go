package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/servizo/servizo/internal/notification/dispatch"
	"github.com/servizo/servizo/internal/notification/entity"
	"github.com/servizo/servizo/internal/pkg/clock"
	"github.com/servizo/servizo/internal/pkg/config"
	"github.com/servizo/servizo/internal/pkg/goerror"
	"github.com/servizo/servizo/internal/pkg/idempotency"
	"github.com/servizo/servizo/internal/pkg/instrument"
	"github.com/servizo/servizo/internal/pkg/jwt"
	"github.com/servizo/servizo/internal/pkg/uid"
	"github.com/servizo/servizo/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetPreferences(ctx context.Context, userID int64) (*entity.Preferences, error)
	UpsertPreferences(ctx context.Context, p entity.Preferences) error

	CreateCampaign(ctx context.Context, data entity.CreateCampaign) error
	GetCampaign(ctx context.Context, id int64) (*entity.BulkCampaign, error)
	CompleteCampaign(ctx context.Context, id int64, result entity.DeliveryResult) error

	CreateNotification(ctx context.Context, data entity.CreateNotification) error
	ListNotifications(ctx context.Context, userID int64, limit, offset int32) ([]entity.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID int64) (bool, error)
	MarkAllNotificationsRead(ctx context.Context, userID int64) (int64, error)
	CountUnreadNotifications(ctx context.Context, userID int64) (int64, error)

	CreateDeferred(ctx context.Context, data entity.CreateDeferred) error
	ListDueDeferred(ctx context.Context, due time.Time) ([]entity.DeferredNotification, error)
	MarkDeferredFlushed(ctx context.Context, ids []int64) error

	ListAudienceUsers(ctx context.Context) ([]entity.AudienceUser, error)
	GetAudienceUser(ctx context.Context, id int64) (*entity.AudienceUser, error)
}

type dispatcher interface {
	Send(ctx context.Context, ch entity.Channel, rcpt entity.AudienceUser, p dispatch.Payload) dispatch.Outcome
}

type Usecase struct {
	repoDB     repoDB
	cfg        config.Config
	uid        uid.NumberID
	clock      clock.Clocker
	validator  validator.Validator
	dispatcher dispatcher
	idem       idempotency.Idempotency
	ins        instrument.Instrumentation
	poolSize   int
}

type Dependency struct {
	RepoDB      repoDB
	Config      config.Config
	UID         uid.NumberID
	Clock       clock.Clocker
	Validator   validator.Validator
	Dispatcher  dispatcher
	Idempotency idempotency.Idempotency
	Instrument  instrument.Instrumentation

	// PoolSize bounds the campaign fan-out workers.
	PoolSize int
}

func NewNotification(dep Dependency) *Usecase {
	poolSize := dep.PoolSize
	if poolSize <= 0 {
		poolSize = 16
	}

	return &Usecase{
		repoDB:     dep.RepoDB,
		cfg:        dep.Config,
		uid:        dep.UID,
		clock:      dep.Clock,
		validator:  dep.Validator,
		dispatcher: dep.Dispatcher,
		idem:       dep.Idempotency,
		ins:        dep.Instrument,
		poolSize:   poolSize,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

func (s *Usecase) requireAuth(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

func (s *Usecase) requireAdmin(ctx context.Context) (*jwt.Claims, error) {
	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if !clm.IsAdmin() {
		return nil, goerror.NewBusiness("admin role required", goerror.CodeForbidden)
	}

	return clm, nil
}

// requireSelfOrAdmin lets users act on their own resources and admins on
// anyone's.
func (s *Usecase) requireSelfOrAdmin(ctx context.Context, userID int64) (*jwt.Claims, error) {
	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if clm.UserID != userID && !clm.IsAdmin() {
		return nil, goerror.NewBusiness("cannot act on another user's resources", goerror.CodeForbidden)
	}

	return clm, nil
}

// loadPreferences returns the stored record or defaults; it never fails on
// absence, and falls back to defaults on repo errors so the gate stays usable.
func (s *Usecase) loadPreferences(ctx context.Context, userID int64) entity.Preferences {
	prefs, err := s.repoDB.GetPreferences(ctx, userID)
	if err != nil {
		if !errors.Is(err, goerror.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to repo get preferences", "user_id", userID, "error", err)
		}
		return entity.DefaultPreferences(userID)
	}

	return *prefs
}
