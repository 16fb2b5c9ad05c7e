package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/servizo/servizo/internal/notification/dispatch"
	"github.com/servizo/servizo/internal/notification/entity"
	"github.com/servizo/servizo/internal/pkg/goerror"
	"github.com/servizo/servizo/internal/pkg/idempotency"
	"github.com/servizo/servizo/internal/pkg/instrument"
	"github.com/servizo/servizo/internal/pkg/jwt"
	"github.com/servizo/servizo/internal/pkg/validator"
)

type fakeRepo struct {
	mu sync.Mutex

	preferences map[int64]entity.Preferences
	campaigns   map[int64]*entity.BulkCampaign
	users       []entity.AudienceUser
	inbox       []entity.CreateNotification
	deferred    []entity.DeferredNotification

	completedResults map[int64]entity.DeliveryResult
	lastListParams   []int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		preferences:      map[int64]entity.Preferences{},
		campaigns:        map[int64]*entity.BulkCampaign{},
		completedResults: map[int64]entity.DeliveryResult{},
	}
}

func (f *fakeRepo) GetPreferences(_ context.Context, userID int64) (*entity.Preferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.preferences[userID]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &p, nil
}

func (f *fakeRepo) UpsertPreferences(_ context.Context, p entity.Preferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.preferences[p.UserID] = p
	return nil
}

func (f *fakeRepo) CreateCampaign(_ context.Context, data entity.CreateCampaign) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.campaigns[data.ID] = &entity.BulkCampaign{
		ID:           data.ID,
		CampaignName: data.CampaignName,
		Channels:     data.Channels,
		Subject:      data.Subject,
		Content:      data.Content,
		TargetFilter: data.TargetFilter,
		ScheduledFor: data.ScheduledFor,
		Status:       entity.CampaignStatusActive,
		CreatedBy:    data.CreatedBy,
	}
	return nil
}

func (f *fakeRepo) GetCampaign(_ context.Context, id int64) (*entity.BulkCampaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.campaigns[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeRepo) CompleteCampaign(_ context.Context, id int64, result entity.DeliveryResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.campaigns[id]
	if !ok {
		return goerror.ErrNotFound
	}
	c.Status = entity.CampaignStatusCompleted
	f.completedResults[id] = result
	return nil
}

func (f *fakeRepo) CreateNotification(_ context.Context, data entity.CreateNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inbox = append(f.inbox, data)
	return nil
}

func (f *fakeRepo) ListNotifications(_ context.Context, userID int64, limit, offset int32) ([]entity.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastListParams = []int64{userID, int64(limit), int64(offset)}
	return nil, nil
}

func (f *fakeRepo) MarkNotificationRead(context.Context, int64, int64) (bool, error) {
	return true, nil
}

func (f *fakeRepo) MarkAllNotificationsRead(context.Context, int64) (int64, error) {
	return 0, nil
}

func (f *fakeRepo) CountUnreadNotifications(context.Context, int64) (int64, error) {
	return 0, nil
}

func (f *fakeRepo) CreateDeferred(_ context.Context, data entity.CreateDeferred) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deferred = append(f.deferred, entity.DeferredNotification{
		ID:            data.ID,
		UserID:        data.UserID,
		Kind:          data.Kind,
		Channel:       data.Channel,
		Subject:       data.Subject,
		Content:       data.Content,
		DeferredUntil: data.DeferredUntil,
	})
	return nil
}

func (f *fakeRepo) ListDueDeferred(_ context.Context, due time.Time) ([]entity.DeferredNotification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []entity.DeferredNotification
	for _, d := range f.deferred {
		if d.FlushedAt == nil && !d.DeferredUntil.After(due) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkDeferredFlushed(_ context.Context, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	for i := range f.deferred {
		for _, id := range ids {
			if f.deferred[i].ID == id {
				f.deferred[i].FlushedAt = &now
			}
		}
	}
	return nil
}

func (f *fakeRepo) ListAudienceUsers(context.Context) ([]entity.AudienceUser, error) {
	return f.users, nil
}

func (f *fakeRepo) GetAudienceUser(_ context.Context, id int64) (*entity.AudienceUser, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := u
			return &cp, nil
		}
	}
	return nil, goerror.ErrNotFound
}

type sendAttempt struct {
	channel entity.Channel
	userID  int64
}

// fakeDispatcher records attempts; failFor marks (channel, user) pairs that
// report a failed delivery.
type fakeDispatcher struct {
	mu       sync.Mutex
	attempts []sendAttempt
	failFor  map[sendAttempt]entity.FailureReason
}

func (f *fakeDispatcher) Send(_ context.Context, ch entity.Channel, rcpt entity.AudienceUser, _ dispatch.Payload) dispatch.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()

	attempt := sendAttempt{channel: ch, userID: rcpt.ID}
	f.attempts = append(f.attempts, attempt)

	if reason, ok := f.failFor[attempt]; ok {
		return dispatch.Outcome{Delivered: false, Reason: reason}
	}
	return dispatch.Outcome{Delivered: true}
}

// fakeIdem runs the function once per key and reports completion afterwards.
type fakeIdem struct {
	done map[string]bool
}

func (f *fakeIdem) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	if f.done == nil {
		f.done = map[string]bool{}
	}
	if f.done[key] {
		return idempotency.ErrAlreadyCompleted
	}
	if err := fn(ctx); err != nil {
		return err
	}
	f.done[key] = true
	return nil
}

func (f *fakeIdem) Acquire(_ context.Context, key string, _ time.Duration) (idempotency.State, error) {
	if f.done[key] {
		return idempotency.StateCompleted, nil
	}
	return idempotency.StateNone, nil
}

func (f *fakeIdem) MarkCompleted(_ context.Context, key string, _ time.Duration) error {
	if f.done == nil {
		f.done = map[string]bool{}
	}
	f.done[key] = true
	return nil
}

func (f *fakeIdem) MarkFailed(context.Context, string, time.Duration) error {
	return nil
}

type fakeUID struct {
	mu   sync.Mutex
	next int64
}

func (f *fakeUID) Generate() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	return f.next
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

func newTestUsecase(t *testing.T, repo *fakeRepo, disp *fakeDispatcher, now time.Time) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	return NewNotification(Dependency{
		RepoDB:      repo,
		UID:         &fakeUID{},
		Clock:       fixedClock{now: now},
		Validator:   v,
		Dispatcher:  disp,
		Idempotency: &fakeIdem{},
		Instrument:  instrument.NewNoop(),
		PoolSize:    4,
	})
}

func authCtx(userID int64, role string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: userID, UserRole: role})
}

func assertCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected structured error, got %v", err)
	}
	if gerr.Code() != code {
		t.Fatalf("expected error code %v, got %v (%v)", code, gerr.Code(), err)
	}
}
