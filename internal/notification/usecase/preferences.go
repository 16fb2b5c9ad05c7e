package usecase

import (
	"context"
	"log/slog"

	"github.com/servizo/servizo/internal/notification/entity"
	"github.com/servizo/servizo/internal/pkg/goerror"
)

type PreferencesGetInput struct {
	UserID int64 `validate:"required,gt=0"`
}

func (s *Usecase) PreferencesGet(ctx context.Context, in PreferencesGetInput) (*entity.Preferences, error) {
	ctx, span := s.startSpan(ctx, "PreferencesGet")
	defer span.End()

	if _, err := s.requireSelfOrAdmin(ctx, in.UserID); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	prefs := s.loadPreferences(ctx, in.UserID)

	return &prefs, nil
}

type PreferencesUpdateInput struct {
	UserID int64 `validate:"required,gt=0"`

	NewMessage          *bool
	PriorityMessage     *bool
	ConversationStarted *bool
	AdminResponse       *bool

	Push    *bool
	Email   *bool
	Sound   *bool
	Desktop *bool

	Frequency         *string `validate:"omitempty,oneof=immediate hourly daily"`
	QuietHoursEnabled *bool
	QuietHoursStart   *string `validate:"omitempty,time_of_day"`
	QuietHoursEnd     *string `validate:"omitempty,time_of_day"`
}

// PreferencesUpdate merges a partial patch over the stored (or default)
// record and persists the result, materializing the row on first save.
func (s *Usecase) PreferencesUpdate(ctx context.Context, in PreferencesUpdateInput) (*entity.Preferences, error) {
	ctx, span := s.startSpan(ctx, "PreferencesUpdate")
	defer span.End()

	if _, err := s.requireSelfOrAdmin(ctx, in.UserID); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	patch := entity.PreferencesPatch{
		NewMessage:          in.NewMessage,
		PriorityMessage:     in.PriorityMessage,
		ConversationStarted: in.ConversationStarted,
		AdminResponse:       in.AdminResponse,
		Push:                in.Push,
		Email:               in.Email,
		Sound:               in.Sound,
		Desktop:             in.Desktop,
		QuietHoursEnabled:   in.QuietHoursEnabled,
	}

	if in.Frequency != nil {
		freq := entity.FrequencyFromString(*in.Frequency)
		patch.Frequency = &freq
	}
	if in.QuietHoursStart != nil {
		start, err := entity.ParseTimeOfDay(*in.QuietHoursStart)
		if err != nil {
			return nil, goerror.NewInvalidInput(nil, "quiet_hours_start", err.Error())
		}
		patch.QuietHoursStart = &start
	}
	if in.QuietHoursEnd != nil {
		end, err := entity.ParseTimeOfDay(*in.QuietHoursEnd)
		if err != nil {
			return nil, goerror.NewInvalidInput(nil, "quiet_hours_end", err.Error())
		}
		patch.QuietHoursEnd = &end
	}

	merged := patch.Apply(s.loadPreferences(ctx, in.UserID))
	if err := s.repoDB.UpsertPreferences(ctx, merged); err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert preferences", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &merged, nil
}

type PreferencesResetInput struct {
	UserID int64 `validate:"required,gt=0"`
}

// PreferencesReset overwrites all fields with system defaults. The row is
// re-derived, not deleted.
func (s *Usecase) PreferencesReset(ctx context.Context, in PreferencesResetInput) (*entity.Preferences, error) {
	ctx, span := s.startSpan(ctx, "PreferencesReset")
	defer span.End()

	if _, err := s.requireSelfOrAdmin(ctx, in.UserID); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	defaults := entity.DefaultPreferences(in.UserID)
	if err := s.repoDB.UpsertPreferences(ctx, defaults); err != nil {
		slog.ErrorContext(ctx, "failed to repo reset preferences", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &defaults, nil
}
