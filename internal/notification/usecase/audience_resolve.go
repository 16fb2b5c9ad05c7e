package usecase

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"github.com/servizo/servizo/internal/notification/entity"
	"github.com/servizo/servizo/internal/pkg/goerror"
)

// resolveAudience evaluates the conjunctive filter against the user
// population. Day windows use absolute cutoffs computed at resolution time,
// and an empty result is not an error.
func (s *Usecase) resolveAudience(ctx context.Context, filter entity.AudienceFilter) ([]entity.AudienceUser, error) {
	users, err := s.repoDB.ListAudienceUsers(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	return lo.Filter(users, func(u entity.AudienceUser, _ int) bool {
		return filter.Matches(u, now)
	}), nil
}

type AudiencePreviewInput struct {
	Role             *string `validate:"omitempty,oneof=client worker admin super_admin"`
	District         *string `validate:"omitempty,max=100"`
	State            *string `validate:"omitempty,max=100"`
	IsVerified       *bool
	IsActive         *bool
	LastLoginDays    *int `validate:"omitempty,gt=0"`
	RegistrationDays *int `validate:"omitempty,gt=0"`
}

func (in AudiencePreviewInput) filter() entity.AudienceFilter {
	return entity.AudienceFilter{
		Role:             in.Role,
		District:         in.District,
		State:            in.State,
		IsVerified:       in.IsVerified,
		IsActive:         in.IsActive,
		LastLoginDays:    in.LastLoginDays,
		RegistrationDays: in.RegistrationDays,
	}
}

// AudiencePreview returns the users a filter currently matches, for campaign
// authors to sanity-check targeting before launch.
func (s *Usecase) AudiencePreview(ctx context.Context, in AudiencePreviewInput) ([]entity.AudienceUser, error) {
	ctx, span := s.startSpan(ctx, "AudiencePreview")
	defer span.End()

	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	users, err := s.resolveAudience(ctx, in.filter())
	if err != nil {
		slog.ErrorContext(ctx, "failed to resolve audience", "error", err)
		return nil, goerror.NewServer(err)
	}

	return users, nil
}
