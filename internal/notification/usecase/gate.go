package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/servizo/servizo/internal/notification/entity"
)

// decide is the notification gate: per (preferences, kind, channel) it yields
// Deliver, Suppress or Defer. Quiet hours take precedence over frequency, and
// Defer is never treated as Deliver.
func decide(prefs entity.Preferences, kind entity.Kind, ch entity.Channel, now time.Time) entity.Decision {
	if !prefs.KindEnabled(kind) {
		return entity.DecisionSuppress
	}
	if !prefs.ChannelEnabled(ch) {
		return entity.DecisionSuppress
	}
	if prefs.InQuietHours(now) {
		return entity.DecisionSuppress
	}
	if prefs.Frequency == entity.FrequencyImmediate {
		return entity.DecisionDeliver
	}

	return entity.DecisionDefer
}

// deferUntil picks the moment a deferred notification becomes due for the
// periodic flush.
func deferUntil(freq entity.Frequency, now time.Time) time.Time {
	if freq == entity.FrequencyDaily {
		return now.Add(24 * time.Hour).Truncate(time.Hour)
	}

	return now.Add(time.Hour).Truncate(time.Hour)
}

// enqueueDeferred stores a Defer verdict for the digest flusher. Failures are
// logged only; a lost digest entry must not fail the triggering operation.
func (s *Usecase) enqueueDeferred(ctx context.Context, prefs entity.Preferences, userID int64, kind entity.Kind, ch entity.Channel, subject, content string) {
	err := s.repoDB.CreateDeferred(ctx, entity.CreateDeferred{
		ID:            s.uid.Generate(),
		UserID:        userID,
		Kind:          kind,
		Channel:       ch,
		Subject:       subject,
		Content:       content,
		DeferredUntil: deferUntil(prefs.Frequency, s.clock.Now()),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create deferred notification",
			"user_id", userID, "kind", kind.String(), "channel", ch.String(), "error", err)
	}
}
