package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/servizo/servizo/internal/notification/dispatch"
	"github.com/servizo/servizo/internal/notification/entity"
	"github.com/servizo/servizo/internal/pkg/goerror"
)

type digestKey struct {
	userID  int64
	channel entity.Channel
}

// FlushDeferred sends due deferred notifications as one digest per user and
// channel, then stamps them flushed. Users currently inside quiet hours are
// skipped and picked up by a later run.
func (s *Usecase) FlushDeferred(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "FlushDeferred")
	defer span.End()

	due, err := s.repoDB.ListDueDeferred(ctx, s.clock.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list due deferred notifications", "error", err)
		return goerror.NewServer(err)
	}
	if len(due) == 0 {
		return nil
	}

	groups := make(map[digestKey][]entity.DeferredNotification)
	for _, d := range due {
		key := digestKey{userID: d.UserID, channel: d.Channel}
		groups[key] = append(groups[key], d)
	}

	for key, items := range groups {
		prefs := s.loadPreferences(ctx, key.userID)
		if prefs.InQuietHours(s.clock.Now()) {
			continue
		}

		rcpt, err := s.repoDB.GetAudienceUser(ctx, key.userID)
		if err != nil {
			if !errors.Is(err, goerror.ErrNotFound) {
				slog.ErrorContext(ctx, "failed to repo get audience user", "user_id", key.userID, "error", err)
			}
			continue
		}

		out := s.dispatcher.Send(ctx, key.channel, *rcpt, digestPayload(items))
		if !out.Delivered && out.Reason == entity.ReasonTransient {
			// leave unflushed so the next run retries
			continue
		}

		ids := make([]int64, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ID)
		}
		if err := s.repoDB.MarkDeferredFlushed(ctx, ids); err != nil {
			slog.ErrorContext(ctx, "failed to repo mark deferred flushed", "user_id", key.userID, "error", err)
		}
	}

	return nil
}

func digestPayload(items []entity.DeferredNotification) dispatch.Payload {
	if len(items) == 1 {
		return dispatch.Payload{
			Kind:    items[0].Kind,
			Subject: items[0].Subject,
			Content: items[0].Content,
		}
	}

	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		if item.Subject != "" {
			sb.WriteString(item.Subject)
			sb.WriteString("\n")
		}
		sb.WriteString(item.Content)
	}

	return dispatch.Payload{
		Kind:    items[0].Kind,
		Subject: fmt.Sprintf("You have %d new notifications", len(items)),
		Content: sb.String(),
	}
}
