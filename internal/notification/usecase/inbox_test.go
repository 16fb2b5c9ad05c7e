package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/servizo/servizo/internal/pkg/goerror"
)

func TestInboxList(t *testing.T) {
	noon := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	t.Run("DefaultLimit", func(t *testing.T) {
		// Arrange
		repo := newFakeRepo()
		uc := newTestUsecase(t, repo, &fakeDispatcher{}, noon)

		// Act
		_, err := uc.InboxList(authCtx(11, "client"), InboxListInput{})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastListParams[0] != 11 || repo.lastListParams[1] != 20 || repo.lastListParams[2] != 0 {
			t.Fatalf("expected caller-scoped list with default limit 20, got %v", repo.lastListParams)
		}
	})

	t.Run("LimitTooLarge", func(t *testing.T) {
		// Arrange
		uc := newTestUsecase(t, newFakeRepo(), &fakeDispatcher{}, noon)

		// Act
		_, err := uc.InboxList(authCtx(11, "client"), InboxListInput{Limit: 500})

		// Assert
		assertCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		// Arrange
		uc := newTestUsecase(t, newFakeRepo(), &fakeDispatcher{}, noon)

		// Act
		_, err := uc.InboxList(context.Background(), InboxListInput{})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})
}
