package entity

import (
	"time"

	"github.com/servizo/servizo/internal/pkg/valueobject"
)

// Notification is an in-app inbox row; this is where the in_app channel lands.
type Notification struct {
	ID        int64
	UserID    int64
	Kind      Kind
	Title     string
	Body      string
	Data      valueobject.JSONMap
	ReadAt    *time.Time
	CreatedAt time.Time
}

type CreateNotification struct {
	ID     int64
	UserID int64
	Kind   Kind
	Title  string
	Body   string
	Data   valueobject.JSONMap
}

// DeferredNotification holds a Defer verdict until the periodic flush picks
// it up and sends a digest.
type DeferredNotification struct {
	ID            int64
	UserID        int64
	Kind          Kind
	Channel       Channel
	Subject       string
	Content       string
	DeferredUntil time.Time
	FlushedAt     *time.Time
	CreatedAt     time.Time
}

type CreateDeferred struct {
	ID            int64
	UserID        int64
	Kind          Kind
	Channel       Channel
	Subject       string
	Content       string
	DeferredUntil time.Time
}
