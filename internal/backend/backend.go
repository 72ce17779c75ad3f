// Package backend defines the capability set the admin page consumes from
// the hosted menu service: session checks, menu reads and mutations, and a
// row-level change feed. Implementations live in the subpackages; the page
// itself never talks to a wire protocol directly.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/vparedes/menuadmin/internal/domain"
)

// Client is the full capability set of the menu backend.
type Client interface {
	// CheckSession reports whether a valid session exists.
	CheckSession(ctx context.Context) (bool, error)

	// SignOut invalidates the current session.
	SignOut(ctx context.Context) error

	// ListItems returns every row of the menu table in fetch order.
	ListItems(ctx context.Context) ([]domain.MenuItem, error)

	// UpdateItem applies a partial update to the row with the given id.
	UpdateItem(ctx context.Context, id string, patch domain.MenuItemPatch) error

	// DeleteItem removes the row with the given id.
	DeleteItem(ctx context.Context, id string) error

	// Subscribe opens a change feed scoped to the menu table. The caller
	// must Close the subscription when done.
	Subscribe(ctx context.Context) (Subscription, error)
}

// ChangeType classifies a change event.
type ChangeType string

const (
	ChangeInsert ChangeType = "insert"
	ChangeUpdate ChangeType = "update"
	ChangeDelete ChangeType = "delete"
)

// ChangeEvent is one row-level change notification. Consumers re-fetch the
// table rather than applying the event, so no payload is carried beyond the
// row id.
type ChangeEvent struct {
	Type ChangeType `json:"type"`
	ID   string     `json:"id"`
}

// Subscription is an open change feed. Events is closed after Close returns
// or when the feed fails; no event is delivered after Close.
type Subscription interface {
	Events() <-chan ChangeEvent
	Close() error
}

// Error is a failure reported by the backend. Message is what the service
// returned and is suitable for showing to the user.
type Error struct {
	Op      string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("backend: %s: %s (status %d)", e.Op, e.Message, e.Status)
	}
	return fmt.Sprintf("backend: %s: %s", e.Op, e.Message)
}

// Message extracts the backend's own message from err, falling back to the
// plain error text. Toasts show this to the user.
func Message(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Message
	}
	return err.Error()
}
