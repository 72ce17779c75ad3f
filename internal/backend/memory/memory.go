// Package memory is an in-process backend double. It backs development mode
// and tests; state is ephemeral and lives only as long as the process.
package memory

import (
	"context"
	"sync"

	"github.com/vparedes/menuadmin/internal/backend"
	"github.com/vparedes/menuadmin/internal/domain"
)

// Client implements backend.Client over an in-memory slice.
type Client struct {
	mu        sync.Mutex
	items     []domain.MenuItem
	signedIn  bool
	subs      map[*subscription]struct{}
	closedCnt int
}

// New returns an empty client. Use Seed to load data.
func New() *Client {
	return &Client{subs: make(map[*subscription]struct{})}
}

// NewSeeded returns a client pre-loaded with items and a valid session.
func NewSeeded(items []domain.MenuItem) *Client {
	c := New()
	c.signedIn = true
	c.items = items
	return c
}

// Seed replaces the stored items without emitting change events.
func (c *Client) Seed(items []domain.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
}

// SetSignedIn toggles the simulated session.
func (c *Client) SetSignedIn(ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.signedIn = ok
}

func (c *Client) CheckSession(context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.signedIn, nil
}

func (c *Client) SignOut(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.signedIn = false
	return nil
}

func (c *Client) ListItems(context.Context) ([]domain.MenuItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.MenuItem, len(c.items))
	copy(out, c.items)
	return out, nil
}

func (c *Client) UpdateItem(_ context.Context, id string, patch domain.MenuItemPatch) error {
	c.mu.Lock()
	for i := range c.items {
		if c.items[i].ID == id {
			patch.Apply(&c.items[i])
			c.mu.Unlock()
			c.broadcast(backend.ChangeEvent{Type: backend.ChangeUpdate, ID: id})
			return nil
		}
	}
	c.mu.Unlock()
	return &backend.Error{Op: "update", Status: 404, Message: "menu item not found"}
}

func (c *Client) DeleteItem(_ context.Context, id string) error {
	c.mu.Lock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.mu.Unlock()
			c.broadcast(backend.ChangeEvent{Type: backend.ChangeDelete, ID: id})
			return nil
		}
	}
	c.mu.Unlock()
	return &backend.Error{Op: "delete", Status: 404, Message: "menu item not found"}
}

// Insert adds an item and emits an insert event. The admin page has no
// creation flow; this exists so tests can drive insert notifications.
func (c *Client) Insert(item domain.MenuItem) {
	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()
	c.broadcast(backend.ChangeEvent{Type: backend.ChangeInsert, ID: item.ID})
}

func (c *Client) Subscribe(context.Context) (backend.Subscription, error) {
	sub := &subscription{
		client: c,
		events: make(chan backend.ChangeEvent, 16),
	}
	c.mu.Lock()
	c.subs[sub] = struct{}{}
	c.mu.Unlock()
	return sub, nil
}

// SubscriberCount returns the number of open subscriptions.
func (c *Client) SubscriberCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// ClosedCount returns how many subscriptions have been released.
func (c *Client) ClosedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closedCnt
}

func (c *Client) broadcast(ev backend.ChangeEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for sub := range c.subs {
		select {
		case sub.events <- ev:
		default: // slow subscriber, drop rather than block
		}
	}
}

type subscription struct {
	client    *Client
	events    chan backend.ChangeEvent
	closeOnce sync.Once
}

func (s *subscription) Events() <-chan backend.ChangeEvent { return s.events }

func (s *subscription) Close() error {
	s.closeOnce.Do(func() {
		s.client.mu.Lock()
		delete(s.client.subs, s)
		s.client.closedCnt++
		s.client.mu.Unlock()
		close(s.events)
	})
	return nil
}
