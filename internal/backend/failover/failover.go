// Package failover wraps a primary backend client with the development-mode
// fallback behavior. When a primary call fails and development mode is
// active, the call is served from an in-memory standby instead: reads return
// the standby's data (seeded with the demo menu on first use), mutations are
// applied to the standby in place. Without development mode the primary's
// error propagates untouched.
//
// This is the single place the dual-path logic lives; neither the page
// controller nor the web handlers branch on development mode.
package failover

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vparedes/menuadmin/internal/backend"
	"github.com/vparedes/menuadmin/internal/backend/memory"
	"github.com/vparedes/menuadmin/internal/domain"
)

// DevMode reports whether the development authentication flag is active.
// *devstate.Store satisfies it.
type DevMode interface {
	Enabled() bool
}

// Event describes one fallback transition, reported through the notify hook
// so the UI can surface an informational toast.
type Event struct {
	Op  string // "list", "update", "delete"
	Err error  // the primary's failure
}

// Client decorates a primary backend.Client with standby behavior.
type Client struct {
	primary backend.Client
	standby *memory.Client
	dev     DevMode
	notify  func(Event)
	logger  *slog.Logger
	seed    sync.Once
}

// Option configures a Client.
type Option func(*Client)

// WithNotify registers a hook invoked on every fallback transition.
func WithNotify(fn func(Event)) Option {
	return func(c *Client) { c.notify = fn }
}

// New wraps primary. The standby starts empty and is seeded with the demo
// menu the first time a read falls back to it.
func New(primary backend.Client, dev DevMode, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		primary: primary,
		standby: memory.New(),
		dev:     dev,
		notify:  func(Event) {},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Standby exposes the in-memory standby, mainly for tests.
func (c *Client) Standby() *memory.Client { return c.standby }

func (c *Client) CheckSession(ctx context.Context) (bool, error) {
	ok, err := c.primary.CheckSession(ctx)
	if err == nil && ok {
		return true, nil
	}
	if c.dev.Enabled() {
		if err != nil {
			c.logger.Warn("session check failed, development flag authorizes", "error", err)
		}
		return true, nil
	}
	return ok, err
}

func (c *Client) SignOut(ctx context.Context) error {
	return c.primary.SignOut(ctx)
}

func (c *Client) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	items, err := c.primary.ListItems(ctx)
	if err == nil {
		return items, nil
	}
	if !c.dev.Enabled() {
		return nil, err
	}
	c.fellBack("list", err)
	c.seedOnce()
	return c.standby.ListItems(ctx)
}

func (c *Client) UpdateItem(ctx context.Context, id string, patch domain.MenuItemPatch) error {
	err := c.primary.UpdateItem(ctx, id, patch)
	if err == nil {
		return nil
	}
	if !c.dev.Enabled() {
		return err
	}
	c.fellBack("update", err)
	c.seedOnce()
	return c.standby.UpdateItem(ctx, id, patch)
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	err := c.primary.DeleteItem(ctx, id)
	if err == nil {
		return nil
	}
	if !c.dev.Enabled() {
		return err
	}
	c.fellBack("delete", err)
	c.seedOnce()
	return c.standby.DeleteItem(ctx, id)
}

// Subscribe always subscribes to the primary; change events are a live
// backend concern and the standby has nothing to push.
func (c *Client) Subscribe(ctx context.Context) (backend.Subscription, error) {
	return c.primary.Subscribe(ctx)
}

func (c *Client) seedOnce() {
	c.seed.Do(func() {
		c.standby.Seed(domain.SampleMenu())
	})
}

func (c *Client) fellBack(op string, err error) {
	c.logger.Warn("backend call failed, serving from standby", "op", op, "error", err)
	c.notify(Event{Op: op, Err: err})
}
