// Package admin holds the menu page controller: the session guard, the list
// loader, the change subscriber, and the mutation handlers that together
// make up the administrative menu page. The controller owns the page's view
// state; rendering and HTTP plumbing live in internal/web.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vparedes/menuadmin/internal/backend"
	"github.com/vparedes/menuadmin/internal/backend/failover"
	"github.com/vparedes/menuadmin/internal/domain"
	"github.com/vparedes/menuadmin/internal/i18n"
)

// Notifier receives user-visible notifications. The web layer renders them
// as toasts; tests record them.
type Notifier interface {
	Info(msg string)
	Success(msg string)
	Error(msg string)
}

// ConfirmFunc asks the user to confirm a destructive action. Deletion is a
// no-op when it returns false.
type ConfirmFunc func(item domain.MenuItem) bool

// DevState is the slice of the development flag store the controller needs.
type DevState interface {
	Clear() error
}

// Controller drives the admin menu page against a backend.Client.
type Controller struct {
	backend backend.Client
	dev     DevState
	notify  Notifier
	confirm ConfirmFunc
	msgs    *i18n.Printer
	logger  *slog.Logger

	mu      sync.Mutex
	items   []domain.MenuItem
	loaded  bool
	loading bool
	editing string

	subMu    sync.Mutex
	sub      backend.Subscription
	done     chan struct{}
	wg       sync.WaitGroup
	onReload func()
}

// New builds a controller. confirm may be nil, in which case every
// confirmation is granted (the web layer confirms client-side before the
// request ever reaches the controller). onReload may be nil; when set it
// runs after every reload triggered by a backend change event.
func New(client backend.Client, dev DevState, notify Notifier, msgs *i18n.Printer, logger *slog.Logger, confirm ConfirmFunc, onReload func()) *Controller {
	if confirm == nil {
		confirm = func(domain.MenuItem) bool { return true }
	}
	if onReload == nil {
		onReload = func() {}
	}
	return &Controller{
		backend:  client,
		dev:      dev,
		notify:   notify,
		confirm:  confirm,
		msgs:     msgs,
		logger:   logger,
		onReload: onReload,
	}
}

// FallbackNotify adapts failover transitions into toasts: a read served from
// the standby surfaces the "showing demo data" notice, mutation fallbacks
// stay silent since their handlers already raise a success toast.
func (c *Controller) FallbackNotify() func(failover.Event) {
	return func(ev failover.Event) {
		if ev.Op == "list" {
			c.notify.Info(c.msgs.Msg("load.demo"))
		}
	}
}

// Guard decides page access: a valid backend session (or, inside a failover
// client, the development flag) admits; anything else sends the user to the
// login route. One check per page entry, no retry.
func (c *Controller) Guard(ctx context.Context) bool {
	ok, err := c.backend.CheckSession(ctx)
	if err != nil {
		c.logger.Warn("session check failed", "error", err)
	}
	if !ok {
		c.notify.Info(c.msgs.Msg("signin.required"))
	}
	return ok
}

// Load fetches all menu rows and replaces the local collection. A failed
// fetch leaves the previous collection untouched and raises an error toast
// with the backend's message.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	items, err := c.backend.ListItems(ctx)

	c.mu.Lock()
	c.loading = false
	if err == nil {
		c.items = items
		c.loaded = true
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Error("menu load failed", "error", err)
		c.notify.Error(fmt.Sprintf(c.msgs.Msg("load.failed"), backend.Message(err)))
	}
}

// Start opens the change subscription and performs the initial load. Every
// change event re-runs the loader unconditionally; the event payload is
// never applied directly.
func (c *Controller) Start(ctx context.Context) error {
	sub, err := c.backend.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to menu changes: %w", err)
	}

	c.subMu.Lock()
	c.sub = sub
	c.done = make(chan struct{})
	c.subMu.Unlock()

	c.Load(ctx)

	c.wg.Add(1)
	go c.watch(sub)
	return nil
}

func (c *Controller) watch(sub backend.Subscription) {
	defer c.wg.Done()
	for {
		select {
		case ev, open := <-sub.Events():
			if !open {
				return
			}
			c.logger.Debug("menu change event", "type", ev.Type, "id", ev.ID)
			c.Load(context.Background())
			c.onReload()
		case <-c.done:
			return
		}
	}
}

// Close releases the change subscription. Safe to call once per Start; the
// page must always release it on teardown.
func (c *Controller) Close() error {
	c.subMu.Lock()
	sub := c.sub
	done := c.done
	c.sub = nil
	c.subMu.Unlock()

	if sub == nil {
		return nil
	}
	close(done)
	err := sub.Close()
	c.wg.Wait()
	return err
}

// Update applies a partial update to one record, then reconciles with a
// reload and closes the edit modal. A propagated backend error leaves the
// modal untouched.
func (c *Controller) Update(ctx context.Context, id string, patch domain.MenuItemPatch) {
	if err := c.backend.UpdateItem(ctx, id, patch); err != nil {
		c.logger.Error("menu update failed", "id", id, "error", err)
		c.notify.Error(fmt.Sprintf(c.msgs.Msg("update.failed"), backend.Message(err)))
		return
	}

	c.notify.Success(c.msgs.Msg("update.success"))
	c.Load(ctx)
	c.CloseEditor()
}

// Delete removes one record after interactive confirmation; declining is a
// no-op.
func (c *Controller) Delete(ctx context.Context, id string) {
	if !c.confirm(c.itemByID(id)) {
		return
	}

	if err := c.backend.DeleteItem(ctx, id); err != nil {
		c.logger.Error("menu delete failed", "id", id, "error", err)
		c.notify.Error(fmt.Sprintf(c.msgs.Msg("delete.failed"), backend.Message(err)))
		return
	}

	c.notify.Success(c.msgs.Msg("delete.success"))
	c.Load(ctx)
}

// SignOut always clears the development flag, attempts backend sign-out, and
// swallows its failure after logging; clearing local state alone ends the
// session from the page's perspective.
func (c *Controller) SignOut(ctx context.Context) {
	if err := c.dev.Clear(); err != nil {
		c.logger.Error("clearing development flag failed", "error", err)
	}
	if err := c.backend.SignOut(ctx); err != nil {
		c.logger.Warn("backend sign-out failed", "error", err)
	}
	c.notify.Info(c.msgs.Msg("signout.done"))
}

// AddItem is the stubbed creation flow.
func (c *Controller) AddItem() {
	c.notify.Info(c.msgs.Msg("additem.pending"))
}

// OpenEditor marks the edit modal open for the given record.
func (c *Controller) OpenEditor(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = id
}

// CloseEditor closes the edit modal without persisting anything.
func (c *Controller) CloseEditor() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = ""
}

// Snapshot is the render state of the page.
type Snapshot struct {
	Items []domain.MenuItem
	// Loading is true while a fetch is in flight.
	Loading bool
	// Spinner is true only when loading with nothing displayed yet; during
	// reloads the grid stays visible.
	Spinner bool
	// Editing is the record open in the edit modal, nil when closed.
	Editing *domain.MenuItem
}

// Snapshot returns a copy of the current view state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Items:   make([]domain.MenuItem, len(c.items)),
		Loading: c.loading,
		Spinner: c.loading && !c.loaded,
	}
	copy(snap.Items, c.items)
	if c.editing != "" {
		for i := range c.items {
			if c.items[i].ID == c.editing {
				item := c.items[i]
				snap.Editing = &item
				break
			}
		}
	}
	return snap
}

func (c *Controller) itemByID(id string) domain.MenuItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.ID == id {
			return item
		}
	}
	return domain.MenuItem{ID: id}
}
