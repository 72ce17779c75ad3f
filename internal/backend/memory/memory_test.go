package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vparedes/menuadmin/internal/backend"
	"github.com/vparedes/menuadmin/internal/domain"
)

func TestListReturnsCopies(t *testing.T) {
	c := NewSeeded(domain.SampleMenu())

	items, err := c.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	items[0].Price = "$0.00"

	again, err := c.ListItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "$12.99", again[0].Price)
}

func TestUpdateItem(t *testing.T) {
	c := NewSeeded(domain.SampleMenu())

	price := "$16.99"
	err := c.UpdateItem(context.Background(), "1", domain.MenuItemPatch{Price: &price})
	require.NoError(t, err)

	items, err := c.ListItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "$16.99", items[0].Price)
}

func TestUpdateUnknownID(t *testing.T) {
	c := NewSeeded(domain.SampleMenu())

	price := "$16.99"
	err := c.UpdateItem(context.Background(), "99", domain.MenuItemPatch{Price: &price})
	require.Error(t, err)

	var be *backend.Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 404, be.Status)
}

func TestDeleteItem(t *testing.T) {
	c := NewSeeded(domain.SampleMenu())

	require.NoError(t, c.DeleteItem(context.Background(), "2"))

	items, err := c.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ID)
}

func TestSubscribeDeliversChanges(t *testing.T) {
	c := NewSeeded(domain.SampleMenu())

	sub, err := c.Subscribe(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Close() })

	price := "$16.99"
	require.NoError(t, c.UpdateItem(context.Background(), "1", domain.MenuItemPatch{Price: &price}))
	require.NoError(t, c.DeleteItem(context.Background(), "2"))

	ev := waitEvent(t, sub)
	assert.Equal(t, backend.ChangeUpdate, ev.Type)
	assert.Equal(t, "1", ev.ID)

	ev = waitEvent(t, sub)
	assert.Equal(t, backend.ChangeDelete, ev.Type)
	assert.Equal(t, "2", ev.ID)
}

func TestCloseStopsDelivery(t *testing.T) {
	c := NewSeeded(domain.SampleMenu())

	sub, err := c.Subscribe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, c.SubscriberCount())

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close(), "double close is safe")
	assert.Equal(t, 0, c.SubscriberCount())
	assert.Equal(t, 1, c.ClosedCount())

	require.NoError(t, c.DeleteItem(context.Background(), "1"))

	_, open := <-sub.Events()
	assert.False(t, open, "channel closed, no events after Close")
}

func TestSignOutInvalidatesSession(t *testing.T) {
	c := NewSeeded(nil)

	ok, err := c.CheckSession(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.SignOut(context.Background()))

	ok, err = c.CheckSession(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func waitEvent(t *testing.T, sub backend.Subscription) backend.ChangeEvent {
	t.Helper()
	select {
	case ev := <-sub.Events():
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for change event")
		return backend.ChangeEvent{}
	}
}
