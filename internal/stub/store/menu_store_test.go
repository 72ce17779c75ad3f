package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vparedes/menuadmin/internal/domain"
	"github.com/vparedes/menuadmin/internal/stub/db"
)

func newTestStore(t *testing.T) *MenuStore {
	t.Helper()
	database, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewMenuStore(database)
}

func seed(t *testing.T, s *MenuStore) {
	t.Helper()
	for _, item := range domain.SampleMenu() {
		require.NoError(t, s.Create(context.Background(), item))
	}
}

func TestCreateAndList(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	items, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "Tacos al Pastor", items[0].Name["en"])
	assert.Equal(t, []string{"pork", "pineapple", "onion", "cilantro", "corn tortilla"},
		items[0].Ingredients)
	assert.True(t, items[0].IsPopular)
	assert.True(t, items[1].IsVegetarian)
}

func TestListEmpty(t *testing.T) {
	s := newTestStore(t)

	items, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestGetByID(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	item, err := s.GetByID(context.Background(), "2")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Guacamole Tradicional", item.Name["es"])

	missing, err := s.GetByID(context.Background(), "999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPatchUpdatesOnlySetFields(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	price := "$16.99"
	require.NoError(t, s.Patch(context.Background(), "1", domain.MenuItemPatch{Price: &price}))

	item, err := s.GetByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "$16.99", item.Price)
	assert.Equal(t, "Tacos al Pastor", item.Name["en"], "unpatched fields survive")
	assert.Equal(t, "Tacos", item.Category)
}

func TestPatchMissingRow(t *testing.T) {
	s := newTestStore(t)

	price := "$1.00"
	err := s.Patch(context.Background(), "999", domain.MenuItemPatch{Price: &price})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	require.NoError(t, s.Delete(context.Background(), "2"))

	items, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ID)

	assert.ErrorIs(t, s.Delete(context.Background(), "2"), ErrNotFound)
}

func TestCount(t *testing.T) {
	s := newTestStore(t)

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	seed(t, s)

	n, err = s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
