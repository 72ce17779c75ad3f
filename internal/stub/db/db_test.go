package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenForTesting(t *testing.T) {
	database, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, database.Close()) })

	assert.NoError(t, database.Ping())
}

func TestMigrationsCreateSchema(t *testing.T) {
	database, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, database.Close()) })

	var tableName string
	err = database.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='menu_items'",
	).Scan(&tableName)
	require.NoError(t, err)
	assert.Equal(t, "menu_items", tableName)
}

func TestMigrateIsIdempotent(t *testing.T) {
	database, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, database.Close()) })

	assert.NoError(t, Migrate(database))
}
