package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vparedes/menuadmin/internal/backend"
	"github.com/vparedes/menuadmin/internal/backend/rest"
	"github.com/vparedes/menuadmin/internal/config"
	"github.com/vparedes/menuadmin/internal/domain"
	"github.com/vparedes/menuadmin/internal/stub/api"
	"github.com/vparedes/menuadmin/internal/stub/db"
	"github.com/vparedes/menuadmin/internal/stub/store"
)

const (
	testAPIKey   = "test-api-key"
	testEmail    = "admin@example.com"
	testPassword = "hunter2"
)

func newStub(t *testing.T) *httptest.Server {
	t.Helper()

	database, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	cfg := &config.StubConfig{
		APIKey:        testAPIKey,
		JWTSecret:     "test-secret",
		AdminEmail:    testEmail,
		AdminPassword: testPassword,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	server := api.New(cfg, store.NewMenuStore(database), logger)
	require.NoError(t, server.Seed(context.Background()))
	t.Cleanup(server.Close)

	srv := httptest.NewServer(server)
	t.Cleanup(srv.Close)
	return srv
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	body, err := json.Marshal(map[string]string{
		"email":    testEmail,
		"password": testPassword,
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/session", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("api_key", testAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func newClient(t *testing.T) (*rest.Client, *httptest.Server) {
	t.Helper()
	srv := newStub(t)
	token := login(t, srv)
	return rest.New(srv.URL, testAPIKey, token), srv
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newStub(t)

	body := bytes.NewBufferString(`{"email":"admin@example.com","password":"wrong"}`)
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/session", body)
	require.NoError(t, err)
	req.Header.Set("api_key", testAPIKey)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMissingAPIKeyIsForbidden(t *testing.T) {
	srv := newStub(t)

	resp, err := http.Get(srv.URL + "/v1/menu/items")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequestWithoutTokenIsUnauthorized(t *testing.T) {
	srv := newStub(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/v1/menu/items", nil)
	require.NoError(t, err)
	req.Header.Set("api_key", testAPIKey)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionRoundTrip(t *testing.T) {
	client, _ := newClient(t)

	ok, err := client.CheckSession(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, client.SignOut(context.Background()))

	ok, err = client.CheckSession(context.Background())
	require.NoError(t, err, "revoked token reads as no session")
	assert.False(t, ok)
}

func TestListSeededItems(t *testing.T) {
	client, _ := newClient(t)

	items, err := client.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "Tacos al Pastor", items[0].Name.In("en"))
	assert.Equal(t, "2", items[1].ID)
}

func TestUpdateItemOverTheWire(t *testing.T) {
	client, _ := newClient(t)

	price := "$16.99"
	err := client.UpdateItem(context.Background(), "1", domain.MenuItemPatch{Price: &price})
	require.NoError(t, err)

	items, err := client.ListItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "$16.99", items[0].Price)
	assert.Equal(t, "Tacos al Pastor", items[0].Name.In("en"), "other fields untouched")
}

func TestUpdateMissingItem(t *testing.T) {
	client, _ := newClient(t)

	price := "$16.99"
	err := client.UpdateItem(context.Background(), "999", domain.MenuItemPatch{Price: &price})
	require.Error(t, err)

	var be *backend.Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusNotFound, be.Status)
	assert.Equal(t, "menu item not found", be.Message)
}

func TestDeleteItemOverTheWire(t *testing.T) {
	client, _ := newClient(t)

	require.NoError(t, client.DeleteItem(context.Background(), "2"))

	items, err := client.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ID)
}

func TestChangeFeedDeliversMutations(t *testing.T) {
	client, _ := newClient(t)

	sub, err := client.Subscribe(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Close() })

	price := "$16.99"
	require.NoError(t, client.UpdateItem(context.Background(), "1", domain.MenuItemPatch{Price: &price}))

	select {
	case ev := <-sub.Events():
		assert.Equal(t, backend.ChangeUpdate, ev.Type)
		assert.Equal(t, "1", ev.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update event")
	}

	require.NoError(t, client.DeleteItem(context.Background(), "2"))

	select {
	case ev := <-sub.Events():
		assert.Equal(t, backend.ChangeDelete, ev.Type)
		assert.Equal(t, "2", ev.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delete event")
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	database, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	menuStore := store.NewMenuStore(database)
	cfg := &config.StubConfig{
		APIKey:        testAPIKey,
		JWTSecret:     "test-secret",
		AdminEmail:    testEmail,
		AdminPassword: testPassword,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := api.New(cfg, menuStore, logger)
	t.Cleanup(server.Close)

	require.NoError(t, server.Seed(context.Background()))
	require.NoError(t, server.Seed(context.Background()))

	count, err := menuStore.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
