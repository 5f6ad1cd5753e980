package skyclerk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAPIStub serves the endpoints the end-to-end flows touch.
func newAPIStub(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("username") != "jane@example.com" || r.PostForm.Get("password") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"user_id": 42, "access_token": "e2e-token"}`))
	})

	mux.HandleFunc("/oauth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer e2e-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{
			"id": 42, "first_name": "Jane", "last_name": "Doe", "email": "jane@example.com",
			"accounts": [{"id": 1, "owner_id": 42, "name": "Jane LLC", "locale": "en-US", "currency": "USD"}]
		}`))
	})

	mux.HandleFunc("/api/v3/1/ledger", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer e2e-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		w.Header().Set("X-Last-Page", "false")
		w.Write([]byte(`[{"Id": 1, "AccountId": 1, "Date": "2026-03-01", "Amount": -12.50, "Note": "Coffee"}]`))
	})

	return httptest.NewServer(mux)
}

func TestEndToEnd_LoginAndListLedger(t *testing.T) {
	server := newAPIStub(t)
	defer server.Close()

	client, err := NewClient(&ClientOptions{
		BaseURL:  server.URL,
		ClientID: "test-client-id",
	})
	require.NoError(t, err)
	require.False(t, client.IsAuthenticated())

	err = client.Auth.Login(context.Background(), "jane@example.com", "secret")
	require.NoError(t, err)

	assert.True(t, client.IsAuthenticated())
	assert.Equal(t, int64(1), client.ActiveAccount(), "first account auto-selected")

	session := client.GetSession()
	require.NotNil(t, session)
	assert.Equal(t, "e2e-token", session.Token)
	assert.Equal(t, int64(42), session.UserID)

	list, err := client.Ledger.List(context.Background(), &LedgerListOptions{Page: 1})
	require.NoError(t, err)
	assert.False(t, list.LastPage)
	require.Len(t, list.Entries, 1)
	assert.Equal(t, "Coffee", list.Entries[0].Note)
	assert.Equal(t, -12.50, list.Entries[0].Amount)
}

func TestEndToEnd_BadLogin(t *testing.T) {
	server := newAPIStub(t)
	defer server.Close()

	client, err := NewClient(&ClientOptions{BaseURL: server.URL, ClientID: "test-client-id"})
	require.NoError(t, err)

	err = client.Auth.Login(context.Background(), "jane@example.com", "wrong")
	assert.ErrorIs(t, err, ErrLoginFailed)
	assert.False(t, client.IsAuthenticated())
}

func TestEndToEnd_SessionPersistence(t *testing.T) {
	server := newAPIStub(t)
	defer server.Close()

	sessionFile := filepath.Join(t.TempDir(), "session.json")

	client, err := NewClient(&ClientOptions{
		BaseURL:     server.URL,
		ClientID:    "test-client-id",
		SessionFile: sessionFile,
	})
	require.NoError(t, err)
	require.NoError(t, client.Auth.Login(context.Background(), "jane@example.com", "secret"))

	// A fresh client picks the session up from disk.
	reloaded, err := NewClient(&ClientOptions{
		BaseURL:     server.URL,
		SessionFile: sessionFile,
	})
	require.NoError(t, err)
	assert.True(t, reloaded.IsAuthenticated())
	assert.Equal(t, int64(1), reloaded.ActiveAccount())

	list, err := reloaded.Ledger.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, list.Entries, 1)
}

func TestEndToEnd_LogoutClearsEverything(t *testing.T) {
	server := newAPIStub(t)
	defer server.Close()

	sessionFile := filepath.Join(t.TempDir(), "session.json")

	client, err := NewClient(&ClientOptions{
		BaseURL:     server.URL,
		ClientID:    "test-client-id",
		SessionFile: sessionFile,
	})
	require.NoError(t, err)
	require.NoError(t, client.Auth.Login(context.Background(), "jane@example.com", "secret"))

	client.Auth.Logout()

	assert.False(t, client.IsAuthenticated())
	assert.Nil(t, client.GetSession())
	assert.Equal(t, int64(0), client.ActiveAccount())

	// Logout removed the persisted session too.
	fresh, err := NewClient(&ClientOptions{BaseURL: server.URL, SessionFile: sessionFile})
	require.NoError(t, err)
	assert.False(t, fresh.IsAuthenticated())

	// Clearing again is harmless.
	client.ClearSession()
	assert.False(t, client.IsAuthenticated())
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
	assert.False(t, client.IsAuthenticated())
}

func TestNewClientWithToken(t *testing.T) {
	client, err := NewClientWithToken("direct-token", 9)
	require.NoError(t, err)

	assert.True(t, client.IsAuthenticated())
	assert.Equal(t, int64(9), client.ActiveAccount())
}

func TestClient_UnauthenticatedCallFailsFast(t *testing.T) {
	// No server: the call must fail before any I/O is attempted.
	client, err := NewClient(&ClientOptions{BaseURL: "http://127.0.0.1:1", AccountID: 3})
	require.NoError(t, err)

	_, err = client.Ledger.List(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
