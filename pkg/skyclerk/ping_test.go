package skyclerk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPingService_Ping(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Get", mock.Anything, "/api/v3/5/ping", url.Values(nil), mock.Anything).
		Return(`{"status": "active"}`, nil)

	resp, err := client.Ping.Ping(context.Background())

	require.NoError(t, err)
	assert.Equal(t, PingStatusActive, resp.Status)

	mockTransport.AssertExpectations(t)
}

func TestPingMonitor_LogoutClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "logout"}`))
	}))
	defer server.Close()

	client, err := NewClient(&ClientOptions{
		BaseURL:   server.URL,
		Token:     "tok",
		AccountID: 1,
	})
	require.NoError(t, err)
	require.True(t, client.IsAuthenticated())

	var gotStatus atomic.Value
	client.Ping.StartMonitor(context.Background(), &MonitorOptions{
		Interval: 10 * time.Millisecond,
		OnStatus: func(status PingStatus) { gotStatus.Store(status) },
	})

	assert.Eventually(t, func() bool {
		return !client.IsAuthenticated()
	}, 2*time.Second, 10*time.Millisecond, "logout status must clear the session")

	assert.Equal(t, PingStatusLogout, gotStatus.Load())
}

func TestPingMonitor_SwallowsTickErrors(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&hits, 1)
		if n < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"status": "logout"}`))
	}))
	defer server.Close()

	client, err := NewClient(&ClientOptions{
		BaseURL:   server.URL,
		Token:     "tok",
		AccountID: 1,
	})
	require.NoError(t, err)

	client.Ping.StartMonitor(context.Background(), &MonitorOptions{Interval: 10 * time.Millisecond})

	// The loop must survive the failing ticks and reach the logout.
	assert.Eventually(t, func() bool {
		return !client.IsAuthenticated()
	}, 2*time.Second, 10*time.Millisecond)

	assert.GreaterOrEqual(t, atomic.LoadInt64(&hits), int64(3))
}

func TestPingMonitor_RestartReplacesRunningMonitor(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Write([]byte(`{"status": "active"}`))
	}))
	defer server.Close()

	client, err := NewClient(&ClientOptions{
		BaseURL:   server.URL,
		Token:     "tok",
		AccountID: 1,
	})
	require.NoError(t, err)

	// Starting twice must leave a single timer running.
	client.Ping.StartMonitor(context.Background(), &MonitorOptions{Interval: 20 * time.Millisecond})
	client.Ping.StartMonitor(context.Background(), &MonitorOptions{Interval: 20 * time.Millisecond})

	time.Sleep(110 * time.Millisecond)
	client.Ping.StopMonitor()

	// Let any in-flight tick land before sampling.
	time.Sleep(30 * time.Millisecond)
	stopped := atomic.LoadInt64(&hits)

	// Roughly five ticks for one monitor; two would have doubled it.
	assert.LessOrEqual(t, stopped, int64(8))
	assert.GreaterOrEqual(t, stopped, int64(3))

	// No further ticks after stop.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, stopped, atomic.LoadInt64(&hits))

	// Stop is idempotent.
	client.Ping.StopMonitor()
}
