package skyclerk

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// DefaultPingInterval is how often the monitor checks subscription status.
const DefaultPingInterval = 10 * time.Second

// MonitorOptions configures the periodic health check.
type MonitorOptions struct {
	// Interval overrides DefaultPingInterval
	Interval time.Duration

	// OnStatus is called with the status of every successful tick
	OnStatus func(status PingStatus)
}

// pingService implements the PingService interface. It owns the single
// monitor goroutine; starting a new monitor always cancels the old one
// first so there is never more than one timer running.
type pingService struct {
	client *Client

	mu     sync.Mutex
	cancel context.CancelFunc
}

// Ping issues one health check
func (s *pingService) Ping(ctx context.Context) (*PingResponse, error) {
	path, err := s.client.accountPath("ping")
	if err != nil {
		return nil, err
	}

	var resp PingResponse
	if err := s.client.get(ctx, path, nil, &resp); err != nil {
		return nil, errors.Wrap(err, "ping failed")
	}

	return &resp, nil
}

// StartMonitor starts the periodic health check, replacing any monitor
// already running.
func (s *pingService) StartMonitor(ctx context.Context, opts *MonitorOptions) {
	interval := DefaultPingInterval
	var onStatus func(PingStatus)
	if opts != nil {
		if opts.Interval > 0 {
			interval = opts.Interval
		}
		onStatus = opts.OnStatus
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	monitorCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(monitorCtx, interval, onStatus)
}

// StopMonitor stops the periodic health check. Safe to call repeatedly.
func (s *pingService) StopMonitor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// run is the monitor loop. A failed tick is swallowed and the next tick
// proceeds; a logout status clears the session and ends the loop.
func (s *pingService) run(ctx context.Context, interval time.Duration, onStatus func(PingStatus)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			resp, err := s.Ping(ctx)
			if err != nil {
				if logger := s.client.options.Logger; logger != nil {
					logger.Debug("Ping tick failed", "error", err)
				}
				continue
			}

			if onStatus != nil {
				onStatus(resp.Status)
			}

			if resp.Status == PingStatusLogout {
				s.client.ClearSession()
				s.client.removeSessionFile()
				s.StopMonitor()
				return
			}
		}
	}
}
