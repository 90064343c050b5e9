// Package connectivity tracks network reachability as a two-state machine
// (online/offline) driven by a periodic probe.
package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tkaraca/newsdesk/internal/config"
	"github.com/tkaraca/newsdesk/internal/logger"
	"github.com/tkaraca/newsdesk/internal/notify"
)

// Checker answers whether the network is currently reachable.
type Checker interface {
	Online(ctx context.Context) bool
}

// HTTPChecker probes a well-known URL. Any response counts as reachable;
// only transport errors mean offline.
type HTTPChecker struct {
	client *resty.Client
	url    string
}

func NewHTTPChecker(cfg *config.Config) *HTTPChecker {
	return &HTTPChecker{
		client: resty.New().SetTimeout(cfg.ProbeTimeout),
		url:    cfg.ProbeURL,
	}
}

func (h *HTTPChecker) Online(ctx context.Context) bool {
	_, err := h.client.R().SetContext(ctx).Head(h.url)
	return err == nil
}

// Monitor polls a Checker and emits notices on state transitions. When the
// connection comes back and the displayed data was loaded offline, it fires
// the restore callback so the coordinator can resync.
type Monitor struct {
	checker  Checker
	interval time.Duration
	notifier notify.Notifier

	// LoadedOffline reports whether the currently displayed set was loaded
	// while offline; OnRestore triggers the resync. Both wired by main.
	LoadedOffline func() bool
	OnRestore     func()

	mu          sync.Mutex
	initialized bool
	online      bool
	wasOffline  bool
}

func NewMonitor(checker Checker, interval time.Duration, notifier notify.Notifier) *Monitor {
	return &Monitor{
		checker:  checker,
		interval: interval,
		notifier: notifier,
	}
}

// Online reports the last observed state.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// WasOffline reports whether a connection loss is pending a restore.
func (m *Monitor) WasOffline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wasOffline
}

// Poll runs one probe and applies any transition. The first poll only
// establishes the initial state and never emits notices.
func (m *Monitor) Poll(ctx context.Context) bool {
	online := m.checker.Online(ctx)

	m.mu.Lock()
	if !m.initialized {
		m.initialized = true
		m.online = online
		m.mu.Unlock()
		logger.Get().Info().Bool("online", online).Msg("initial connectivity state")
		return online
	}

	prev := m.online
	m.online = online

	switch {
	case prev && !online:
		m.wasOffline = true
		m.mu.Unlock()
		m.notifier.Notify(notify.KindConnectionLost, "connection lost")

	case !prev && online:
		restore := m.wasOffline && m.LoadedOffline != nil && m.LoadedOffline()
		m.wasOffline = false
		m.mu.Unlock()
		if restore {
			m.notifier.Notify(notify.KindConnectivityRestored, "connectivity restored")
			if m.OnRestore != nil {
				m.OnRestore()
			}
		}

	default:
		m.mu.Unlock()
	}

	return online
}

// Start polls on a ticker until the context is cancelled.
func (m *Monitor) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Poll(ctx)
			}
		}
	}()
}
