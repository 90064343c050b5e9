// Package syncer decides, on each trigger, whether the article set comes
// from the local store or from the remote source, and whether the result is
// persisted. All fetch and parse failures are recovered here: the previous
// state stays visible and the coordinator remains usable for the next
// trigger.
package syncer

import (
	"context"
	"sync"

	"github.com/tkaraca/newsdesk/internal/logger"
	"github.com/tkaraca/newsdesk/internal/models"
	"github.com/tkaraca/newsdesk/internal/notify"
	"github.com/tkaraca/newsdesk/internal/remote"
	"github.com/tkaraca/newsdesk/internal/store"
)

// Trigger is the event that caused a sync.
type Trigger int

const (
	TriggerAppStart Trigger = iota
	TriggerManualRefresh
	TriggerConnectivityRestored
)

func (t Trigger) String() string {
	switch t {
	case TriggerAppStart:
		return "app_start"
	case TriggerManualRefresh:
		return "manual_refresh"
	case TriggerConnectivityRestored:
		return "connectivity_restored"
	default:
		return "unknown"
	}
}

// State is the immutable outcome of a sync. Each call returns a new value;
// nothing is shared with later mutations.
type State struct {
	Records           []models.Article `json:"records"`
	CacheEnabled      bool             `json:"cache_enabled"`
	WasOffline        bool             `json:"was_offline"`
	DataLoadedOffline bool             `json:"data_loaded_offline"`
}

// Mirror receives the article set after a successful persisted fetch.
// Best-effort: mirror failures never affect the sync outcome.
type Mirror interface {
	Upload(ctx context.Context, articles []models.Article)
}

// Coordinator runs the offline-aware sync flow.
type Coordinator struct {
	source   remote.Source
	store    store.Store
	settings *store.Settings
	notifier notify.Notifier
	query    string

	// Online reports current reachability; WasOffline reports whether a
	// connection loss is pending a restore. Wired from the connectivity
	// monitor; either may be nil (treated as online / false).
	Online     func() bool
	WasOffline func() bool

	// optional snapshot mirror
	mirror Mirror

	inFlight chan struct{}

	stateMu sync.RWMutex
	state   State
}

// New builds a coordinator. The query is the fixed search term sent with
// every remote fetch ("" fetches the default result set).
func New(src remote.Source, st store.Store, settings *store.Settings, notifier notify.Notifier, query string) *Coordinator {
	c := &Coordinator{
		source:   src,
		store:    st,
		settings: settings,
		notifier: notifier,
		query:    query,
		inFlight: make(chan struct{}, 1),
	}
	c.state = State{CacheEnabled: settings.CacheEnabled()}
	return c
}

// SetMirror attaches an optional snapshot mirror.
func (c *Coordinator) SetMirror(m Mirror) {
	c.mirror = m
}

// State returns the currently presented state.
func (c *Coordinator) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

func (c *Coordinator) setState(s State) {
	c.stateMu.Lock()
	c.state = s
	c.stateMu.Unlock()
}

func (c *Coordinator) online() bool {
	return c.Online == nil || c.Online()
}

func (c *Coordinator) wasOffline() bool {
	return c.WasOffline != nil && c.WasOffline()
}

// Sync runs one pass of the flow. At most one sync is in flight: a trigger
// arriving while another sync runs is dropped and the current state is
// returned unchanged.
func (c *Coordinator) Sync(ctx context.Context, trigger Trigger) State {
	select {
	case c.inFlight <- struct{}{}:
	default:
		logger.Get().Debug().Stringer("trigger", trigger).Msg("sync already in flight, dropping trigger")
		return c.State()
	}
	defer func() { <-c.inFlight }()

	log := logger.Get()
	online := c.online()
	cacheEnabled := c.settings.CacheEnabled()

	log.Debug().
		Stringer("trigger", trigger).
		Bool("online", online).
		Bool("cache_enabled", cacheEnabled).
		Msg("sync started")

	// Manual refresh needs the network; bail out before touching anything.
	if trigger == TriggerManualRefresh && !online {
		c.notifier.Notify(notify.KindNoConnection, "no internet connection")
		return c.State()
	}

	cached, err := c.store.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read local store")
		cached = nil
	}

	if !cacheEnabled || len(cached) == 0 || trigger == TriggerManualRefresh || trigger == TriggerConnectivityRestored {
		return c.fetch(ctx, trigger, cacheEnabled)
	}

	// Serve the cached set.
	if !online {
		c.notifier.Notify(notify.KindShowingCached, "showing previously fetched data")
	}
	st := State{
		Records:           cached,
		CacheEnabled:      cacheEnabled,
		WasOffline:        c.wasOffline(),
		DataLoadedOffline: !online,
	}
	c.setState(st)
	log.Info().Int("articles", len(cached)).Bool("offline", !online).Msg("served cached articles")
	return st
}

func (c *Coordinator) fetch(ctx context.Context, trigger Trigger, cacheEnabled bool) State {
	log := logger.Get()

	articles, err := c.source.Fetch(ctx, c.query)
	if err != nil {
		log.Error().Err(err).Stringer("trigger", trigger).Msg("remote fetch failed")
		c.notifier.Notify(notify.KindFetchFailed, "could not refresh articles")
		return c.State()
	}

	if cacheEnabled {
		if err := c.store.ReplaceAll(ctx, articles); err != nil {
			log.Error().Err(err).Msg("failed to persist fetched articles")
		} else if c.mirror != nil {
			c.mirror.Upload(ctx, articles)
		}
	}

	st := State{
		Records:           articles,
		CacheEnabled:      cacheEnabled,
		WasOffline:        c.wasOffline(),
		DataLoadedOffline: false,
	}
	c.setState(st)
	log.Info().Int("articles", len(articles)).Stringer("trigger", trigger).Msg("fetched fresh articles")
	return st
}
