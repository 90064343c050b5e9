package syncer

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tkaraca/newsdesk/internal/logger"
	"github.com/tkaraca/newsdesk/internal/models"
	"github.com/tkaraca/newsdesk/internal/notify"
	"github.com/tkaraca/newsdesk/internal/store"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Config{Level: "disabled", Output: "stdout"})
	os.Exit(m.Run())
}

type fakeSource struct {
	articles []models.Article
	err      error
	calls    int32
	block    chan struct{} // when non-nil, Fetch waits until closed
}

func (f *fakeSource) Fetch(ctx context.Context, query string) ([]models.Article, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.articles, nil
}

func (f *fakeSource) callCount() int {
	return int(atomic.LoadInt32(&f.calls))
}

type fakeNotifier struct {
	mu    sync.Mutex
	kinds []notify.Kind
}

func (f *fakeNotifier) Notify(kind notify.Kind, message string) {
	f.mu.Lock()
	f.kinds = append(f.kinds, kind)
	f.mu.Unlock()
}

func (f *fakeNotifier) has(kind notify.Kind) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range f.kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func fetched() []models.Article {
	return []models.Article{
		{Title: "Fresh", Summary: "s", Author: "a", ImageURL: "https://img.example.com/f.jpg"},
	}
}

func cachedSet() []models.Article {
	return []models.Article{
		{Title: "Cached", Summary: "s", Author: "a", ImageURL: "https://img.example.com/c.jpg"},
	}
}

func newSettings(t *testing.T, cacheEnabled bool) *store.Settings {
	t.Helper()
	s, err := store.OpenSettings(filepath.Join(t.TempDir(), "settings.json"), true)
	if err != nil {
		t.Fatalf("OpenSettings: %v", err)
	}
	if !cacheEnabled {
		if err := s.SetCacheEnabled(false); err != nil {
			t.Fatalf("SetCacheEnabled: %v", err)
		}
	}
	return s
}

func online(v bool) func() bool {
	return func() bool { return v }
}

func TestAppStartEmptyStoreFetchesAndPersists(t *testing.T) {
	src := &fakeSource{articles: fetched()}
	st := store.NewMemoryStore()
	c := New(src, st, newSettings(t, true), &fakeNotifier{}, "")
	c.Online = online(true)

	got := c.Sync(context.Background(), TriggerAppStart)

	if src.callCount() != 1 {
		t.Fatalf("expected exactly one fetch, got %d", src.callCount())
	}
	if len(got.Records) != 1 || got.Records[0].Title != "Fresh" {
		t.Fatalf("wrong presented set: %v", got.Records)
	}
	persisted, _ := st.GetAll(context.Background())
	if len(persisted) != 1 {
		t.Fatalf("store not populated: %v", persisted)
	}
}

func TestAppStartOfflineServesCacheWithNotice(t *testing.T) {
	src := &fakeSource{articles: fetched()}
	st := store.NewMemoryStore()
	st.ReplaceAll(context.Background(), cachedSet())
	n := &fakeNotifier{}
	c := New(src, st, newSettings(t, true), n, "")
	c.Online = online(false)

	got := c.Sync(context.Background(), TriggerAppStart)

	if src.callCount() != 0 {
		t.Fatalf("expected zero network calls, got %d", src.callCount())
	}
	if len(got.Records) != 1 || got.Records[0].Title != "Cached" {
		t.Fatalf("expected cached set, got %v", got.Records)
	}
	if !got.DataLoadedOffline {
		t.Fatal("DataLoadedOffline not set")
	}
	if !n.has(notify.KindShowingCached) {
		t.Fatal("missing showing-cached notice")
	}
}

func TestAppStartOnlineNonEmptyCacheSkipsFetch(t *testing.T) {
	src := &fakeSource{articles: fetched()}
	st := store.NewMemoryStore()
	st.ReplaceAll(context.Background(), cachedSet())
	n := &fakeNotifier{}
	c := New(src, st, newSettings(t, true), n, "")
	c.Online = online(true)

	got := c.Sync(context.Background(), TriggerAppStart)

	if src.callCount() != 0 {
		t.Fatalf("expected cache read, got %d fetches", src.callCount())
	}
	if got.DataLoadedOffline {
		t.Fatal("DataLoadedOffline set while online")
	}
	if n.has(notify.KindShowingCached) {
		t.Fatal("showing-cached notice emitted while online")
	}
}

func TestManualRefreshOfflineIsRejected(t *testing.T) {
	src := &fakeSource{articles: fetched()}
	st := store.NewMemoryStore()
	st.ReplaceAll(context.Background(), cachedSet())
	n := &fakeNotifier{}
	c := New(src, st, newSettings(t, true), n, "")
	c.Online = online(false)

	before := c.State()
	got := c.Sync(context.Background(), TriggerManualRefresh)

	if src.callCount() != 0 {
		t.Fatalf("expected zero network calls, got %d", src.callCount())
	}
	if !n.has(notify.KindNoConnection) {
		t.Fatal("missing no-connection notice")
	}
	if len(got.Records) != len(before.Records) {
		t.Fatalf("state changed: %v", got)
	}
}

func TestManualRefreshBypassesCache(t *testing.T) {
	src := &fakeSource{articles: fetched()}
	st := store.NewMemoryStore()
	st.ReplaceAll(context.Background(), cachedSet())
	c := New(src, st, newSettings(t, true), &fakeNotifier{}, "")
	c.Online = online(true)

	got := c.Sync(context.Background(), TriggerManualRefresh)

	if src.callCount() != 1 {
		t.Fatalf("expected one fetch, got %d", src.callCount())
	}
	if got.Records[0].Title != "Fresh" {
		t.Fatalf("refresh did not present fetched set: %v", got.Records)
	}
	persisted, _ := st.GetAll(context.Background())
	if persisted[0].Title != "Fresh" {
		t.Fatalf("store not replaced: %v", persisted)
	}
}

func TestCacheDisabledFetchesWithoutPersisting(t *testing.T) {
	src := &fakeSource{articles: fetched()}
	st := store.NewMemoryStore()
	c := New(src, st, newSettings(t, false), &fakeNotifier{}, "")
	c.Online = online(true)

	got := c.Sync(context.Background(), TriggerAppStart)

	if src.callCount() != 1 {
		t.Fatalf("expected one fetch, got %d", src.callCount())
	}
	if got.CacheEnabled {
		t.Fatal("state reports cache enabled")
	}
	persisted, _ := st.GetAll(context.Background())
	if len(persisted) != 0 {
		t.Fatalf("fetched set persisted despite disabled cache: %v", persisted)
	}
}

func TestFetchFailureKeepsPriorState(t *testing.T) {
	src := &fakeSource{articles: fetched()}
	st := store.NewMemoryStore()
	n := &fakeNotifier{}
	c := New(src, st, newSettings(t, true), n, "")
	c.Online = online(true)

	first := c.Sync(context.Background(), TriggerAppStart)
	if len(first.Records) != 1 {
		t.Fatalf("setup sync failed: %v", first)
	}

	src.err = context.DeadlineExceeded
	got := c.Sync(context.Background(), TriggerManualRefresh)

	if !n.has(notify.KindFetchFailed) {
		t.Fatal("missing fetch-failed notice")
	}
	if len(got.Records) != 1 || got.Records[0].Title != "Fresh" {
		t.Fatalf("prior state lost after failure: %v", got.Records)
	}
}

func TestOverlappingTriggerIsDropped(t *testing.T) {
	src := &fakeSource{articles: fetched(), block: make(chan struct{})}
	st := store.NewMemoryStore()
	c := New(src, st, newSettings(t, true), &fakeNotifier{}, "")
	c.Online = online(true)

	done := make(chan struct{})
	go func() {
		c.Sync(context.Background(), TriggerAppStart)
		close(done)
	}()

	// Wait until the first sync holds the guard.
	deadline := time.After(time.Second)
	for src.callCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("first sync never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	c.Sync(context.Background(), TriggerManualRefresh)
	if src.callCount() != 1 {
		t.Fatalf("overlapping trigger was not dropped: %d fetches", src.callCount())
	}

	close(src.block)
	<-done
}
