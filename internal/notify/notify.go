// Package notify carries user-facing notices. Notices are fire-and-forget:
// they are logged and kept in a bounded ring for the API to expose, and never
// block or fail the flow that emitted them.
package notify

import (
	"sync"
	"time"

	"github.com/tkaraca/newsdesk/internal/logger"
)

// Kind identifies a user-facing notice.
type Kind string

const (
	KindNoConnection         Kind = "no_connection"
	KindShowingCached        Kind = "showing_cached"
	KindConnectivityRestored Kind = "connectivity_restored"
	KindConnectionLost       Kind = "connection_lost"
	KindFetchFailed          Kind = "fetch_failed"
)

// Notice is one surfaced message.
type Notice struct {
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Notifier surfaces a notice to the user.
type Notifier interface {
	Notify(kind Kind, message string)
}

// Ring logs every notice and retains the most recent ones.
type Ring struct {
	mu      sync.Mutex
	notices []Notice
	limit   int
}

func NewRing(limit int) *Ring {
	if limit <= 0 {
		limit = 20
	}
	return &Ring{limit: limit}
}

func (r *Ring) Notify(kind Kind, message string) {
	logger.Get().Info().
		Str("kind", string(kind)).
		Msg(message)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.notices = append(r.notices, Notice{Kind: kind, Message: message, Time: time.Now()})
	if len(r.notices) > r.limit {
		r.notices = r.notices[len(r.notices)-r.limit:]
	}
}

// Recent returns the retained notices, oldest first.
func (r *Ring) Recent() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}
