// Package catalog implements the song catalog service: CRUD and search over
// songs with their related artists, tags, and platform links.
//
// The service is the application's single data-access collaborator. Every
// operation takes a context and returns wrapped errors; callers convert
// failures to user-facing messages and leave their own state untouched.
package catalog

import (
	"database/sql"
	"sync"

	"github.com/charmbracelet/log"
)

// ChangeOp names a row-level change kind.
type ChangeOp string

const (
	ChangeCreated ChangeOp = "created"
	ChangeUpdated ChangeOp = "updated"
	ChangeDeleted ChangeOp = "deleted"
)

// Change describes a catalog mutation pushed to subscribers.
type Change struct {
	Op     ChangeOp
	SongID string
}

// Service provides catalog operations over the SQLite store.
type Service struct {
	db     *sql.DB
	logger *log.Logger

	mu   sync.Mutex
	subs []func(Change)
}

// New creates a catalog service with the given database connection.
func New(db *sql.DB, logger *log.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// SubscribeToChanges registers fn for best-effort notification of row-level
// changes. Notifications fire after the owning transaction commits.
func (s *Service) SubscribeToChanges(fn func(Change)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// notify fans a change out to subscribers. Best effort: subscriber panics are
// not recovered, but no subscriber can roll back the committed change.
func (s *Service) notify(change Change) {
	s.mu.Lock()
	fns := make([]func(Change), len(s.subs))
	copy(fns, s.subs)
	s.mu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}
