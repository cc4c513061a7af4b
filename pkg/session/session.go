// Package session persists selection sessions for the HTTP API.
//
// A session is one user's view of a fat tree: the topology parameters and the
// hosts selected so far. The server loads the session, replays it into a
// selection.Controller, applies the request and stores the new snapshot, so
// any number of server instances can share one store.
//
// Implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - file: One JSON file per session for single-host deployments
//   - redis: Redis-backed storage for multi-instance deployments
//   - mongo: MongoDB-backed storage with a TTL index
//
// # Usage
//
//	store := session.NewMemoryStore()
//
//	sess := session.New(fattree.DefaultParams(), session.DefaultTTL)
//	store.Set(ctx, sess)
//
//	sess, err := store.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if sess == nil {
//	    // Session not found or expired
//	}
package session

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/fattree/pkg/fattree"
	"github.com/matzehuels/fattree/pkg/selection"
)

// DefaultTTL is the default session duration. Every update extends it.
const DefaultTTL = 24 * time.Hour

// Session stores one selection session.
type Session struct {
	ID        string         `json:"id" bson:"_id"`
	Params    fattree.Params `json:"params" bson:"params"`
	Hosts     []int          `json:"hosts" bson:"hosts"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
	ExpiresAt time.Time      `json:"expires_at" bson:"expires_at"`
}

// New creates a session with a random UUID and an empty selection.
func New(p fattree.Params, ttl time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		Params:    p,
		Hosts:     []int{},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// ValidID reports whether id has the form of a session ID. Stores use it to
// reject IDs that could escape their key space.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Snapshot returns the selection state to restore.
func (s *Session) Snapshot() selection.Snapshot {
	return selection.Snapshot{Params: s.Params, Hosts: slices.Clone(s.Hosts)}
}

// Update records a new selection state and extends the expiration by ttl.
func (s *Session) Update(snap selection.Snapshot, ttl time.Duration) {
	now := time.Now().UTC()
	s.Params = snap.Params
	s.Hosts = slices.Clone(snap.Hosts)
	if s.Hosts == nil {
		s.Hosts = []int{}
	}
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(ttl)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session, replacing any previous version.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions (may be a no-op for backends with
	// native expiration).
	Cleanup(ctx context.Context) error

	// Close releases the backend's resources.
	Close() error
}
