package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mounish67/mindmate-ai-bot/internal/model/chat"
)

var ErrIdentityRequired = errors.New("session identity is required")

// Store owns every live session, keyed by caller identity. Mutations on one
// identity are serialized through a per-identity lock; unrelated identities
// never contend beyond the map lookup itself.
type Store struct {
	mu             sync.RWMutex
	sessions       map[string]*chat.Session
	locks          map[string]*sync.Mutex
	windowCapacity int
}

// NewStore bootstraps the in-memory session store.
func NewStore(windowCapacity int) *Store {
	if windowCapacity <= 0 {
		windowCapacity = chat.DefaultWindowCapacity
	}
	return &Store{
		sessions:       make(map[string]*chat.Session),
		locks:          make(map[string]*sync.Mutex),
		windowCapacity: windowCapacity,
	}
}

func (s *Store) identityLock(identity string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[identity]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[identity] = lock
	}
	return lock
}

func (s *Store) newSession(identity string) *chat.Session {
	return &chat.Session{
		ID:        uuid.NewString(),
		Identity:  identity,
		Stage:     chat.StageIdle,
		Context:   chat.Window{Capacity: s.windowCapacity},
		CreatedAt: time.Now().UTC(),
	}
}

// Resolve returns a snapshot of the session for an identity, creating it with
// defaults on first contact.
func (s *Store) Resolve(_ context.Context, identity string) (chat.Session, error) {
	if identity == "" {
		return chat.Session{}, ErrIdentityRequired
	}

	lock := s.identityLock(identity)
	lock.Lock()
	defer lock.Unlock()

	return snapshot(s.resolveLocked(identity)), nil
}

// resolveLocked expects the identity lock to be held by the caller.
func (s *Store) resolveLocked(identity string) *chat.Session {
	s.mu.RLock()
	session, ok := s.sessions[identity]
	s.mu.RUnlock()
	if ok {
		return session
	}

	session = s.newSession(identity)
	s.mu.Lock()
	s.sessions[identity] = session
	s.mu.Unlock()
	return session
}

// Touch applies one mutation atomically with respect to every other mutation
// on the same identity. The callback receives the live session for the
// duration of the call.
func (s *Store) Touch(_ context.Context, identity string, mutate func(*chat.Session) error) error {
	if identity == "" {
		return ErrIdentityRequired
	}
	if mutate == nil {
		return nil
	}

	lock := s.identityLock(identity)
	lock.Lock()
	defer lock.Unlock()

	return mutate(s.resolveLocked(identity))
}

// Reset reinitializes the identity's session to defaults. The fresh session
// gets a new ID; the old logical session is never reused.
func (s *Store) Reset(_ context.Context, identity string) error {
	if identity == "" {
		return ErrIdentityRequired
	}

	lock := s.identityLock(identity)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	s.sessions[identity] = s.newSession(identity)
	s.mu.Unlock()
	return nil
}

// Renew reinitializes a live session in place, allocating a fresh session ID
// bound to the same identity. Intended for use inside a Touch mutation, where
// the identity lock is already held.
func (s *Store) Renew(session *chat.Session) {
	*session = *s.newSession(session.Identity)
}

func snapshot(session *chat.Session) chat.Session {
	copied := *session
	copied.Answers = append([]string(nil), session.Answers...)
	copied.Context.Turns = append([]chat.Turn(nil), session.Context.Turns...)
	return copied
}
