package facade

import (
	"fmt"
	"sync"

	"github.com/sqrlid/idcore/identity"
	"github.com/sqrlid/idcore/sqrlerr"
)

// Session is a transaction context. Where the original
// client kept one global, mutable callback table, Session makes that
// context an explicit value the host constructs and passes in — no
// package-level state survives between Sessions.
type Session struct {
	mu        sync.Mutex
	callbacks Callbacks
	users     map[string]*identity.User
}

// NewSession builds a Session around the given callback set.
func NewSession(cb Callbacks) *Session {
	return &Session{callbacks: cb, users: make(map[string]*identity.User)}
}

// Register makes u resolvable under id by transactions created with
// Begin. The Session does not own u's lifetime: Release is still the
// caller's responsibility.
func (s *Session) Register(id string, u *identity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = u
}

// Unregister drops the weak mapping for id without touching the User.
func (s *Session) Unregister(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// Lookup implements the registry interface Transaction.User uses.
func (s *Session) Lookup(id string) (*identity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

// Begin starts a new Transaction of the given kind against the User
// registered under userID, invoking OnSelectUser first if userID is
// empty.
func (s *Session) Begin(kind Kind, userID string) (*Transaction, error) {
	if userID == "" && s.callbacks.OnSelectUser != nil {
		txnProbe, err := New(kind, "", s)
		if err != nil {
			return nil, err
		}
		u, err := s.callbacks.OnSelectUser(txnProbe)
		if err != nil {
			return nil, err
		}
		id := fmt.Sprintf("selected-%s", txnProbe.ID)
		s.Register(id, u)
		userID = id
	}
	if _, ok := s.Lookup(userID); !ok {
		return nil, fmt.Errorf("facade: no identity registered under %q: %w", userID, sqrlerr.ErrInvalidArgument)
	}
	return New(kind, userID, s)
}

// Finish reports the transaction's terminal status to the host and,
// when status is StatusSuccess, suggests a save if the underlying User
// is dirty.
func (s *Session) Finish(t *Transaction, status Status) {
	t.Finish(status)
	if u, ok := t.User(); ok && status == StatusSuccess {
		if (u.Type1Changed() || u.Type2Changed()) && s.callbacks.OnSaveSuggested != nil {
			s.callbacks.OnSaveSuggested(u)
		}
	}
	if s.callbacks.OnTransactionComplete != nil {
		s.callbacks.OnTransactionComplete(t)
	}
}
