// Package otp holds short-lived login codes keyed by email. The store is
// process-local and intentionally non-durable: a lost code is recovered by
// requesting a new one.
package otp

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrNotRequested = errors.New("otp: no code requested for this email")
	ErrExpired      = errors.New("otp: code expired")
	ErrMismatch     = errors.New("otp: code does not match")
)

type entry struct {
	code      string
	expiresAt time.Time
}

// Store is a mutex-guarded map of email → pending code. A new Put replaces
// any prior code for the same email (last write wins).
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Put stores a code for email, replacing any existing one.
func (s *Store) Put(email, code string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = entry{code: code, expiresAt: s.now().Add(ttl)}
}

// Consume verifies the submitted code and removes it on success. An expired
// entry is also removed, so a retry after expiry reports ErrNotRequested.
// A mismatched code leaves the entry in place.
func (s *Store) Consume(email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[email]
	if !ok {
		return ErrNotRequested
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, email)
		return ErrExpired
	}
	if e.code != code {
		return ErrMismatch
	}
	delete(s.entries, email)
	return nil
}
