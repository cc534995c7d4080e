// Package testutil provides test doubles shared across package tests.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/authgate/authgate-go/internal/model"
	"github.com/authgate/authgate-go/internal/repository"
)

// MemStore is an in-memory account store. Create holds a mutex across the
// duplicate check and the insert, mirroring the atomicity the real store
// gets from its unique email index.
type MemStore struct {
	mu       sync.Mutex
	nextID   int64
	byID     map[int64]model.Account
	idByMail map[string]int64
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		nextID:   1,
		byID:     make(map[int64]model.Account),
		idByMail: make(map[string]int64),
	}
}

// Create inserts an account, assigning its ID. Returns
// repository.ErrDuplicateEmail if the email is taken.
func (s *MemStore) Create(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.idByMail[account.Email]; exists {
		return repository.ErrDuplicateEmail
	}

	account.ID = s.nextID
	account.CreatedAt = time.Now().UTC()
	account.UpdatedAt = account.CreatedAt
	s.nextID++

	s.byID[account.ID] = *account
	s.idByMail[account.Email] = account.ID
	return nil
}

// GetByEmail retrieves an account by email, comparing case-sensitively.
func (s *MemStore) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.idByMail[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	account := s.byID[id]
	return &account, nil
}

// GetByID retrieves an account by ID.
func (s *MemStore) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return &account, nil
}

// Count returns the number of stored accounts.
func (s *MemStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// SetPasswordHash overwrites the stored hash for an account, used to
// simulate a corrupted record.
func (s *MemStore) SetPasswordHash(id int64, hash string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.byID[id]
	account.PasswordHash = hash
	s.byID[id] = account
}
