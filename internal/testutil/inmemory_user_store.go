package testutil

import (
	"context"

	"github.com/glowdesk/glowdesk/internal/domain/user"
	ierr "github.com/glowdesk/glowdesk/internal/errors"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

// NewInMemoryUserStore creates a new in-memory user repository
func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User](),
	}
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return ierr.NewError("user cannot be nil").
			WithHint("User cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, u.ID, u)
}

func (s *InMemoryUserStore) Get(ctx context.Context, id string) (*user.User, error) {
	u, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("user %s not found", id).
			WithHintf("User %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return u, nil
}

func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	all, err := s.InMemoryStore.List(ctx, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	for _, u := range all {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ierr.NewErrorf("user with email %s not found", email).
		WithHint("User was not found").
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	if u == nil {
		return ierr.NewError("user cannot be nil").
			WithHint("User cannot be nil").
			Mark(ierr.ErrValidation)
	}
	u.Touch(ctx)
	if err := s.InMemoryStore.Update(ctx, u.ID, u); err != nil {
		return ierr.NewErrorf("user %s not found", u.ID).
			WithHintf("User %s was not found", u.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
