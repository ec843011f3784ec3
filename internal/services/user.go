package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fitcoach/apiserver/internal/auth"
	"github.com/fitcoach/apiserver/internal/store"
	"github.com/fitcoach/apiserver/types"
)

// UserStore defines the persistence operations the user service relies on.
type UserStore interface {
	Load() ([]types.User, error)
	Mutate(fn func(users []types.User) ([]types.User, error)) error
}

// UserService encapsulates account use-cases over the record store. Every
// mutation runs as a single load-mutate-save pass through Store.Mutate.
type UserService struct {
	store UserStore
}

func NewUserService(s UserStore) *UserService {
	return &UserService{store: s}
}

// Register creates a new account. The email must be unused and both email
// and password must be present.
func (s *UserService) Register(ctx context.Context, profile types.User, password string) (types.User, error) {
	if strings.TrimSpace(profile.Email) == "" || password == "" {
		return types.User{}, ErrMissingField
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return types.User{}, fmt.Errorf("hash password: %w", err)
	}

	var created types.User
	err = s.store.Mutate(func(users []types.User) ([]types.User, error) {
		for _, u := range users {
			if u.Email == profile.Email {
				return nil, ErrDuplicateEmail
			}
		}

		profile.ID = store.NextID(users)
		profile.PasswordHash = hashed
		created = profile
		return append(users, profile), nil
	})
	if err != nil {
		return types.User{}, err
	}
	return created, nil
}

// Authenticate looks up the account by email and verifies the password.
// Unknown email yields store.ErrNotFound, a mismatch ErrInvalidCredentials;
// callers present both with the same message so nothing leaks about which
// half was wrong.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (types.User, error) {
	users, err := s.store.Load()
	if err != nil {
		return types.User{}, err
	}

	for _, u := range users {
		if u.Email == email {
			if !auth.CheckPassword(password, u.PasswordHash) {
				return types.User{}, ErrInvalidCredentials
			}
			return u, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

// GetByID returns the account with the given id.
func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	users, err := s.store.Load()
	if err != nil {
		return types.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

// UpdateByID shallow-merges the patch into the stored record: supplied keys
// overwrite, omitted keys keep their prior values. The id key is discarded
// so an assigned id stays stable for the record's lifetime.
func (s *UserService) UpdateByID(ctx context.Context, id int, patch map[string]json.RawMessage) error {
	return s.store.Mutate(func(users []types.User) ([]types.User, error) {
		for i, u := range users {
			if u.ID != id {
				continue
			}
			merged, err := mergeUser(u, patch)
			if err != nil {
				return nil, err
			}
			users[i] = merged
			return users, nil
		}
		return nil, store.ErrNotFound
	})
}

// DeleteByID removes the account, leaving every other record in place.
func (s *UserService) DeleteByID(ctx context.Context, id int) error {
	return s.store.Mutate(func(users []types.User) ([]types.User, error) {
		for i, u := range users {
			if u.ID == id {
				return append(users[:i], users[i+1:]...), nil
			}
		}
		return nil, store.ErrNotFound
	})
}

// ToggleFavorite removes the exercise from the user's favorites if present,
// otherwise appends it. Toggling twice restores the original list.
func (s *UserService) ToggleFavorite(ctx context.Context, userID, exerciseID int) (types.User, error) {
	var updated types.User
	err := s.store.Mutate(func(users []types.User) ([]types.User, error) {
		for i, u := range users {
			if u.ID != userID {
				continue
			}
			users[i].FavoriteExerciseIDs = toggle(u.FavoriteExerciseIDs, exerciseID)
			updated = users[i]
			return users, nil
		}
		return nil, store.ErrNotFound
	})
	if err != nil {
		return types.User{}, err
	}
	return updated, nil
}

// FindOrCreateByIdentity maps a verified third-party identity to a local
// account, creating one without a password hash on first sight.
func (s *UserService) FindOrCreateByIdentity(ctx context.Context, identity auth.Identity) (types.User, error) {
	users, err := s.store.Load()
	if err != nil {
		return types.User{}, err
	}
	for _, u := range users {
		if u.Email == identity.Email {
			return u, nil
		}
	}

	var created types.User
	err = s.store.Mutate(func(users []types.User) ([]types.User, error) {
		// Re-check under the lock: another request may have created the
		// account between our read and now.
		for _, u := range users {
			if u.Email == identity.Email {
				created = u
				return users, nil
			}
		}
		created = types.User{
			ID:    store.NextID(users),
			Email: identity.Email,
			Name:  identity.Name,
		}
		return append(users, created), nil
	})
	if err != nil {
		return types.User{}, err
	}
	return created, nil
}

func mergeUser(current types.User, patch map[string]json.RawMessage) (types.User, error) {
	raw, err := json.Marshal(current)
	if err != nil {
		return types.User{}, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return types.User{}, err
	}

	for key, value := range patch {
		if key == "id" {
			continue
		}
		fields[key] = value
	}

	raw, err = json.Marshal(fields)
	if err != nil {
		return types.User{}, err
	}
	var merged types.User
	if err := json.Unmarshal(raw, &merged); err != nil {
		return types.User{}, err
	}
	merged.ID = current.ID
	return merged, nil
}

func toggle(ids []int, id int) []int {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return append(ids, id)
}
