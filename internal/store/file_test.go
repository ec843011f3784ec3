package store_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fitcoach/apiserver/internal/store"
	"github.com/fitcoach/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*store.FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	return store.NewFileStore(path), path
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	users, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestLoadEmptyFileReturnsEmpty(t *testing.T) {
	s, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	users, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestLoadCorruptFile(t *testing.T) {
	s, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := s.Load()
	require.ErrorIs(t, err, store.ErrCorrupt)
}

func TestSaveReplacesWholeFile(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Save([]types.User{
		{ID: 1, Email: "a@x.com"},
		{ID: 2, Email: "b@x.com"},
	}))
	require.NoError(t, s.Save([]types.User{{ID: 2, Email: "b@x.com"}}))

	users, err := s.Load()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "b@x.com", users[0].Email)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	in := []types.User{{
		ID:                  7,
		Email:               "coach@x.com",
		PasswordHash:        "$2a$10$abcdefghijklmnopqrstuv",
		Firstname:           "Anne",
		City:                "Lyon",
		FavoriteExerciseIDs: []int{3, 1, 2},
	}}
	require.NoError(t, s.Save(in))

	out, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestNextID(t *testing.T) {
	assert.Equal(t, 1, store.NextID(nil))
	assert.Equal(t, 4, store.NextID([]types.User{{ID: 1}, {ID: 2}, {ID: 3}}))

	// Max-based, not count-based: after deleting id 2 from {1,2,5}, the next
	// id must not collide with the surviving 5.
	assert.Equal(t, 6, store.NextID([]types.User{{ID: 1}, {ID: 5}}))
}

func TestMutateSerializesWriters(t *testing.T) {
	s, _ := newTestStore(t)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Mutate(func(users []types.User) ([]types.User, error) {
				return append(users, types.User{ID: store.NextID(users)}), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	users, err := s.Load()
	require.NoError(t, err)
	require.Len(t, users, writers)

	seen := map[int]bool{}
	for _, u := range users {
		assert.False(t, seen[u.ID], "id %d assigned twice", u.ID)
		seen[u.ID] = true
	}
}

func TestMutateErrorSkipsSave(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Save([]types.User{{ID: 1, Email: "a@x.com"}}))

	err := s.Mutate(func(users []types.User) ([]types.User, error) {
		return nil, store.ErrNotFound
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	users, err := s.Load()
	require.NoError(t, err)
	require.Len(t, users, 1)
}
