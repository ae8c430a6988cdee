package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
)

func sampleState(t *testing.T) *domain.State {
	t.Helper()

	today := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	st, err := domain.NewSeededState(today)
	require.NoError(t, err)

	st.Completions.Toggle("2024-01-14", st.Habits[0].ID)
	st.Completions.Toggle("2024-01-15", st.Habits[0].ID)
	st.Habits[0].UpdateStreak(2)

	pic := "file:///me.png"
	st.Settings.ProfilePicture = &pic
	st.Settings.NotificationTime = "07:30"
	return st
}

// runStateRepositorySuite exercises the StateRepository contract against any backend.
func runStateRepositorySuite(t *testing.T, repo domain.StateRepository) {
	ctx := context.Background()

	t.Run("Fail: missing key", func(t *testing.T) {
		_, err := repo.Load(ctx, domain.OwnerKey(uuid.NewString()))
		assert.ErrorIs(t, err, domain.ErrStateNotFound)
	})

	t.Run("Success: save then load round trips", func(t *testing.T) {
		key := domain.OwnerKey(uuid.NewString())
		want := sampleState(t)

		require.NoError(t, repo.Save(ctx, key, want))

		got, err := repo.Load(ctx, key)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("loaded state mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Success: later save replaces earlier", func(t *testing.T) {
		key := domain.OwnerKey(uuid.NewString())
		st := sampleState(t)
		require.NoError(t, repo.Save(ctx, key, st))

		st.Habits = st.Habits[:1]
		st.Settings.NotificationsEnabled = false
		require.NoError(t, repo.Save(ctx, key, st))

		got, err := repo.Load(ctx, key)
		require.NoError(t, err)
		assert.Len(t, got.Habits, 1)
		assert.False(t, got.Settings.NotificationsEnabled)
	})

	t.Run("Success: keys are isolated", func(t *testing.T) {
		a, b := domain.OwnerKey(uuid.NewString()), domain.OwnerKey(uuid.NewString())
		require.NoError(t, repo.Save(ctx, a, sampleState(t)))
		require.NoError(t, repo.Save(ctx, b, domain.NewState()))

		got, err := repo.Load(ctx, b)
		require.NoError(t, err)
		assert.Empty(t, got.Habits)
	})

	t.Run("Success: loaded state is not aliased", func(t *testing.T) {
		key := domain.OwnerKey(uuid.NewString())
		require.NoError(t, repo.Save(ctx, key, sampleState(t)))

		first, err := repo.Load(ctx, key)
		require.NoError(t, err)
		first.Habits[0].Name = "mutated"

		second, err := repo.Load(ctx, key)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", second.Habits[0].Name)
	})
}

func runUserRepositorySuite(t *testing.T, repo domain.UserRepository) {
	ctx := context.Background()

	newUser := func(t *testing.T) *domain.User {
		u, err := domain.NewUser(uuid.NewString()[:8]+"@kanso.app", "Password123!")
		require.NoError(t, err)
		return u
	}

	t.Run("Success: create and fetch", func(t *testing.T) {
		u := newUser(t)
		require.NoError(t, repo.Create(ctx, u))

		byID, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Email, byID.Email)
		assert.Equal(t, u.PasswordHash, byID.PasswordHash)
		assert.WithinDuration(t, u.CreatedAt, byID.CreatedAt, time.Second)

		byEmail, err := repo.GetByEmail(ctx, u.Email)
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)
		assert.NoError(t, byEmail.CheckPassword("Password123!"))
	})

	t.Run("Fail: duplicate email", func(t *testing.T) {
		u := newUser(t)
		require.NoError(t, repo.Create(ctx, u))

		dup, err := domain.NewUser(u.Email, "Password456!")
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrEmailAlreadyExists)
	})

	t.Run("Fail: not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		_, err = repo.GetByEmail(ctx, "nobody@kanso.app")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
