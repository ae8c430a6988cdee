package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
)

func openTestSQLite(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nested", "habits.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteStateRepository(t *testing.T) {
	repo := NewSQLiteStateRepository(openTestSQLite(t))
	require.NoError(t, repo.Migrate(context.Background()))

	runStateRepositorySuite(t, repo)
}

func TestSQLiteStateRepository_Revision(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteStateRepository(openTestSQLite(t))
	require.NoError(t, repo.Migrate(ctx))
	require.NoError(t, repo.Migrate(ctx), "migrate is idempotent")

	key := domain.OwnerKey("rev")

	rev, err := repo.Revision(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 0, rev)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, key, domain.NewState()))
	}

	rev, err = repo.Revision(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 3, rev)
}

func TestSQLiteStateRepository_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "habits.db")

	db, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	repo := NewSQLiteStateRepository(db)
	require.NoError(t, repo.Migrate(ctx))
	require.NoError(t, repo.Save(ctx, domain.StorageKey, sampleState(t)))
	require.NoError(t, db.Close())

	db, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	got, err := NewSQLiteStateRepository(db).Load(ctx, domain.StorageKey)
	require.NoError(t, err)
	assert.Len(t, got.Habits, 2)
	assert.Equal(t, "07:30", got.Settings.NotificationTime)
}

func TestSQLiteUserRepository(t *testing.T) {
	repo := NewSQLiteUserRepository(openTestSQLite(t))
	require.NoError(t, repo.Migrate(context.Background()))

	runUserRepositorySuite(t, repo)
}
