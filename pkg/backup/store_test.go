package backup_test

import (
	"context"
	"testing"
	"time"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/backup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedBackup(id string, created time.Time) *backup.Backup {
	return &backup.Backup{
		ID:              id,
		Name:            "b-" + id,
		CreatedDateTime: created,
		Policies: map[backup.Domain][]map[string]interface{}{
			backup.DomainConditionalAccess: {},
		},
	}
}

func TestFileStore_ListNewestFirst(t *testing.T) {
	store, err := backup.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveBackup(ctx, storedBackup("old", base)))
	require.NoError(t, store.SaveBackup(ctx, storedBackup("new", base.Add(48*time.Hour))))
	require.NoError(t, store.SaveBackup(ctx, storedBackup("mid", base.Add(24*time.Hour))))

	all, err := store.ListBackups(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "mid", all[1].ID)
	assert.Equal(t, "old", all[2].ID)
}

func TestFileStore_DeleteIsIdempotent(t *testing.T) {
	store, err := backup.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.SaveBackup(ctx, storedBackup("keep", time.Now())))
	require.NoError(t, store.SaveBackup(ctx, storedBackup("drop", time.Now())))

	require.NoError(t, store.DeleteBackup(ctx, "drop"))
	require.NoError(t, store.DeleteBackup(ctx, "drop"), "second delete is a no-op")
	require.NoError(t, store.DeleteBackup(ctx, "never-existed"))

	all, err := store.ListBackups(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "keep", all[0].ID)
}

func TestFileStore_AuditNewestFirst(t *testing.T) {
	store, err := backup.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"first", "second", "third"} {
		require.NoError(t, store.AppendAuditEntry(ctx, &backup.AuditEntry{
			ID:        id,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	entries, err := store.ListAuditEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].ID)
	assert.Equal(t, "first", entries[2].ID)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := backup.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveBackup(ctx, storedBackup("durable", time.Now())))
	require.NoError(t, store.AppendAuditEntry(ctx, &backup.AuditEntry{ID: "e1", Timestamp: time.Now()}))

	reopened, err := backup.NewFileStore(dir)
	require.NoError(t, err)

	all, err := reopened.ListBackups(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "durable", all[0].ID)

	entries, err := reopened.ListAuditEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_EmptyStateIsNotAnError(t *testing.T) {
	store, err := backup.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	all, err := store.ListBackups(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	entries, err := store.ListAuditEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
