package persistence

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/teacherlog/teacherlog/domain/contribution"
)

func newSQLiteStore(t *testing.T) Store {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(context.Background(), "sqlite:///"+dbPath, "", logger)
	require.NoError(t, err)
	require.NoError(t, store.EnsureIndexes(context.Background()))
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	return store
}

func newRecord(t *testing.T, date string) contribution.Contribution {
	t.Helper()

	c, err := contribution.New(contribution.CreateParams{
		Date:             date,
		ContributionType: "Student Mentoring",
		TimeSpent:        60,
		Description:      "weekly mentoring sessions for final year students",
	}, time.Now())
	require.NoError(t, err)
	return c
}

func TestGormStoreInsertAndGet(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	created, err := store.Insert(ctx, newRecord(t, "2024-03-01"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID())
	require.NoError(t, store.ValidateID(created.ID()))

	got, err := store.Get(ctx, created.ID())
	require.NoError(t, err)
	require.Equal(t, created.Date(), got.Date())
	require.Equal(t, created.Description(), got.Description())
	require.Equal(t, created.InputMode(), got.InputMode())
}

func TestGormStoreValidateID(t *testing.T) {
	store := newSQLiteStore(t)

	require.ErrorIs(t, store.ValidateID("not-a-uuid"), ErrInvalidID)
	require.NoError(t, store.ValidateID(uuid.NewString()))
}

func TestGormStoreGetMissing(t *testing.T) {
	store := newSQLiteStore(t)

	_, err := store.Get(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGormStoreListSorted(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	for _, date := range []string{"2024-02-01", "2024-03-01", "2024-01-01"} {
		_, err := store.Insert(ctx, newRecord(t, date))
		require.NoError(t, err)
	}

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "2024-03-01", records[0].Date())
	require.Equal(t, "2024-02-01", records[1].Date())
	require.Equal(t, "2024-01-01", records[2].Date())
}

func TestGormStoreListCapped(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < ListLimit; i++ {
		_, err := store.Insert(ctx, newRecord(t, "2024-01-01"))
		require.NoError(t, err)
	}
	_, err := store.Insert(ctx, newRecord(t, "2024-06-01"))
	require.NoError(t, err)

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, ListLimit)
	require.Equal(t, "2024-06-01", records[0].Date())
}

func TestGormStoreUpdate(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	created, err := store.Insert(ctx, newRecord(t, "2024-03-01"))
	require.NoError(t, err)

	updated, err := store.Update(ctx, created.ID(), map[string]any{
		contribution.FieldTimeSpent:   90,
		contribution.FieldDescription: "restructured the mentoring plan for the semester",
	})
	require.NoError(t, err)
	require.Equal(t, 90, updated.TimeSpent())
	require.Equal(t, "restructured the mentoring plan for the semester", updated.Description())
	require.Equal(t, created.Date(), updated.Date())
}

func TestGormStoreUpdateMissing(t *testing.T) {
	store := newSQLiteStore(t)

	_, err := store.Update(context.Background(), uuid.NewString(), map[string]any{
		contribution.FieldTimeSpent: 30,
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGormStoreUpdateIdenticalValues(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	created, err := store.Insert(ctx, newRecord(t, "2024-03-01"))
	require.NoError(t, err)

	// An update that leaves values unchanged must still succeed; only a
	// missing row is a not-found.
	updated, err := store.Update(ctx, created.ID(), map[string]any{
		contribution.FieldTimeSpent: created.TimeSpent(),
	})
	require.NoError(t, err)
	require.Equal(t, created.TimeSpent(), updated.TimeSpent())
}

func TestGormStoreDelete(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	created, err := store.Insert(ctx, newRecord(t, "2024-03-01"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, created.ID()))
	require.ErrorIs(t, store.Delete(ctx, created.ID()), ErrNotFound)

	_, err = store.Get(ctx, created.ID())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOpenUnsupportedScheme(t *testing.T) {
	_, err := Open(context.Background(), "redis://localhost:6379", "", nil)
	require.Error(t, err)
}

func TestMongoStoreValidateID(t *testing.T) {
	var store MongoStore

	require.ErrorIs(t, store.ValidateID("not-hex"), ErrInvalidID)
	require.ErrorIs(t, store.ValidateID("123"), ErrInvalidID)
	require.NoError(t, store.ValidateID("65f1a2b3c4d5e6f708192a3b"))
}
