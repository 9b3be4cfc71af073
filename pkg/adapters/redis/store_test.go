package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkarlsen/switchboard/pkg/adapters/redis"
	"github.com/pkarlsen/switchboard/pkg/call"
)

func newTestStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func record(id string, startedAt time.Time) call.Record {
	return call.Record{
		ID:        id,
		System:    "info-booth",
		StartedAt: startedAt,
		EndedAt:   startedAt.Add(90 * time.Second),
		Prompts:   []string{"prompts/main", "prompts/weather"},
	}
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	want := record("call-1", time.Now().Truncate(time.Second))
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx, "call-1")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.System, got.System)
	assert.Equal(t, want.Prompts, got.Prompts)
	assert.Equal(t, 90*time.Second, got.Duration())
}

func TestStore_LoadMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, call.ErrNotFound)
}

func TestStore_ListNewestFirst(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, store.Save(ctx, record("old", base.Add(-2*time.Hour))))
	require.NoError(t, store.Save(ctx, record("mid", base.Add(-time.Hour))))
	require.NoError(t, store.Save(ctx, record("new", base)))

	records, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "new", records[0].ID)
	assert.Equal(t, "old", records[2].ID)

	capped, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, capped, 2)
	assert.Equal(t, "new", capped[0].ID)
}

func TestStore_ListPrunesExpiredRecords(t *testing.T) {
	store, mr := newTestStore(t, redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, record("gone", time.Now())))
	mr.FastForward(2 * time.Minute)

	records, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}
