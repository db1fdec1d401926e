package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/types"
)

func TestMemoryStore_SaveAndLoad(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	state := &State{
		ID:        uuid.New(),
		Stage:     StageExtracted,
		Record:    &types.CvRecord{Personal: types.Personal{Name: "Ada"}},
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Save(ctx, state))

	loaded, err := store.Load(ctx, state.ID)
	require.NoError(t, err)
	assert.Equal(t, StageExtracted, loaded.Stage)
	assert.Equal(t, "Ada", loaded.Record.Personal.Name)
}

func TestMemoryStore_LoadUnknownID(t *testing.T) {
	store := NewMemoryStore(0)

	_, err := store.Load(context.Background(), uuid.New())
	require.Error(t, err)

	_, ok := err.(*NotFoundError)
	assert.True(t, ok, "error should be NotFoundError type")
}

func TestMemoryStore_LoadReturnsIsolatedCopy(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	state := &State{
		ID:     uuid.New(),
		Stage:  StageExtracted,
		Record: &types.CvRecord{Personal: types.Personal{Name: "Ada"}},
		Ledger: Ledger{Questions: []string{"q1"}},
	}
	require.NoError(t, store.Save(ctx, state))

	loaded, err := store.Load(ctx, state.ID)
	require.NoError(t, err)
	loaded.Record.Personal.Name = "mutated"
	loaded.Ledger.Record("q2")

	again, err := store.Load(ctx, state.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", again.Record.Personal.Name)
	assert.Equal(t, 1, again.Ledger.Len())
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	state := &State{ID: uuid.New()}
	require.NoError(t, store.Save(ctx, state))
	require.NoError(t, store.Delete(ctx, state.ID))

	_, err := store.Load(ctx, state.ID)
	assert.Error(t, err)

	// Deleting again is not an error.
	assert.NoError(t, store.Delete(ctx, state.ID))
}

func TestMemoryStore_SweepRemovesExpired(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	now := time.Now().UTC()
	stale := &State{ID: uuid.New(), UpdatedAt: now.Add(-2 * time.Minute)}
	fresh := &State{ID: uuid.New(), UpdatedAt: now}
	require.NoError(t, store.Save(ctx, stale))
	require.NoError(t, store.Save(ctx, fresh))

	removed := store.Sweep(now)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())

	_, err := store.Load(ctx, stale.ID)
	assert.Error(t, err)
	_, err = store.Load(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestMemoryStore_SweepDisabledWithoutTTL(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	old := &State{ID: uuid.New(), UpdatedAt: time.Now().UTC().Add(-24 * time.Hour)}
	require.NoError(t, store.Save(ctx, old))

	assert.Equal(t, 0, store.Sweep(time.Now().UTC()))
	assert.Equal(t, 1, store.Len())
}
