package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sass-calc/internal/calculator/history"
	"sass-calc/internal/calculator/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := New(db)
	require.NoError(t, store.Init(context.Background()))
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	at := time.Date(2024, time.May, 1, 8, 30, 0, 0, time.UTC)

	entry := models.HistoryEntry{
		ID:          "a1",
		Calculation: models.CalculationRecord{Expression: "2 + 2", Result: "4.00", Unit: models.UnitRem},
		Timestamp:   "5/1/2024, 8:30:00 AM",
		CreatedAt:   at,
		Result:      "4.00",
	}
	require.NoError(t, store.Prepend(entry, 50))

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, entry.Calculation, got.Calculation)
	assert.Equal(t, entry.Timestamp, got.Timestamp)
	assert.Equal(t, entry.Result, got.Result)
	assert.True(t, at.Equal(got.CreatedAt))
}

func TestSQLiteStoreBackedLedgerIsBounded(t *testing.T) {
	store := newTestStore(t)
	n := 0
	ledger := history.NewLedger(
		history.WithStore(store),
		history.WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%03d", n) }),
	)

	for i := 1; i <= 60; i++ {
		_, err := ledger.Append(models.CalculationRecord{
			Expression: fmt.Sprintf("%d * 1", i),
			Result:     fmt.Sprintf("%d.0000", i),
			Unit:       models.UnitPx,
		})
		require.NoError(t, err)
	}

	entries, err := ledger.List()
	require.NoError(t, err)
	require.Len(t, entries, history.DefaultCapacity)
	assert.Equal(t, "id-060", entries[0].ID)
	assert.Equal(t, "60 * 1", entries[0].Calculation.Expression)
	assert.Equal(t, "id-011", entries[len(entries)-1].ID)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, history.DefaultCapacity, count)
}

func TestSQLiteStoreClear(t *testing.T) {
	store := newTestStore(t)
	ledger := history.NewLedger(history.WithStore(store))

	_, err := ledger.Append(models.CalculationRecord{Expression: "1 + 1", Result: "2.0000", Unit: models.UnitPx})
	require.NoError(t, err)
	require.NoError(t, ledger.Clear())

	entries, err := ledger.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
