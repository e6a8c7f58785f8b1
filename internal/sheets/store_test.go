package sheets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordsEmptyStore(t *testing.T) {
	records, err := Records(context.Background(), NewMemory())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecordsHeaderOnly(t *testing.T) {
	store := NewMemoryWithRows([][]string{{"Date", "Time"}})
	records, err := Records(context.Background(), store)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecordsMapsHeaderToValues(t *testing.T) {
	store := NewMemoryWithRows([][]string{
		{"Date", "Time", "Name"},
		{"2025-03-01", "10:00", "Alice"},
		{"2025-03-02", "11:30"},                      // short row padded
		{"2025-03-03", "09:00", "Bob", "extra cell"}, // extra cell dropped
	})

	records, err := Records(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "2025-03-01", records[0]["Date"])
	assert.Equal(t, "10:00", records[0]["Time"])
	assert.Equal(t, "Alice", records[0]["Name"])
	assert.Equal(t, "", records[1]["Name"])
	assert.Equal(t, "Bob", records[2]["Name"])
	assert.NotContains(t, records[2], "extra cell")
}

func TestMemoryAppendAndInsertHeader(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.Append(ctx, []string{"2025-03-01", "10:00"}))
	require.NoError(t, store.InsertHeader(ctx, []string{"Date", "Time"}))

	rows, err := store.Rows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Date", "Time"}, rows[0])
	assert.Equal(t, []string{"2025-03-01", "10:00"}, rows[1])
}

func TestMemoryRowsReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryWithRows([][]string{{"a", "b"}})

	rows, err := store.Rows(ctx)
	require.NoError(t, err)
	rows[0][0] = "mutated"

	again, err := store.Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", again[0][0])
}
