package storage

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndReload(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStore(dir)
	require.NoError(t, err)

	item, err := s.Append(HistoryItem{
		Platform:      "Linux",
		PythonVersion: "3.12",
		Channel:       "release",
		Workloads:     9,
		Failures:      1,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.False(t, item.Timestamp.IsZero())

	// A fresh store over the same dir sees the entry.
	s2, err := NewStore(dir)
	require.NoError(t, err)
	items := s2.List()
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
	assert.Equal(t, 9, items[0].Workloads)

	got := s2.Get(item.ID)
	require.NotNil(t, got)
	assert.Equal(t, "3.12", got.PythonVersion)
	assert.Nil(t, s2.Get("missing"))
}

func TestNewestFirstAndCap(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for i := 0; i < maxItems+5; i++ {
		_, err := s.Append(HistoryItem{Platform: fmt.Sprintf("run-%d", i)})
		require.NoError(t, err)
	}

	items := s.List()
	require.Len(t, items, maxItems)
	assert.Equal(t, fmt.Sprintf("run-%d", maxItems+4), items[0].Platform)
}
