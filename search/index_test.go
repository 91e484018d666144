package search

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewInMemoryIndex(slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func ptr(v int64) *int64 { return &v }

func Test_SearchRoom_Scopes_To_Room(t *testing.T) {
	req := require.New(t)
	idx := newIndex(t)

	// Given messages across two rooms
	req.NoError(idx.IndexMessage(1, 10, ptr(100), nil, "remember the pirouette sequence"))
	req.NoError(idx.IndexMessage(2, 11, ptr(100), nil, "bring water bottles"))
	req.NoError(idx.IndexMessage(3, 10, ptr(200), nil, "pirouette drills tomorrow"))

	// When searching one room
	ids, err := idx.SearchRoom(context.Background(), 100, "pirouette", 10)

	// Then only that room's hit comes back
	req.NoError(err)
	req.Equal([]int64{1}, ids)
}

func Test_SearchConversation_Matches_Both_Directions(t *testing.T) {
	req := require.New(t)
	idx := newIndex(t)

	// Given a direct thread in both directions plus an unrelated pair
	req.NoError(idx.IndexMessage(1, 1, nil, ptr(2), "footwork feedback for monday"))
	req.NoError(idx.IndexMessage(2, 2, nil, ptr(1), "thanks, the footwork notes helped"))
	req.NoError(idx.IndexMessage(3, 3, nil, ptr(2), "footwork question"))

	ids, err := idx.SearchConversation(context.Background(), 1, 2, "footwork", 10)

	req.NoError(err)
	req.ElementsMatch([]int64{1, 2}, ids)
}

func Test_Search_No_Hits(t *testing.T) {
	req := require.New(t)
	idx := newIndex(t)

	req.NoError(idx.IndexMessage(1, 1, ptr(5), nil, "stretching schedule"))

	ids, err := idx.SearchRoom(context.Background(), 5, "tango", 10)

	req.NoError(err)
	req.Empty(ids)
}

func Test_IndexMessage_Upserts(t *testing.T) {
	req := require.New(t)
	idx := newIndex(t)

	// Given the same id indexed twice with different content
	req.NoError(idx.IndexMessage(1, 1, ptr(5), nil, "first draft"))
	req.NoError(idx.IndexMessage(1, 1, ptr(5), nil, "final choreography"))

	// Then only the latest content matches
	ids, err := idx.SearchRoom(context.Background(), 5, "draft", 10)
	req.NoError(err)
	req.Empty(ids)

	ids, err = idx.SearchRoom(context.Background(), 5, "choreography", 10)
	req.NoError(err)
	req.Equal([]int64{1}, ids)
}
