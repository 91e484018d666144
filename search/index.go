// Package search maintains a full-text index over message content.
// The index is a projection: Badger stays authoritative, and a lost index
// only degrades search, never history.
package search

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/blugelabs/bluge"
)

type Index struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewIndex(path string, log *slog.Logger) (*Index, error) {
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(path))
	if err != nil {
		return nil, err
	}
	return &Index{writer: writer, log: log}, nil
}

// NewInMemoryIndex backs the index with memory only. Test use.
func NewInMemoryIndex(log *slog.Logger) (*Index, error) {
	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	if err != nil {
		return nil, err
	}
	return &Index{writer: writer, log: log}, nil
}

func (i *Index) Close() error {
	return i.writer.Close()
}

// IndexMessage upserts one message document. Only room messages carry a
// room field; direct messages are indexed under their conversation pair so
// both participants can search them.
func (i *Index) IndexMessage(id, senderID int64, roomID *int64, receiverID *int64, content string) error {
	doc := bluge.NewDocument(strconv.FormatInt(id, 10)).
		AddField(bluge.NewTextField("content", content).StoreValue()).
		AddField(bluge.NewNumericField("sender", float64(senderID)))
	if roomID != nil {
		doc.AddField(bluge.NewKeywordField("room", strconv.FormatInt(*roomID, 10)))
	}
	if receiverID != nil {
		doc.AddField(bluge.NewKeywordField("receiver", strconv.FormatInt(*receiverID, 10)))
	}
	return i.writer.Update(doc.ID(), doc)
}

// SearchRoom returns ids of room messages matching terms, best first.
func (i *Index) SearchRoom(ctx context.Context, roomID int64, terms string, limit int) ([]int64, error) {
	query := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(terms).SetField("content")).
		AddMust(bluge.NewTermQuery(strconv.FormatInt(roomID, 10)).SetField("room"))
	return i.search(ctx, query, limit)
}

// SearchConversation returns ids of direct messages between two users
// matching terms, best first.
func (i *Index) SearchConversation(ctx context.Context, userA, userB int64, terms string, limit int) ([]int64, error) {
	a := strconv.FormatInt(userA, 10)
	b := strconv.FormatInt(userB, 10)
	pair := bluge.NewBooleanQuery().
		AddShould(bluge.NewBooleanQuery().
			AddMust(bluge.NewTermQuery(a).SetField("receiver")).
			AddMust(bluge.NewNumericRangeInclusiveQuery(float64(userB), float64(userB), true, true).SetField("sender"))).
		AddShould(bluge.NewBooleanQuery().
			AddMust(bluge.NewTermQuery(b).SetField("receiver")).
			AddMust(bluge.NewNumericRangeInclusiveQuery(float64(userA), float64(userA), true, true).SetField("sender")))
	query := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(terms).SetField("content")).
		AddMust(pair)
	return i.search(ctx, query, limit)
}

func (i *Index) search(ctx context.Context, query bluge.Query, limit int) ([]int64, error) {
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			i.log.Warn("failed to close index reader", "error", err)
		}
	}()

	iter, err := reader.Search(ctx, bluge.NewTopNSearch(limit, query))
	if err != nil {
		return nil, err
	}

	var ids []int64
	for {
		match, err := iter.Next()
		if err != nil {
			return nil, err
		}
		if match == nil {
			break
		}
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				if id, convErr := strconv.ParseInt(string(value), 10, 64); convErr == nil {
					ids = append(ids, id)
				}
			}
			return true
		})
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}
