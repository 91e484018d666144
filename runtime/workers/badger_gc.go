package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const gcDiscardRatio = 0.5

// BadgerGC periodically runs value log garbage collection on the store.
// Badger never reclaims value log space on its own; without this loop the
// store grows unbounded under message churn.
type BadgerGC struct {
	db       *badger.DB
	interval time.Duration
	log      *slog.Logger
}

func NewBadgerGC(db *badger.DB, interval time.Duration, log *slog.Logger) *BadgerGC {
	return &BadgerGC{db: db, interval: interval, log: log}
}

func (w *BadgerGC) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.collect()
		case <-ctx.Done():
			w.log.Debug("Context done, stopping badger GC")
			return nil
		}
	}
}

// collect loops while GC makes progress. ErrNoRewrite means there was
// nothing worth rewriting, which is the normal idle outcome.
func (w *BadgerGC) collect() {
	for {
		err := w.db.RunValueLogGC(gcDiscardRatio)
		if err == nil {
			w.log.Info("badger value log GC reclaimed a file")
			continue
		}
		if err != badger.ErrNoRewrite {
			w.log.Warn("badger value log GC failed", "error", err)
		}
		return
	}
}
