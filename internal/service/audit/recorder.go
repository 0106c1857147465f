package audit

import (
	"context"
	"time"

	"client-bff/internal/domain/audit"
	"client-bff/internal/metrics"
	xerrors "client-bff/internal/pkg/errors"

	"go.uber.org/zap"
)

// Store persists search audit rows.
type Store interface {
	Create(ctx context.Context, a *audit.SearchAudit) error
	List(ctx context.Context, filters *audit.ListFilters) ([]audit.SearchAudit, error)
}

// Recorder counts every search and, when a store is configured, writes an
// audit row in the background so the response is never held up by it.
type Recorder struct {
	store   Store
	timeout time.Duration
	logger  *zap.Logger
}

func NewRecorder(store Store, logger *zap.Logger) *Recorder {
	return &Recorder{store: store, timeout: 3 * time.Second, logger: logger}
}

// Record observes the search and queues its audit row. The returned channel
// is closed once the write finished; callers normally ignore it.
func (r *Recorder) Record(ctx context.Context, entry *audit.SearchAudit, elapsed time.Duration) <-chan struct{} {
	metrics.ObserveSearch(entry.Path, entry.Code, elapsed)
	entry.DurationMs = elapsed.Milliseconds()

	done := make(chan struct{})
	if r.store == nil {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()

		if err := r.store.Create(writeCtx, entry); err != nil {
			r.logger.Warn("failed to write search audit",
				zap.String("request_id", entry.RequestID),
				zap.String("path", entry.Path),
				zap.Error(err),
			)
		}
	}()
	return done
}

// List returns recent audit rows, newest first.
func (r *Recorder) List(ctx context.Context, filters *audit.ListFilters) ([]audit.SearchAudit, error) {
	if r.store == nil {
		return nil, xerrors.ErrNotConfigured
	}
	return r.store.List(ctx, filters)
}
