package tracking

import (
	"context"

	"github.com/xnorik/xnorik-backend/internal/db"
	"github.com/xnorik/xnorik-backend/internal/models"
)

// StatusChange is emitted when a watched record moves to a new status.
type StatusChange struct {
	Code   string                   `json:"code"`
	From   models.MaintenanceStatus `json:"from"`
	To     models.MaintenanceStatus `json:"to"`
	Record *models.ServiceRecord    `json:"record,omitempty"`
}

// Watcher turns a record's live snapshot stream into status-change events.
type Watcher struct {
	services db.ServiceCollection
}

// NewWatcher creates a new status watcher
func NewWatcher(services db.ServiceCollection) *Watcher {
	return &Watcher{services: services}
}

// Watch subscribes to one record and emits an event each time its current
// status differs from the previous snapshot. The channel is closed and the
// underlying subscription released when ctx is cancelled or the stream ends.
func (w *Watcher) Watch(ctx context.Context, record *models.ServiceRecord) (<-chan StatusChange, error) {
	stream, err := w.services.WatchService(ctx, record.ID.Hex())
	if err != nil {
		return nil, err
	}

	out := make(chan StatusChange)
	go pump(ctx, stream, record.CurrentStatus, out)
	return out, nil
}

// pump forwards status transitions from the stream. Snapshots that do not
// change the current status (edits to descriptive fields) are dropped.
func pump(ctx context.Context, stream db.ServiceStream, last models.MaintenanceStatus, out chan<- StatusChange) {
	defer close(out)
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		snapshot, err := stream.Record()
		if err != nil {
			return
		}
		if snapshot.CurrentStatus == last {
			continue
		}
		change := StatusChange{
			Code:   snapshot.TrackingCode,
			From:   last,
			To:     snapshot.CurrentStatus,
			Record: snapshot,
		}
		last = snapshot.CurrentStatus

		select {
		case out <- change:
		case <-ctx.Done():
			return
		}
	}
}
