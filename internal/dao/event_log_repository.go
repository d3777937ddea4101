package dao

import (
	"context"

	"github.com/bytedance/sonic"

	"github.com/quartermaster-app/linkgraph/internal/domain"
	"github.com/quartermaster-app/linkgraph/pkg/code"
)

// eventLogRepository implements domain.EventLogRepository as an append-only
// list under the link entity class. The trail is read-only audit data and
// is never consulted by validation or deduplication.
type eventLogRepository struct {
	dao *Dao
}

// NewEventLogRepository creates an EventLogRepository instance.
func NewEventLogRepository(dao *Dao) domain.EventLogRepository {
	return &eventLogRepository{dao: dao}
}

func (r *eventLogRepository) Append(ctx context.Context, event *domain.LinkEvent) error {
	data, err := sonic.Marshal(event)
	if err != nil {
		return code.ErrorStoreWrite.WithDetails(err.Error())
	}
	if err := r.dao.store.LAppend(ctx, r.dao.key(eventLogKey), data); err != nil {
		return code.ErrorStoreWrite.WithDetails(err.Error())
	}
	return nil
}

func (r *eventLogRepository) List(ctx context.Context) ([]*domain.LinkEvent, error) {
	values, err := r.dao.store.LRange(ctx, r.dao.key(eventLogKey))
	if err != nil {
		return nil, code.ErrorStoreQuery.WithDetails(err.Error())
	}

	var events []*domain.LinkEvent
	for _, data := range values {
		var event domain.LinkEvent
		if err := sonic.Unmarshal(data, &event); err != nil {
			return nil, code.ErrorStoreQuery.WithDetails(err.Error())
		}
		events = append(events, &event)
	}
	return events, nil
}

// Ensure eventLogRepository implements domain.EventLogRepository interface
var _ domain.EventLogRepository = (*eventLogRepository)(nil)
