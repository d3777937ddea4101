package dao

import (
	"context"

	"github.com/bytedance/sonic"

	"github.com/quartermaster-app/linkgraph/internal/domain"
	"github.com/quartermaster-app/linkgraph/pkg/code"
)

// linkRepository implements domain.LinkRepository on the key-value store.
//
// Create is deliberately not atomic: the duplicate check, the record write
// and the two index updates are separate round trips with nothing wrapping
// them. Concurrent callers creating the same logical edge can race past the
// duplicate check and leave two records behind. Robustness comes from the
// idempotent, drift-tolerant read side instead of from locking.
type linkRepository struct {
	dao *Dao
}

// NewLinkRepository creates a LinkRepository instance.
func NewLinkRepository(dao *Dao) domain.LinkRepository {
	return &linkRepository{dao: dao}
}

func (r *linkRepository) recordKey(id string) string {
	return r.dao.key(linkKeyPrefix, id)
}

func (r *linkRepository) indexKey(ref domain.EntityRef) string {
	return r.dao.key(linkIndexKeyPrefix, string(ref.Type), ":", ref.ID)
}

// Create persists the link and indexes it under both endpoints. Returns
// false without writing when the exact (linkType, source, target) tuple is
// already attached to the source.
func (r *linkRepository) Create(ctx context.Context, link *domain.Link) (bool, error) {
	existing, err := r.ListForEntity(ctx, link.Source)
	if err != nil {
		return false, err
	}
	for _, l := range existing {
		if l.SameEdge(link.Type, link.Source, link.Target) {
			return false, nil
		}
	}

	data, err := sonic.Marshal(link)
	if err != nil {
		return false, code.ErrorStoreWrite.WithDetails(err.Error())
	}
	if err := r.dao.store.Set(ctx, r.recordKey(link.ID), data); err != nil {
		return false, code.ErrorStoreWrite.WithDetails(err.Error())
	}
	if err := r.dao.store.SAdd(ctx, r.indexKey(link.Source), link.ID); err != nil {
		return false, code.ErrorStoreWrite.WithDetails(err.Error())
	}
	if err := r.dao.store.SAdd(ctx, r.indexKey(link.Target), link.ID); err != nil {
		return false, code.ErrorStoreWrite.WithDetails(err.Error())
	}
	return true, nil
}

// GetByID fetches one link record; (nil, nil) when absent.
func (r *linkRepository) GetByID(ctx context.Context, id string) (*domain.Link, error) {
	data, ok, err := r.dao.store.Get(ctx, r.recordKey(id))
	if err != nil {
		return nil, code.ErrorStoreQuery.WithDetails(err.Error())
	}
	if !ok {
		return nil, nil
	}
	var link domain.Link
	if err := sonic.Unmarshal(data, &link); err != nil {
		return nil, code.ErrorStoreQuery.WithDetails(err.Error())
	}
	return &link, nil
}

// ListForEntity reads the entity's index set and batch-fetches the
// records. Ids whose record is missing are silently dropped; the index is
// derived and may drift from the record store.
func (r *linkRepository) ListForEntity(ctx context.Context, ref domain.EntityRef) ([]*domain.Link, error) {
	ids, err := r.dao.store.SMembers(ctx, r.indexKey(ref))
	if err != nil {
		return nil, code.ErrorStoreQuery.WithDetails(err.Error())
	}

	var links []*domain.Link
	for _, id := range ids {
		link, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if link == nil {
			continue
		}
		links = append(links, link)
	}
	return links, nil
}

// Delete strips the id from both endpoints' index sets and removes the
// record. Unknown ids and already-stripped index entries are no-ops.
func (r *linkRepository) Delete(ctx context.Context, id string) error {
	link, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if link == nil {
		return nil
	}

	if err := r.dao.store.SRem(ctx, r.indexKey(link.Source), id); err != nil {
		return code.ErrorStoreWrite.WithDetails(err.Error())
	}
	if err := r.dao.store.SRem(ctx, r.indexKey(link.Target), id); err != nil {
		return code.ErrorStoreWrite.WithDetails(err.Error())
	}
	if err := r.dao.store.Delete(ctx, r.recordKey(id)); err != nil {
		return code.ErrorStoreWrite.WithDetails(err.Error())
	}
	return nil
}

// All enumerates every stored link via a prefix scan. Administrative use.
func (r *linkRepository) All(ctx context.Context) ([]*domain.Link, error) {
	keys, err := r.dao.store.Keys(ctx, r.dao.key(linkKeyPrefix))
	if err != nil {
		return nil, code.ErrorStoreQuery.WithDetails(err.Error())
	}

	var links []*domain.Link
	for _, key := range keys {
		data, ok, err := r.dao.store.Get(ctx, key)
		if err != nil {
			return nil, code.ErrorStoreQuery.WithDetails(err.Error())
		}
		if !ok {
			continue
		}
		var link domain.Link
		if err := sonic.Unmarshal(data, &link); err != nil {
			return nil, code.ErrorStoreQuery.WithDetails(err.Error())
		}
		links = append(links, &link)
	}
	return links, nil
}

// Ensure linkRepository implements domain.LinkRepository interface
var _ domain.LinkRepository = (*linkRepository)(nil)
