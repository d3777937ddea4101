package dao

import (
	"context"

	"github.com/bytedance/sonic"

	"github.com/quartermaster-app/linkgraph/internal/domain"
	"github.com/quartermaster-app/linkgraph/pkg/code"
)

// entityRepository implements domain.EntityRepository on the key-value
// store. The link layer only reads entities; their lifecycle belongs to
// the per-entity-kind repositories of the host application.
type entityRepository struct {
	dao *Dao
}

// NewEntityRepository creates an EntityRepository instance.
func NewEntityRepository(dao *Dao) domain.EntityRepository {
	return &entityRepository{dao: dao}
}

func (r *entityRepository) entityKey(t domain.EntityType, id string) string {
	return r.dao.key(entityKeyPrefix, string(t), ":", id)
}

// Get fetches an entity record and decodes it into its tagged-union
// variant. A missing key reads as not visible; never-existed, deleted and
// not-yet-visible all surface as false here.
func (r *entityRepository) Get(ctx context.Context, t domain.EntityType, id string) (domain.Entity, bool, error) {
	entity, ok := domain.NewEntity(t)
	if !ok {
		return nil, false, nil
	}

	data, found, err := r.dao.store.Get(ctx, r.entityKey(t, id))
	if err != nil {
		return nil, false, code.ErrorStoreQuery.WithDetails(err.Error())
	}
	if !found {
		return nil, false, nil
	}
	if err := sonic.Unmarshal(data, entity); err != nil {
		return nil, false, code.ErrorStoreQuery.WithDetails(err.Error())
	}
	return entity, true, nil
}

// Put writes an entity record. Used by seeding scripts and tests; the
// production write path lives in the host application.
func (r *entityRepository) Put(ctx context.Context, entity domain.Entity) error {
	data, err := sonic.Marshal(entity)
	if err != nil {
		return code.ErrorStoreWrite.WithDetails(err.Error())
	}
	key := r.entityKey(entity.EntityType(), entity.EntityID())
	if err := r.dao.store.Set(ctx, key, data); err != nil {
		return code.ErrorStoreWrite.WithDetails(err.Error())
	}
	return nil
}

// Ensure entityRepository implements domain.EntityRepository interface
var _ domain.EntityRepository = (*entityRepository)(nil)
