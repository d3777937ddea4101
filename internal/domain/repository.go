package domain

import "context"

// LinkRepository persists link records and maintains the per-entity index
// of link ids. The index is derived and not authoritative; the record store
// is. No atomic cross-key guarantee exists between the two.
type LinkRepository interface {
	// Create persists the link and adds its id to both endpoints' index
	// sets. Returns false without writing when an exact
	// (linkType, source, target) duplicate is already attached to the
	// source.
	Create(ctx context.Context, link *Link) (bool, error)

	// GetByID fetches a link record, returning (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*Link, error)

	// ListForEntity returns all links touching the entity, from either
	// end. Index entries whose record is missing are silently dropped.
	ListForEntity(ctx context.Context, ref EntityRef) ([]*Link, error)

	// Delete removes the link id from both endpoints' index sets (a no-op
	// when already absent) and deletes the record. An unknown id is a
	// no-op.
	Delete(ctx context.Context, id string) error

	// All enumerates every stored link record. Administrative use only,
	// not on any hot path.
	All(ctx context.Context) ([]*Link, error)
}

// EntityRepository is the externally supplied get-by-id primitive over
// domain entities. A false second return means the entity is not visible;
// never-existed, deleted and not-yet-visible are indistinguishable here.
type EntityRepository interface {
	Get(ctx context.Context, t EntityType, id string) (Entity, bool, error)
}

// EventLogRepository is the best-effort append-only audit trail of link
// events. Append failures must never fail the enclosing operation.
type EventLogRepository interface {
	Append(ctx context.Context, event *LinkEvent) error
	List(ctx context.Context) ([]*LinkEvent, error)
}
