// Package dao implements the data access layer on the key-value store.
package dao

import (
	"strings"

	"github.com/quartermaster-app/linkgraph/internal/kv"
)

// Key layout, relative to the configured prefix:
//
//	link:{id}                     one serialized link record per link id
//	links-for:{entityType}:{id}   set of link ids touching the entity
//	link-events                   append-only list of audit events
//	entity:{entityType}:{id}      serialized entity records (read side)
const (
	linkKeyPrefix      = "link:"
	linkIndexKeyPrefix = "links-for:"
	eventLogKey        = "link-events"
	entityKeyPrefix    = "entity:"
)

// Dao bundles the key-value store with the configured key prefix. All
// repositories are built from a Dao instance.
type Dao struct {
	store  kv.Store
	prefix string
}

// New creates a Dao instance. keyPrefix namespaces every key, so several
// deployments can share one store.
func New(store kv.Store, keyPrefix string) *Dao {
	return &Dao{store: store, prefix: keyPrefix}
}

// Store exposes the underlying key-value store.
func (d *Dao) Store() kv.Store {
	return d.store
}

func (d *Dao) key(parts ...string) string {
	return d.prefix + strings.Join(parts, "")
}
