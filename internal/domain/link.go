package domain

import (
	"github.com/quartermaster-app/linkgraph/pkg/timex"
)

// EntityRef identifies one endpoint of a link.
type EntityRef struct {
	Type EntityType `json:"entityType"`
	ID   string     `json:"entityId"`
}

func (r EntityRef) String() string {
	return string(r.Type) + ":" + r.ID
}

func (r EntityRef) Equal(o EntityRef) bool {
	return r.Type == o.Type && r.ID == o.ID
}

// Link is a typed, directed edge between two entities. Links are immutable
// once created; a changed relationship is modeled as remove-then-recreate.
type Link struct {
	ID        string            `json:"id"`
	Type      LinkType          `json:"linkType"`
	Source    EntityRef         `json:"source"`
	Target    EntityRef         `json:"target"`
	CreatedAt timex.Time        `json:"createdAt"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Touches reports whether ref is either endpoint of the link.
func (l *Link) Touches(ref EntityRef) bool {
	return l.Source.Equal(ref) || l.Target.Equal(ref)
}

// Connects reports whether the link joins a and b as an unordered pair,
// regardless of which side is source.
func (l *Link) Connects(a, b EntityRef) bool {
	return (l.Source.Equal(a) && l.Target.Equal(b)) ||
		(l.Source.Equal(b) && l.Target.Equal(a))
}

// SameEdge reports whether the other link represents the exact same tuple
// (linkType, source, target).
func (l *Link) SameEdge(linkType LinkType, source, target EntityRef) bool {
	return l.Type == linkType && l.Source.Equal(source) && l.Target.Equal(target)
}

// EventKind classifies link audit events.
type EventKind string

const (
	EventCreated EventKind = "created"
	EventUpdated EventKind = "updated"
	EventRemoved EventKind = "removed"
)

// LinkEvent is one entry of the append-only link audit trail. The trail is
// best effort and is never consulted by validation.
type LinkEvent struct {
	Kind      EventKind         `json:"kind"`
	LinkID    string            `json:"linkId"`
	LinkType  LinkType          `json:"linkType"`
	Source    EntityRef         `json:"source"`
	Target    EntityRef         `json:"target"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Timestamp timex.Time        `json:"timestamp"`
}

// NewLinkEvent builds an event snapshot for the given link.
func NewLinkEvent(kind EventKind, link *Link) *LinkEvent {
	return &LinkEvent{
		Kind:      kind,
		LinkID:    link.ID,
		LinkType:  link.Type,
		Source:    link.Source,
		Target:    link.Target,
		Metadata:  link.Metadata,
		Timestamp: timex.Now(),
	}
}
