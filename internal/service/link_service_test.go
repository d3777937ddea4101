package service

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartermaster-app/linkgraph/internal/dao"
	"github.com/quartermaster-app/linkgraph/internal/domain"
	"github.com/quartermaster-app/linkgraph/internal/kv"
	"github.com/quartermaster-app/linkgraph/pkg/code"
)

// entityWriter matches the seeding method of the dao entity repository.
type entityWriter interface {
	Put(ctx context.Context, entity domain.Entity) error
}

type fixture struct {
	svc      LinkService
	links    domain.LinkRepository
	entities domain.EntityRepository
	events   domain.EventLogRepository
	writer   entityWriter
	sleeps   []time.Duration
	onSleep  func(ctx context.Context) error
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	d := dao.New(kv.NewMemoryStore(), "test:")
	f := &fixture{
		links:    dao.NewLinkRepository(d),
		entities: dao.NewEntityRepository(d),
		events:   dao.NewEventLogRepository(d),
	}
	f.writer = f.entities.(entityWriter)
	f.svc = NewLinkService(f.links, f.entities, f.events, Config{
		ExistenceAttempts: 5,
		ExistenceDelay:    120 * time.Millisecond,
		Sleep: func(ctx context.Context, d time.Duration) error {
			f.sleeps = append(f.sleeps, d)
			if f.onSleep != nil {
				return f.onSleep(ctx)
			}
			return nil
		},
	}, nil)
	return f
}

func (f *fixture) seed(t *testing.T, entities ...domain.Entity) {
	t.Helper()
	for _, e := range entities {
		require.NoError(t, f.writer.Put(context.Background(), e))
	}
}

func taskRef(id string) domain.EntityRef {
	return domain.EntityRef{Type: domain.EntityTask, ID: id}
}

func itemRef(id string) domain.EntityRef {
	return domain.EntityRef{Type: domain.EntityItem, ID: id}
}

func characterRef(id string) domain.EntityRef {
	return domain.EntityRef{Type: domain.EntityCharacter, ID: id}
}

func siteRef(id string) domain.EntityRef {
	return domain.EntityRef{Type: domain.EntitySite, ID: id}
}

func TestCreateAndLookupFromBothEnds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, &domain.Task{ID: "t1"}, &domain.Item{ID: "i1"})

	result, err := f.svc.Create(ctx, &NewLink{
		Type:   domain.LinkTaskCreatedItem,
		Source: taskRef("t1"),
		Target: itemRef("i1"),
	})
	require.NoError(t, err)
	require.True(t, result.Created)
	require.NotNil(t, result.Link)
	assert.NotEmpty(t, result.Link.ID)
	assert.Empty(t, result.Warnings)

	for _, ref := range []domain.EntityRef{taskRef("t1"), itemRef("i1")} {
		links, err := f.svc.LinksFor(ctx, ref)
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, result.Link.ID, links[0].ID)
		assert.Equal(t, domain.LinkTaskCreatedItem, links[0].Type)
	}
}

func TestCreateSelfLinkFails(t *testing.T) {
	f := newFixture(t)
	f.seed(t, &domain.Task{ID: "t1"})

	_, err := f.svc.Create(context.Background(), &NewLink{
		Type:   domain.LinkTaskDependsOnTask,
		Source: taskRef("t1"),
		Target: taskRef("t1"),
	})
	assert.ErrorIs(t, err, code.ErrorLinkSelf)
}

func TestCreateUnknownLinkTypeFails(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), &NewLink{
		Type:   domain.LinkType("task-likes-item"),
		Source: taskRef("t1"),
		Target: itemRef("i1"),
	})
	assert.ErrorIs(t, err, code.ErrorLinkTypeUnknown)
}

func TestCreateIncompatibleEndpointsFail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// item cannot be the source of task-created-item
	_, err := f.svc.Create(ctx, &NewLink{
		Type:   domain.LinkTaskCreatedItem,
		Source: itemRef("i1"),
		Target: taskRef("t1"),
	})
	require.ErrorIs(t, err, code.ErrorLinkSourceIncompatible)
	assert.Contains(t, err.Error(), "allowed sources: task")

	// task cannot be the target either
	_, err = f.svc.Create(ctx, &NewLink{
		Type:   domain.LinkTaskCreatedItem,
		Source: taskRef("t1"),
		Target: taskRef("t2"),
	})
	require.ErrorIs(t, err, code.ErrorLinkTargetIncompatible)
	assert.Contains(t, err.Error(), "allowed targets: item")
}

func TestCreateMissingEndpointFailsAfterRetryBudget(t *testing.T) {
	f := newFixture(t)
	f.seed(t, &domain.Task{ID: "t1"})

	_, err := f.svc.Create(context.Background(), &NewLink{
		Type:   domain.LinkTaskCreatedItem,
		Source: taskRef("t1"),
		Target: itemRef("ghost"),
	})
	require.ErrorIs(t, err, code.ErrorLinkEndpointMissing)
	assert.Contains(t, err.Error(), "item:ghost")

	// 5 attempts on the missing target means 4 sleeps of the configured delay
	require.Len(t, f.sleeps, 4)
	for _, d := range f.sleeps {
		assert.Equal(t, 120*time.Millisecond, d)
	}
}

func TestCreateEndpointVisibleWithinRetryWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, &domain.Task{ID: "t1"})

	// The item record lands between the second and third probe, the way a
	// lagging write becomes visible mid-validation.
	f.onSleep = func(ctx context.Context) error {
		if len(f.sleeps) == 2 {
			return f.writer.Put(ctx, &domain.Item{ID: "i1"})
		}
		return nil
	}

	result, err := f.svc.Create(ctx, &NewLink{
		Type:   domain.LinkTaskCreatedItem,
		Source: taskRef("t1"),
		Target: itemRef("i1"),
	})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Len(t, f.sleeps, 2)
}

func TestCreateExactDuplicateIsSoft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, &domain.Task{ID: "t1"}, &domain.Item{ID: "i1"})

	params := &NewLink{
		Type:   domain.LinkTaskCreatedItem,
		Source: taskRef("t1"),
		Target: itemRef("i1"),
	}

	first, err := f.svc.Create(ctx, params)
	require.NoError(t, err)
	require.True(t, first.Created)

	second, err := f.svc.Create(ctx, params)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Nil(t, second.Link)
	assert.Contains(t, second.Reason, "already exists")

	links, err := f.svc.LinksFor(ctx, taskRef("t1"))
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestCreateReverseOfExistingCanonicalIsSoft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, &domain.Item{ID: "i1", HolderID: "c1"}, &domain.Character{ID: "c1"})

	canonical, err := f.svc.Create(ctx, &NewLink{
		Type:   domain.LinkItemPossessedByCharacter,
		Source: itemRef("i1"),
		Target: characterRef("c1"),
	})
	require.NoError(t, err)
	require.True(t, canonical.Created)

	reverse, err := f.svc.Create(ctx, &NewLink{
		Type:   domain.LinkCharacterPossessesItem,
		Source: characterRef("c1"),
		Target: itemRef("i1"),
	})
	require.NoError(t, err)
	assert.False(t, reverse.Created)
	assert.Contains(t, reverse.Reason, string(domain.LinkItemPossessedByCharacter))
	assert.Contains(t, reverse.Reason, "unidirectional")

	// Only the canonical edge is stored.
	links, err := f.svc.LinksFor(ctx, characterRef("c1"))
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, domain.LinkItemPossessedByCharacter, links[0].Type)
}

func TestCreateReverseWithoutCanonicalSucceeds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, &domain.Item{ID: "i1"}, &domain.Character{ID: "c1"})

	result, err := f.svc.Create(ctx, &NewLink{
		Type:   domain.LinkCharacterPossessesItem,
		Source: characterRef("c1"),
		Target: itemRef("i1"),
	})
	require.NoError(t, err)
	assert.True(t, result.Created)
}

func TestCreateCanonicalOverExistingReverseIsSoft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, &domain.Item{ID: "i1", HolderID: "c1"}, &domain.Character{ID: "c1"})

	// With no canonical edge present the reverse phrasing is accepted.
	reverse, err := f.svc.Create(ctx, &NewLink{
		Type:   domain.LinkCharacterPossessesItem,
		Source: characterRef("c1"),
		Target: itemRef("i1"),
	})
	require.NoError(t, err)
	require.True(t, reverse.Created)

	// The canonical phrasing for the same pair must now be rejected, or
	// the pair would carry both phrasings of one relationship.
	canonical, err := f.svc.Create(ctx, &NewLink{
		Type:   domain.LinkItemPossessedByCharacter,
		Source: itemRef("i1"),
		Target: characterRef("c1"),
	})
	require.NoError(t, err)
	assert.False(t, canonical.Created)
	assert.Contains(t, canonical.Reason, string(domain.LinkCharacterPossessesItem))
	assert.Contains(t, canonical.Reason, "unidirectional")

	links, err := f.svc.LinksFor(ctx, itemRef("i1"))
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, domain.LinkCharacterPossessesItem, links[0].Type)
}

func TestCreateRuleMismatchWarnsButCreates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t,
		&domain.Task{ID: "t1", SiteID: "s1"},
		&domain.Site{ID: "s1"},
		&domain.Site{ID: "s2"},
	)

	result, err := f.svc.Create(ctx, &NewLink{
		Type:   domain.LinkTaskAtSite,
		Source: taskRef("t1"),
		Target: siteRef("s2"),
	})
	require.NoError(t, err)
	assert.True(t, result.Created)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `site "s1"`)
	assert.Contains(t, result.Warnings[0], `site "s2"`)
}

func TestCreateRuleMatchNoWarning(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, &domain.Task{ID: "t1", SiteID: "s1"}, &domain.Site{ID: "s1"})

	result, err := f.svc.Create(ctx, &NewLink{
		Type:   domain.LinkTaskAtSite,
		Source: taskRef("t1"),
		Target: siteRef("s1"),
	})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Empty(t, result.Warnings)
}

func TestRemoveStripsBothEnds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, &domain.Task{ID: "t1"}, &domain.Item{ID: "i1"})

	result, err := f.svc.Create(ctx, &NewLink{
		Type:   domain.LinkTaskCreatedItem,
		Source: taskRef("t1"),
		Target: itemRef("i1"),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Remove(ctx, result.Link.ID))

	for _, ref := range []domain.EntityRef{taskRef("t1"), itemRef("i1")} {
		links, err := f.svc.LinksFor(ctx, ref)
		require.NoError(t, err)
		assert.Empty(t, links)
	}

	// removing again, or removing garbage, is a no-op
	assert.NoError(t, f.svc.Remove(ctx, result.Link.ID))
	assert.NoError(t, f.svc.Remove(ctx, "no-such-id"))
}

func TestEventTrailRecordsCreateAndRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, &domain.Task{ID: "t1"}, &domain.Item{ID: "i1"})

	result, err := f.svc.Create(ctx, &NewLink{
		Type:   domain.LinkTaskCreatedItem,
		Source: taskRef("t1"),
		Target: itemRef("i1"),
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.Remove(ctx, result.Link.ID))

	events, err := f.events.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventCreated, events[0].Kind)
	assert.Equal(t, domain.EventRemoved, events[1].Kind)
	assert.Equal(t, result.Link.ID, events[0].LinkID)
	assert.Equal(t, result.Link.ID, events[1].LinkID)
}

// failingEventLog always refuses appends.
type failingEventLog struct{}

func (failingEventLog) Append(ctx context.Context, event *domain.LinkEvent) error {
	return errors.New("event log unavailable")
}

func (failingEventLog) List(ctx context.Context) ([]*domain.LinkEvent, error) {
	return nil, nil
}

func TestEventAppendFailureDoesNotFailCreate(t *testing.T) {
	d := dao.New(kv.NewMemoryStore(), "test:")
	links := dao.NewLinkRepository(d)
	entities := dao.NewEntityRepository(d)
	svc := NewLinkService(links, entities, failingEventLog{}, Config{}, nil)

	ctx := context.Background()
	require.NoError(t, entities.(entityWriter).Put(ctx, &domain.Task{ID: "t1"}))
	require.NoError(t, entities.(entityWriter).Put(ctx, &domain.Item{ID: "i1"}))

	result, err := svc.Create(ctx, &NewLink{
		Type:   domain.LinkTaskCreatedItem,
		Source: taskRef("t1"),
		Target: itemRef("i1"),
	})
	require.NoError(t, err)
	assert.True(t, result.Created)

	require.NoError(t, svc.Remove(ctx, result.Link.ID))
}

func TestAllEnumeratesEveryLink(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t,
		&domain.Task{ID: "t1"},
		&domain.Item{ID: "i1"},
		&domain.Item{ID: "i2"},
	)

	for _, target := range []domain.EntityRef{itemRef("i1"), itemRef("i2")} {
		_, err := f.svc.Create(ctx, &NewLink{
			Type:   domain.LinkTaskCreatedItem,
			Source: taskRef("t1"),
			Target: target,
		})
		require.NoError(t, err)
	}

	all, err := f.svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
