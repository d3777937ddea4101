package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quartermaster-app/linkgraph/internal/domain"
	"github.com/quartermaster-app/linkgraph/internal/metrics"
	"github.com/quartermaster-app/linkgraph/pkg/code"
	"github.com/quartermaster-app/linkgraph/pkg/logger"
	"github.com/quartermaster-app/linkgraph/pkg/retry"
	"github.com/quartermaster-app/linkgraph/pkg/timex"
)

// NewLink is the caller-supplied shape of a link to create.
type NewLink struct {
	Type     domain.LinkType
	Source   domain.EntityRef
	Target   domain.EntityRef
	Metadata map[string]string
}

// CreateResult is the outcome of a create. Duplicates are soft: the link
// is simply not created, Reason says why, and no error is returned. Errors
// are reserved for structural and referential failures.
type CreateResult struct {
	Created  bool
	Link     *domain.Link
	Reason   string
	Warnings []string
}

// LinkService defines the link layer's operations, its only caller being
// the workflow layer of the host application.
type LinkService interface {
	// Create validates and persists a link.
	Create(ctx context.Context, params *NewLink) (*CreateResult, error)

	// LinksFor returns all links touching the entity, from either end.
	LinksFor(ctx context.Context, ref domain.EntityRef) ([]*domain.Link, error)

	// Remove deletes a link by id. Unknown ids are a no-op.
	Remove(ctx context.Context, id string) error

	// All enumerates every stored link. Administrative use.
	All(ctx context.Context) ([]*domain.Link, error)
}

// Config carries the link service tuning knobs.
type Config struct {
	// ExistenceAttempts bounds the existence validator's retries
	ExistenceAttempts int
	// ExistenceDelay is the fixed delay between existence attempts
	ExistenceDelay time.Duration
	// Sleep overrides the retry sleeper, for tests
	Sleep retry.SleepFunc
}

// linkService implements LinkService.
//
// Create is not atomic: validation reads and the subsequent writes are
// separate round trips with no transaction around them, so two concurrent
// callers creating the same logical edge can both pass the duplicate check.
// This mirrors the single-writer workflow layer above; the read side
// tolerates the resulting drift instead of locking against it.
type linkService struct {
	linkRepo   domain.LinkRepository
	entityRepo domain.EntityRepository
	eventRepo  domain.EventLogRepository
	existence  *existenceValidator
	logger     *zap.Logger
}

// NewLinkService creates a LinkService instance.
func NewLinkService(linkRepo domain.LinkRepository, entityRepo domain.EntityRepository, eventRepo domain.EventLogRepository, cfg Config, lg *zap.Logger) LinkService {
	if cfg.ExistenceAttempts <= 0 {
		cfg.ExistenceAttempts = 5
	}
	if cfg.ExistenceDelay <= 0 {
		cfg.ExistenceDelay = 120 * time.Millisecond
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &linkService{
		linkRepo:   linkRepo,
		entityRepo: entityRepo,
		eventRepo:  eventRepo,
		existence:  newExistenceValidator(entityRepo, cfg.ExistenceAttempts, cfg.ExistenceDelay, cfg.Sleep, lg),
		logger:     lg,
	}
}

func (s *linkService) Create(ctx context.Context, params *NewLink) (*CreateResult, error) {
	// Structural tier: self-link, then the compatibility matrix.
	if params.Source.Equal(params.Target) {
		metrics.CreateFailedTotal.WithLabelValues(metrics.StageCompatibility).Inc()
		return nil, code.ErrorLinkSelf.WithDetails(
			fmt.Sprintf("both endpoints are %s", params.Source))
	}
	if err := checkCompatible(params.Type, params.Source.Type, params.Target.Type); err != nil {
		metrics.CreateFailedTotal.WithLabelValues(metrics.StageCompatibility).Inc()
		return nil, err
	}

	// Referential tier: both endpoints must be visible, with bounded
	// retry to absorb eventual-consistency lag.
	for _, ref := range []domain.EntityRef{params.Source, params.Target} {
		ok, err := s.existence.Exists(ctx, ref)
		if err != nil {
			return nil, err
		}
		if !ok {
			metrics.CreateFailedTotal.WithLabelValues(metrics.StageExistence).Inc()
			return nil, code.ErrorLinkEndpointMissing.WithDetails(
				fmt.Sprintf("entity %s is not visible", ref))
		}
	}

	// Family exclusivity: the canonical and reverse phrasings of one
	// relationship family may not coexist between the same two entities,
	// regardless of which phrasing arrived first.
	if counterpart, ok := familyCounterpart(params.Type); ok {
		existing, err := s.findFamilyEdge(ctx, counterpart, params.Source, params.Target)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			metrics.CreateRejectedTotal.WithLabelValues(metrics.ReasonCanonicalDuplicate).Inc()
			reason := fmt.Sprintf(
				"a %q link already connects %s and %s; %q and %q are the two phrasings of one relationship family and links are unidirectional by convention, at most one edge per pair",
				existing.Type, params.Source, params.Target, existing.Type, params.Type)
			s.logger.Info("link creation skipped",
				zap.String(logger.FieldLinkType, string(params.Type)),
				zap.String(logger.FieldReason, reason),
			)
			return &CreateResult{Created: false, Reason: reason}, nil
		}
	}

	link := &domain.Link{
		ID:        uuid.NewString(),
		Type:      params.Type,
		Source:    params.Source,
		Target:    params.Target,
		CreatedAt: timex.Now(),
		Metadata:  params.Metadata,
	}

	// Business-rule tier: warnings only, never blocks the create.
	warnings, err := checkBusinessRules(ctx, s.entityRepo, link)
	if err != nil {
		return nil, err
	}
	for _, warning := range warnings {
		metrics.RuleWarningsTotal.WithLabelValues(string(link.Type)).Inc()
		s.logger.Warn("business rule mismatch",
			zap.String(logger.FieldLinkID, link.ID),
			zap.String(logger.FieldLinkType, string(link.Type)),
			zap.String(logger.FieldReason, warning),
		)
	}

	// Exact-duplicate check and the writes live in the repository.
	created, err := s.linkRepo.Create(ctx, link)
	if err != nil {
		metrics.CreateFailedTotal.WithLabelValues(metrics.StageStore).Inc()
		return nil, err
	}
	if !created {
		metrics.CreateRejectedTotal.WithLabelValues(metrics.ReasonExactDuplicate).Inc()
		reason := fmt.Sprintf("a %q link from %s to %s already exists",
			link.Type, link.Source, link.Target)
		return &CreateResult{Created: false, Reason: reason, Warnings: warnings}, nil
	}

	metrics.LinksCreatedTotal.Inc()
	s.logger.Info("link created",
		zap.String(logger.FieldLinkID, link.ID),
		zap.String(logger.FieldLinkType, string(link.Type)),
		zap.String(logger.FieldSource, link.Source.String()),
		zap.String(logger.FieldTarget, link.Target.String()),
	)

	s.appendEvent(ctx, domain.EventCreated, link)

	return &CreateResult{Created: true, Link: link, Warnings: warnings}, nil
}

// familyCounterpart returns the other phrasing of t's relationship
// family: the canonical type when t is a reverse, the reverse type when t
// is a canonical with a declared reverse.
func familyCounterpart(t domain.LinkType) (domain.LinkType, bool) {
	if canonical, ok := t.CanonicalType(); ok {
		return canonical, true
	}
	return t.ReverseType()
}

// findFamilyEdge searches both endpoints' existing links for an edge of
// the given type connecting the same two entities, regardless of which
// side is source in that edge.
func (s *linkService) findFamilyEdge(ctx context.Context, t domain.LinkType, a, b domain.EntityRef) (*domain.Link, error) {
	for _, ref := range []domain.EntityRef{a, b} {
		links, err := s.linkRepo.ListForEntity(ctx, ref)
		if err != nil {
			return nil, err
		}
		for _, l := range links {
			if l.Type == t && l.Connects(a, b) {
				return l, nil
			}
		}
	}
	return nil, nil
}

func (s *linkService) LinksFor(ctx context.Context, ref domain.EntityRef) ([]*domain.Link, error) {
	return s.linkRepo.ListForEntity(ctx, ref)
}

func (s *linkService) Remove(ctx context.Context, id string) error {
	link, err := s.linkRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if link == nil {
		s.logger.Debug("remove of unknown link is a no-op",
			zap.String(logger.FieldLinkID, id))
		return nil
	}

	if err := s.linkRepo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.LinksRemovedTotal.Inc()
	s.logger.Info("link removed",
		zap.String(logger.FieldLinkID, id),
		zap.String(logger.FieldLinkType, string(link.Type)),
	)

	s.appendEvent(ctx, domain.EventRemoved, link)
	return nil
}

func (s *linkService) All(ctx context.Context) ([]*domain.Link, error) {
	return s.linkRepo.All(ctx)
}

// appendEvent writes to the audit trail. The trail is a best-effort side
// channel; failures are logged and never fail the enclosing operation.
func (s *linkService) appendEvent(ctx context.Context, kind domain.EventKind, link *domain.Link) {
	if err := s.eventRepo.Append(ctx, domain.NewLinkEvent(kind, link)); err != nil {
		s.logger.Warn("event log append failed",
			zap.String(logger.FieldLinkID, link.ID),
			zap.String(logger.FieldKind, string(kind)),
			zap.String(logger.FieldError, err.Error()),
		)
	}
}

// Ensure linkService implements LinkService interface
var _ LinkService = (*linkService)(nil)
