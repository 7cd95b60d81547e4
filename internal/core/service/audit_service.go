package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) for audit events.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, event domain.LifecycleEvent) (bool, error)
	Mark(ctx context.Context, event domain.LifecycleEvent) error
}

// AuditService writes lifecycle events to the audit store. It runs on the
// dispatcher workers, never on the request path.
type AuditService struct {
	repo  ports.AuditRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewAuditService returns an AuditService. dedup may be nil.
func NewAuditService(repo ports.AuditRepository, dedup DedupChecker, log zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, dedup: dedup, log: log}
}

// Record stores event once. A retried event that was already stored is skipped.
func (s *AuditService) Record(ctx context.Context, event domain.LifecycleEvent) error {
	if s.dedup != nil {
		isDup, err := s.dedup.IsDuplicate(ctx, event)
		if err != nil {
			s.log.Warn().Err(err).Str("key", event.Key()).Msg("dedup check failed, recording anyway")
		} else if isDup {
			s.log.Debug().Str("key", event.Key()).Str("action", string(event.Action)).Msg("duplicate audit event skipped")
			return nil
		}
	}

	if err := s.repo.InsertEvent(ctx, &event); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}

	if s.dedup != nil {
		if err := s.dedup.Mark(ctx, event); err != nil {
			s.log.Warn().Err(err).Str("key", event.Key()).Msg("failed to set dedup key")
		}
	}
	return nil
}
