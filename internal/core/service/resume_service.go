package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/pagination"
	"github.com/hrprojector/jobboard/internal/core/ports"
)

// ResumeService implements the applicant side of the resume lifecycle and
// the manager search over published resumes.
//
// A resume owned by someone else is reported as domain.ErrResumeNotFound, the
// same as a missing one, so callers cannot discover other users' rows.
type ResumeService struct {
	tx      ports.Transactor
	resumes ports.ResumeRepository
	skills  ports.SkillRepository
	engine  *lifecycleEngine[*domain.Resume]
	log     zerolog.Logger
}

func NewResumeService(
	tx ports.Transactor,
	resumes ports.ResumeRepository,
	skills ports.SkillRepository,
	audit ports.AuditSink,
	log zerolog.Logger,
) *ResumeService {
	return &ResumeService{
		tx:      tx,
		resumes: resumes,
		skills:  skills,
		engine:  newLifecycleEngine[*domain.Resume](tx, resumes, domain.ResumeResource, audit, log),
		log:     log,
	}
}

// Create stores a DRAFT resume and interns its skills in the same transaction.
func (s *ResumeService) Create(ctx context.Context, ownerID int64, content domain.ResumeContent) (*domain.Resume, error) {
	resume := domain.NewResume(ownerID, content, s.engine.now())

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.skills.Intern(ctx, resume.Skills); err != nil {
			return fmt.Errorf("intern skills: %w", err)
		}
		return s.resumes.Create(ctx, resume)
	})
	if err != nil {
		return nil, fmt.Errorf("create resume: %w", err)
	}

	s.engine.created(resume, ownerID)
	s.log.Debug().
		Int64("resume_id", resume.ID).
		Int64("owner_id", ownerID).
		Int("skills", len(resume.Skills)).
		Msg("resume created")
	return resume, nil
}

func (s *ResumeService) Get(ctx context.Context, ownerID, id int64) (*domain.Resume, error) {
	resume, err := s.resumes.FindByOwner(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("get resume: %w", err)
	}
	return resume, nil
}

func (s *ResumeService) List(ctx context.Context, ownerID int64, filter ports.ResumeOwnerFilter) ([]*domain.Resume, error) {
	resumes, err := s.resumes.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	return resumes, nil
}

// Update applies the present fields of update to a DRAFT resume. New skill
// names are interned before the links are rewritten. An empty update writes
// nothing and records no event, but still reports NotFound and WrongState.
func (s *ResumeService) Update(ctx context.Context, ownerID, id int64, update domain.ResumeUpdate) (*domain.Resume, error) {
	if update.Empty() {
		resume, err := s.resumes.FindByOwner(ctx, ownerID, id)
		if err != nil {
			return nil, fmt.Errorf("update resume: %w", err)
		}
		if err := resume.LifecycleState().EnsureEditable(); err != nil {
			return nil, fmt.Errorf("update resume: %w", s.engine.stateError(err))
		}
		return resume, nil
	}

	return s.engine.edit(ctx, ownerID, id, func(ctx context.Context, r *domain.Resume) error {
		update.Apply(r)
		if update.Skills == nil {
			return nil
		}
		if err := s.skills.Intern(ctx, r.Skills); err != nil {
			return fmt.Errorf("intern skills: %w", err)
		}
		return nil
	})
}

// Publish requires DRAFT. An owned resume in another state yields
// domain.ErrResumeWrongState.
func (s *ResumeService) Publish(ctx context.Context, ownerID, id int64) (*domain.Resume, error) {
	return s.engine.publish(ctx, ownerID, id)
}

func (s *ResumeService) Hide(ctx context.Context, ownerID, id int64) (*domain.Resume, error) {
	return s.engine.hide(ctx, ownerID, id)
}

func (s *ResumeService) ListPublished(_ context.Context, filter ports.ResumeFilter) (pagination.Query[*domain.Resume], error) {
	return s.resumes.ListPublished(filter), nil
}
