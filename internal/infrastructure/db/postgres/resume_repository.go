package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/pagination"
	"github.com/hrprojector/jobboard/internal/core/ports"
)

var _ ports.ResumeRepository = (*ResumeRepository)(nil)

type ResumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

// Create stores the resume and links its skills. It must run inside a
// transaction that already interned the skill names.
func (r *ResumeRepository) Create(ctx context.Context, res *domain.Resume) error {
	row := newResumeRow(res)
	if err := conn(ctx, r.db).Omit("Owner").Create(row).Error; err != nil {
		return fmt.Errorf("insert resume: %w", err)
	}
	res.ID = row.ID
	return linkSkills(ctx, r.db, res.ID, res.Skills)
}

func (r *ResumeRepository) FindByOwner(ctx context.Context, ownerID, id int64) (*domain.Resume, error) {
	return r.take(ctx, conn(ctx, r.db), ownerID, id)
}

func (r *ResumeRepository) Lock(ctx context.Context, ownerID, id int64) (*domain.Resume, error) {
	return r.take(ctx, conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), ownerID, id)
}

func (r *ResumeRepository) take(ctx context.Context, q *gorm.DB, ownerID, id int64) (*domain.Resume, error) {
	var row resumeRow
	err := q.Where("id = ? AND owner_id = ?", id, ownerID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrResumeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find resume: %w", err)
	}
	out, err := withSkills(ctx, r.db, []resumeRow{row})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (r *ResumeRepository) SaveLifecycle(ctx context.Context, res *domain.Resume) error {
	err := conn(ctx, r.db).Model(&resumeRow{}).Where("id = ?", res.ID).
		Updates(map[string]any{
			"state":        string(res.State),
			"published_at": res.PublishedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("save resume state: %w", err)
	}
	return nil
}

func (r *ResumeRepository) SaveContent(ctx context.Context, res *domain.Resume) error {
	err := conn(ctx, r.db).Model(&resumeRow{}).Where("id = ?", res.ID).
		Updates(map[string]any{
			"current_position": res.CurrentPosition,
			"desired_position": res.DesiredPosition,
			"experience":       res.Experience,
			"bio":              res.Bio,
		}).Error
	if err != nil {
		return fmt.Errorf("save resume: %w", err)
	}
	return linkSkills(ctx, r.db, res.ID, res.Skills)
}

func (r *ResumeRepository) ListByOwner(ctx context.Context, ownerID int64, filter ports.ResumeOwnerFilter) ([]*domain.Resume, error) {
	q := conn(ctx, r.db).Where("owner_id = ?", ownerID)
	if len(filter.States) > 0 {
		q = q.Where("state IN ?", statesToStrings(filter.States))
	}
	if len(filter.IDs) > 0 {
		q = q.Where("id IN ?", filter.IDs)
	}
	var rows []resumeRow
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	return withSkills(ctx, r.db, rows)
}

func (r *ResumeRepository) ListPublished(filter ports.ResumeFilter) pagination.Query[*domain.Resume] {
	q := r.db.Model(&resumeRow{}).
		Joins("JOIN users AS owners ON owners.id = resumes.owner_id").
		Preload("Owner.Department").
		Where("resumes.state = ?", string(domain.StatePublished))

	if filter.FullName != "" {
		q = q.Where(fmt.Sprintf(fullNameMatch, "owners"), filter.FullName)
	}
	if len(filter.DepartmentIDs) > 0 {
		q = q.Where("owners.department_id IN ?", filter.DepartmentIDs)
	}
	if filter.CurrentPosition != "" {
		q = q.Where("resumes.current_position ILIKE ?", containsPattern(filter.CurrentPosition))
	}
	if filter.DesiredPosition != "" {
		q = q.Where("resumes.desired_position ILIKE ?", containsPattern(filter.DesiredPosition))
	}
	if filter.ExperienceGTE != nil {
		q = q.Where("resumes.experience >= ?", *filter.ExperienceGTE)
	}

	q = q.Order("resumes.published_at DESC").Order("resumes.id DESC")
	return newQuery(q, func(ctx context.Context, rows []resumeRow) ([]*domain.Resume, error) {
		return withSkills(ctx, r.db, rows)
	})
}
