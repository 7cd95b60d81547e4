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

var _ ports.VacancyRepository = (*VacancyRepository)(nil)

const joinCreators = "JOIN users AS creators ON creators.id = vacancies.creator_id"

type VacancyRepository struct {
	db *gorm.DB
}

func NewVacancyRepository(db *gorm.DB) *VacancyRepository {
	return &VacancyRepository{db: db}
}

func (r *VacancyRepository) Create(ctx context.Context, v *domain.Vacancy) error {
	row := newVacancyRow(v)
	if err := conn(ctx, r.db).Omit("Creator").Create(row).Error; err != nil {
		return fmt.Errorf("insert vacancy: %w", err)
	}
	v.ID = row.ID
	creator, err := r.creator(ctx, v.CreatorID)
	if err != nil {
		return err
	}
	v.Creator = creator
	return nil
}

// Lock holds the row of a vacancy created by creatorID. The creator is
// loaded by a separate, unlocked query.
func (r *VacancyRepository) Lock(ctx context.Context, creatorID, id int64) (*domain.Vacancy, error) {
	var row vacancyRow
	err := conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND creator_id = ?", id, creatorID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrVacancyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock vacancy: %w", err)
	}
	v := row.toDomain()
	if v.Creator, err = r.creator(ctx, v.CreatorID); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *VacancyRepository) creator(ctx context.Context, id int64) (*domain.User, error) {
	var row userRow
	if err := conn(ctx, r.db).Preload("Department").Take(&row, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("load vacancy creator: %w", err)
	}
	return row.toDomain(), nil
}

func (r *VacancyRepository) SaveLifecycle(ctx context.Context, v *domain.Vacancy) error {
	err := conn(ctx, r.db).Model(&vacancyRow{}).Where("id = ?", v.ID).
		Updates(map[string]any{
			"state":        string(v.State),
			"published_at": v.PublishedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("save vacancy state: %w", err)
	}
	return nil
}

func (r *VacancyRepository) SaveContent(ctx context.Context, v *domain.Vacancy) error {
	err := conn(ctx, r.db).Model(&vacancyRow{}).Where("id = ?", v.ID).
		Updates(map[string]any{
			"position":    v.Position,
			"experience":  v.Experience,
			"description": v.Description,
		}).Error
	if err != nil {
		return fmt.Errorf("save vacancy: %w", err)
	}
	return nil
}

func (r *VacancyRepository) FindInDepartment(ctx context.Context, departmentID, id int64) (*domain.Vacancy, error) {
	return r.find(ctx, "vacancies.id = ? AND creators.department_id = ?", id, departmentID)
}

func (r *VacancyRepository) FindPublished(ctx context.Context, id int64) (*domain.Vacancy, error) {
	return r.find(ctx, "vacancies.id = ? AND vacancies.state = ?", id, string(domain.StatePublished))
}

func (r *VacancyRepository) find(ctx context.Context, cond string, args ...any) (*domain.Vacancy, error) {
	var row vacancyRow
	err := conn(ctx, r.db).Model(&vacancyRow{}).
		Joins(joinCreators).
		Preload("Creator.Department").
		Where(cond, args...).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrVacancyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find vacancy: %w", err)
	}
	return row.toDomain(), nil
}

func (r *VacancyRepository) ListInDepartment(departmentID int64, filter ports.VacancyFilter) pagination.Query[*domain.Vacancy] {
	q := r.base().Where("creators.department_id = ?", departmentID)
	if len(filter.States) > 0 {
		q = q.Where("vacancies.state IN ?", statesToStrings(filter.States))
	}
	return r.list(applyVacancyFilter(q, filter))
}

func (r *VacancyRepository) ListPublished(filter ports.VacancyFilter) pagination.Query[*domain.Vacancy] {
	q := r.base().Where("vacancies.state = ?", string(domain.StatePublished))
	if len(filter.DepartmentIDs) > 0 {
		q = q.Where("creators.department_id IN ?", filter.DepartmentIDs)
	}
	return r.list(applyVacancyFilter(q, filter))
}

func (r *VacancyRepository) base() *gorm.DB {
	return r.db.Model(&vacancyRow{}).Joins(joinCreators).Preload("Creator.Department")
}

func (r *VacancyRepository) list(q *gorm.DB) pagination.Query[*domain.Vacancy] {
	return newQuery(q.Order("vacancies.id DESC"), func(_ context.Context, rows []vacancyRow) ([]*domain.Vacancy, error) {
		out := make([]*domain.Vacancy, len(rows))
		for i := range rows {
			out[i] = rows[i].toDomain()
		}
		return out, nil
	})
}

// applyVacancyFilter adds the filters shared by manager and applicant lists.
// Published dates are compared by calendar date in UTC.
func applyVacancyFilter(q *gorm.DB, f ports.VacancyFilter) *gorm.DB {
	if f.Position != "" {
		q = q.Where("vacancies.position ILIKE ?", containsPattern(f.Position))
	}
	if f.ExperienceGTE != nil {
		q = q.Where("vacancies.experience >= ?", *f.ExperienceGTE)
	}
	if f.ExperienceLTE != nil {
		q = q.Where("vacancies.experience <= ?", *f.ExperienceLTE)
	}
	if f.PublishedGTE != nil {
		q = q.Where("CAST(vacancies.published_at AT TIME ZONE 'UTC' AS DATE) >= CAST(? AS DATE)", f.PublishedGTE.UTC().Format(dateLayout))
	}
	if f.PublishedLTE != nil {
		q = q.Where("CAST(vacancies.published_at AT TIME ZONE 'UTC' AS DATE) <= CAST(? AS DATE)", f.PublishedLTE.UTC().Format(dateLayout))
	}
	return q
}
