package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/pagination"
	"github.com/hrprojector/jobboard/internal/core/ports"
)

var _ ports.VacancyResponseRepository = (*VacancyResponseRepository)(nil)

type VacancyResponseRepository struct {
	db *gorm.DB
}

func NewVacancyResponseRepository(db *gorm.DB) *VacancyResponseRepository {
	return &VacancyResponseRepository{db: db}
}

// Create relies on the (vacancy_id, resume_id) unique constraint, so a pair
// raced past Exists still fails as a duplicate.
func (r *VacancyResponseRepository) Create(ctx context.Context, vr *domain.VacancyResponse) error {
	row := &vacancyResponseRow{
		VacancyID:        vr.VacancyID,
		ResumeID:         vr.ResumeID,
		ApplicantMessage: vr.ApplicantMessage,
		CreatedAt:        vr.CreatedAt,
	}
	if err := conn(ctx, r.db).Omit("Vacancy", "Resume").Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrVacancyResponseAlreadyExists
		}
		return fmt.Errorf("insert vacancy response: %w", err)
	}
	vr.ID = row.ID
	vr.CreatedAt = row.CreatedAt
	return nil
}

func (r *VacancyResponseRepository) Exists(ctx context.Context, vacancyID, resumeID int64) (bool, error) {
	var n int64
	err := conn(ctx, r.db).Model(&vacancyResponseRow{}).
		Where("vacancy_id = ? AND resume_id = ?", vacancyID, resumeID).
		Limit(1).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check vacancy response: %w", err)
	}
	return n > 0, nil
}

func (r *VacancyResponseRepository) ListInDepartment(departmentID int64) pagination.Query[*domain.VacancyResponse] {
	q := r.db.Model(&vacancyResponseRow{}).
		Joins("JOIN vacancies ON vacancies.id = vacancy_responses.vacancy_id").
		Joins(joinCreators).
		Preload("Vacancy.Creator.Department").
		Preload("Resume.Owner.Department").
		Where("creators.department_id = ?", departmentID).
		Order("vacancy_responses.id DESC")

	return newQuery(q, func(ctx context.Context, rows []vacancyResponseRow) ([]*domain.VacancyResponse, error) {
		resumes := make([]resumeRow, 0, len(rows))
		for i := range rows {
			if rows[i].Resume != nil {
				resumes = append(resumes, *rows[i].Resume)
			}
		}
		loaded, err := withSkills(ctx, r.db, resumes)
		if err != nil {
			return nil, err
		}
		byID := make(map[int64]*domain.Resume, len(loaded))
		for _, res := range loaded {
			byID[res.ID] = res
		}

		out := make([]*domain.VacancyResponse, len(rows))
		for i := range rows {
			out[i] = &domain.VacancyResponse{
				ID:               rows[i].ID,
				VacancyID:        rows[i].VacancyID,
				ResumeID:         rows[i].ResumeID,
				Vacancy:          rows[i].Vacancy.toDomain(),
				Resume:           byID[rows[i].ResumeID],
				ApplicantMessage: rows[i].ApplicantMessage,
				CreatedAt:        rows[i].CreatedAt,
			}
		}
		return out, nil
	})
}
