package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/ports"
)

var _ ports.SkillRepository = (*SkillRepository)(nil)

type SkillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

// Intern inserts the names that are not stored yet. Concurrent interning of
// the same name is resolved by the unique index.
func (r *SkillRepository) Intern(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	rows := make([]skillRow, len(names))
	for i, n := range names {
		rows[i] = skillRow{Name: n}
	}
	err := conn(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("intern skills: %w", err)
	}
	return nil
}

// linkSkills replaces the skill set of a resume. names must already be
// interned; the array position keeps the caller's order.
func linkSkills(ctx context.Context, db *gorm.DB, resumeID int64, names []string) error {
	tx := conn(ctx, db)
	if err := tx.Where("resume_id = ?", resumeID).Delete(&resumeSkillRow{}).Error; err != nil {
		return fmt.Errorf("unlink skills: %w", err)
	}
	if len(names) == 0 {
		return nil
	}
	arr := pq.Array(names)
	err := tx.Exec(`INSERT INTO resume_skills (resume_id, skill_id, position)
SELECT ?, skills.id, array_position(?::text[], skills.name)
FROM skills WHERE skills.name = ANY(?::text[])`, resumeID, arr, arr).Error
	if err != nil {
		return fmt.Errorf("link skills: %w", err)
	}
	return nil
}

// skillLink is one row of the resume_skills join.
type skillLink struct {
	ResumeID int64
	Name     string
}

// loadSkills returns skill names per resume id in link order.
func loadSkills(ctx context.Context, db *gorm.DB, resumeIDs []int64) (map[int64][]string, error) {
	out := make(map[int64][]string, len(resumeIDs))
	if len(resumeIDs) == 0 {
		return out, nil
	}
	var links []skillLink
	err := conn(ctx, db).Table("resume_skills").
		Select("resume_skills.resume_id, skills.name").
		Joins("JOIN skills ON skills.id = resume_skills.skill_id").
		Where("resume_skills.resume_id IN ?", resumeIDs).
		Order("resume_skills.resume_id").Order("resume_skills.position").
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	for _, l := range links {
		out[l.ResumeID] = append(out[l.ResumeID], l.Name)
	}
	return out, nil
}

// withSkills maps rows to resumes carrying their skills.
func withSkills(ctx context.Context, db *gorm.DB, rows []resumeRow) ([]*domain.Resume, error) {
	ids := make([]int64, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	skills, err := loadSkills(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Resume, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain(skills[rows[i].ID])
	}
	return out, nil
}
