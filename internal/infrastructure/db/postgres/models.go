package postgres

import (
	"time"

	"github.com/hrprojector/jobboard/internal/core/domain"
)

type departmentRow struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

func (departmentRow) TableName() string { return "departments" }

type userRow struct {
	ID           int64 `gorm:"primaryKey"`
	Email        string
	FirstName    string
	LastName     string
	Patronymic   string
	PasswordHash string
	Role         string
	DepartmentID int64
	Department   *departmentRow `gorm:"foreignKey:DepartmentID"`
	CreatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

type skillRow struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

func (skillRow) TableName() string { return "skills" }

type resumeSkillRow struct {
	ResumeID int64 `gorm:"primaryKey"`
	SkillID  int64 `gorm:"primaryKey"`
	Position int
}

func (resumeSkillRow) TableName() string { return "resume_skills" }

type resumeRow struct {
	ID              int64 `gorm:"primaryKey"`
	OwnerID         int64
	Owner           *userRow `gorm:"foreignKey:OwnerID"`
	State           string
	CurrentPosition string
	DesiredPosition string
	Experience      int
	Bio             string
	CreatedAt       time.Time
	PublishedAt     *time.Time
}

func (resumeRow) TableName() string { return "resumes" }

type vacancyRow struct {
	ID          int64 `gorm:"primaryKey"`
	CreatorID   int64
	Creator     *userRow `gorm:"foreignKey:CreatorID"`
	State       string
	Position    string
	Experience  *int
	Description string
	CreatedAt   time.Time
	PublishedAt *time.Time
}

func (vacancyRow) TableName() string { return "vacancies" }

type vacancyResponseRow struct {
	ID               int64 `gorm:"primaryKey"`
	VacancyID        int64
	Vacancy          *vacancyRow `gorm:"foreignKey:VacancyID"`
	ResumeID         int64
	Resume           *resumeRow `gorm:"foreignKey:ResumeID"`
	ApplicantMessage *string
	CreatedAt        time.Time
}

func (vacancyResponseRow) TableName() string { return "vacancy_responses" }

// ---------------------------------------------------------------------------
// Row <-> domain mapping
// ---------------------------------------------------------------------------

func (r *departmentRow) toDomain() *domain.Department {
	if r == nil {
		return nil
	}
	return &domain.Department{ID: r.ID, Name: r.Name}
}

func (r *userRow) toDomain() *domain.User {
	if r == nil {
		return nil
	}
	return &domain.User{
		ID:           r.ID,
		Email:        r.Email,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Patronymic:   r.Patronymic,
		PasswordHash: r.PasswordHash,
		Role:         domain.Role(r.Role),
		DepartmentID: r.DepartmentID,
		Department:   r.Department.toDomain(),
		CreatedAt:    r.CreatedAt,
	}
}

func newUserRow(u *domain.User) *userRow {
	return &userRow{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Patronymic:   u.Patronymic,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		DepartmentID: u.DepartmentID,
		CreatedAt:    u.CreatedAt,
	}
}

func (r *resumeRow) toDomain(skills []string) *domain.Resume {
	if skills == nil {
		skills = []string{}
	}
	return &domain.Resume{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		Owner:           r.Owner.toDomain(),
		CurrentPosition: r.CurrentPosition,
		DesiredPosition: r.DesiredPosition,
		Experience:      r.Experience,
		Bio:             r.Bio,
		Skills:          skills,
		Lifecycle: domain.Lifecycle{
			State:       domain.State(r.State),
			CreatedAt:   r.CreatedAt,
			PublishedAt: r.PublishedAt,
		},
	}
}

func newResumeRow(r *domain.Resume) *resumeRow {
	return &resumeRow{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		State:           string(r.State),
		CurrentPosition: r.CurrentPosition,
		DesiredPosition: r.DesiredPosition,
		Experience:      r.Experience,
		Bio:             r.Bio,
		CreatedAt:       r.CreatedAt,
		PublishedAt:     r.PublishedAt,
	}
}

func (r *vacancyRow) toDomain() *domain.Vacancy {
	if r == nil {
		return nil
	}
	return &domain.Vacancy{
		ID:          r.ID,
		CreatorID:   r.CreatorID,
		Creator:     r.Creator.toDomain(),
		Position:    r.Position,
		Experience:  r.Experience,
		Description: r.Description,
		Lifecycle: domain.Lifecycle{
			State:       domain.State(r.State),
			CreatedAt:   r.CreatedAt,
			PublishedAt: r.PublishedAt,
		},
	}
}

func newVacancyRow(v *domain.Vacancy) *vacancyRow {
	return &vacancyRow{
		ID:          v.ID,
		CreatorID:   v.CreatorID,
		State:       string(v.State),
		Position:    v.Position,
		Experience:  v.Experience,
		Description: v.Description,
		CreatedAt:   v.CreatedAt,
		PublishedAt: v.PublishedAt,
	}
}

func statesToStrings(states []domain.State) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = string(s)
	}
	return out
}
