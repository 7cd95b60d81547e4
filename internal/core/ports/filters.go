package ports

import (
	"time"

	"github.com/hrprojector/jobboard/internal/core/domain"
)

// ResumeOwnerFilter narrows an applicant's own resume list.
type ResumeOwnerFilter struct {
	States []domain.State
	IDs    []int64
}

// ResumeFilter narrows the published resumes visible to managers.
type ResumeFilter struct {
	FullName        string // full-text search over last, first and patronymic names
	DepartmentIDs   []int64
	CurrentPosition string // case-insensitive substring
	DesiredPosition string // case-insensitive substring
	ExperienceGTE   *int
}

// VacancyFilter narrows vacancy lists. States only applies to manager lists;
// applicants always see PUBLISHED vacancies.
type VacancyFilter struct {
	States        []domain.State
	DepartmentIDs []int64
	Position      string // case-insensitive substring
	ExperienceGTE *int
	ExperienceLTE *int
	PublishedGTE  *time.Time // compared by date
	PublishedLTE  *time.Time // compared by date
}

// ApplicantFilter narrows the applicant directory.
type ApplicantFilter struct {
	Email         string // case-insensitive substring
	FullName      string
	DepartmentIDs []int64
}
