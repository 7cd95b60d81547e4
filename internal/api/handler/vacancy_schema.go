package handler

import (
	"time"

	"github.com/hrprojector/jobboard/internal/core/pagination"
)

// --- Request types ---

type vacancyData struct {
	Position    string `json:"position" validate:"required,max=255"`
	Experience  *int   `json:"experience" validate:"omitempty,gte=0,lte=100"`
	Description string `json:"description" validate:"required,max=10000"`
}

type createVacancyRequest struct {
	VacancyData vacancyData `json:"vacancy_data" validate:"required"`
}

type vacancyUpdateData struct {
	Position    *string `json:"position" validate:"omitempty,min=1,max=255"`
	Experience  *int    `json:"experience" validate:"omitempty,gte=0,lte=100"`
	Description *string `json:"description" validate:"omitempty,min=1,max=10000"`
}

type updateVacancyRequest struct {
	ID      int64             `json:"id" validate:"required,gt=0"`
	NewData vacancyUpdateData `json:"new_data"`
}

// vacancyFilters holds the filters shared by manager and applicant lists.
// Dates are calendar dates.
type vacancyFilters struct {
	Position      *string `json:"position" validate:"omitempty,min=3"`
	ExperienceGTE *int    `json:"experience_gte" validate:"omitempty,gte=0"`
	ExperienceLTE *int    `json:"experience_lte" validate:"omitempty,gte=1"`
	PublishedGTE  *string `json:"published_gte" validate:"omitempty,datetime=2006-01-02"`
	PublishedLTE  *string `json:"published_lte" validate:"omitempty,datetime=2006-01-02"`
}

type vacancyFiltersForManager struct {
	States []string `json:"states" validate:"omitempty,min=1,dive,oneof=DRAFT PUBLISHED HIDDEN"`
	vacancyFilters
}

type vacancyFiltersForApplicant struct {
	DepartmentIDs []int64 `json:"department_ids" validate:"omitempty,min=1,dive,gt=0"`
	vacancyFilters
}

type listVacanciesForManagerRequest struct {
	pagination.Params
	Filters *vacancyFiltersForManager `json:"filters"`
}

type listVacanciesForApplicantRequest struct {
	pagination.Params
	Filters *vacancyFiltersForApplicant `json:"filters"`
}

type respondVacancyRequest struct {
	VacancyID int64   `json:"vacancy_id" validate:"required,gt=0"`
	ResumeID  int64   `json:"resume_id" validate:"required,gt=0"`
	Message   *string `json:"message" validate:"omitempty,max=5000"`
}

type listResponsesRequest struct {
	pagination.Params
}

// --- Response types ---

type vacancyForManagerResponse struct {
	ID          int64        `json:"id"`
	State       string       `json:"state"`
	Creator     userResponse `json:"creator"`
	Position    string       `json:"position"`
	Experience  *int         `json:"experience"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
	PublishedAt *time.Time   `json:"published_at"`
}

type shortVacancyForManagerResponse struct {
	ID              int64      `json:"id"`
	State           string     `json:"state"`
	CreatorID       int64      `json:"creator_id"`
	CreatorFullName string     `json:"creator_full_name"`
	Position        string     `json:"position"`
	Experience      *int       `json:"experience"`
	PublishedAt     *time.Time `json:"published_at"`
}

type shortVacancyForApplicantResponse struct {
	ID              int64      `json:"id"`
	CreatorID       int64      `json:"creator_id"`
	CreatorFullName string     `json:"creator_full_name"`
	DepartmentID    int64      `json:"department_id"`
	DepartmentName  string     `json:"department_name"`
	Position        string     `json:"position"`
	Experience      *int       `json:"experience"`
	PublishedAt     *time.Time `json:"published_at"`
}

type vacancyForApplicantResponse struct {
	ID              int64      `json:"id"`
	CreatorID       int64      `json:"creator_id"`
	CreatorFullName string     `json:"creator_full_name"`
	CreatorContact  string     `json:"creator_contact"`
	DepartmentID    int64      `json:"department_id"`
	DepartmentName  string     `json:"department_name"`
	Position        string     `json:"position"`
	Experience      *int       `json:"experience"`
	Description     string     `json:"description"`
	PublishedAt     *time.Time `json:"published_at"`
}
