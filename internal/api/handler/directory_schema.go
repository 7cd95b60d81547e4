package handler

import "github.com/hrprojector/jobboard/internal/core/pagination"

type applicantFilters struct {
	Email         *string `json:"email" validate:"omitempty,min=1"`
	FullName      *string `json:"full_name" validate:"omitempty,min=1"`
	DepartmentIDs []int64 `json:"department_ids" validate:"omitempty,min=1,dive,gt=0"`
}

type listApplicantsRequest struct {
	pagination.Params
	Filters *applicantFilters `json:"filters"`
}

type resumeFiltersForManager struct {
	FullName        *string `json:"full_name" validate:"omitempty,min=1"`
	DepartmentIDs   []int64 `json:"department_ids" validate:"omitempty,min=1,dive,gt=0"`
	CurrentPosition *string `json:"current_position" validate:"omitempty,min=3"`
	DesiredPosition *string `json:"desired_position" validate:"omitempty,min=3"`
	ExperienceGTE   *int    `json:"experience_gte" validate:"omitempty,gte=0"`
}

type listResumesForManagerRequest struct {
	pagination.Params
	Filters *resumeFiltersForManager `json:"filters"`
}
