package handler

import "time"

// --- Request types ---

type resumeContentRequest struct {
	CurrentPosition string   `json:"current_position" validate:"required,max=255"`
	DesiredPosition string   `json:"desired_position" validate:"required,max=255"`
	Skills          []string `json:"skills" validate:"max=50,dive,max=100"`
	Experience      int      `json:"experience" validate:"gte=0,lte=100"`
	Bio             string   `json:"bio" validate:"max=10000"`
}

type createResumeRequest struct {
	Content resumeContentRequest `json:"content" validate:"required"`
}

type resumeUpdateRequest struct {
	CurrentPosition *string   `json:"current_position" validate:"omitempty,min=1,max=255"`
	DesiredPosition *string   `json:"desired_position" validate:"omitempty,min=1,max=255"`
	Skills          *[]string `json:"skills" validate:"omitempty,max=50,dive,max=100"`
	Experience      *int      `json:"experience" validate:"omitempty,gte=0,lte=100"`
	Bio             *string   `json:"bio" validate:"omitempty,max=10000"`
}

type updateResumeRequest struct {
	ID      int64               `json:"id" validate:"required,gt=0"`
	Content resumeUpdateRequest `json:"content"`
}

type resumeFiltersForApplicant struct {
	States []string `json:"states" validate:"omitempty,min=1,dive,oneof=DRAFT PUBLISHED HIDDEN"`
	IDs    []int64  `json:"ids" validate:"omitempty,min=1,dive,gt=0"`
}

type listResumesForApplicantRequest struct {
	Filters *resumeFiltersForApplicant `json:"filters"`
}

// --- Response types ---

type resumeForApplicantResponse struct {
	ID              int64      `json:"id"`
	State           string     `json:"state"`
	CurrentPosition string     `json:"current_position"`
	DesiredPosition string     `json:"desired_position"`
	Skills          []string   `json:"skills"`
	Experience      int        `json:"experience"`
	Bio             string     `json:"bio"`
	CreatedAt       time.Time  `json:"created_at"`
	PublishedAt     *time.Time `json:"published_at"`
}

type resumeForManagerResponse struct {
	ID              int64      `json:"id"`
	OwnerID         int64      `json:"owner_id"`
	OwnerFullName   string     `json:"owner_full_name"`
	DepartmentID    int64      `json:"department_id"`
	DepartmentName  string     `json:"department_name"`
	CurrentPosition string     `json:"current_position"`
	DesiredPosition string     `json:"desired_position"`
	Skills          []string   `json:"skills"`
	Experience      int        `json:"experience"`
	Bio             string     `json:"bio"`
	PublishedAt     *time.Time `json:"published_at"`
}
