package handler

import "time"

// --- Shared request types ---

type idRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

// --- Shared response types ---

type departmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type userResponse struct {
	ID         int64              `json:"id"`
	Email      string             `json:"email"`
	FirstName  string             `json:"first_name"`
	LastName   string             `json:"last_name"`
	Patronymic *string            `json:"patronymic"`
	Department departmentResponse `json:"department"`
	Role       string             `json:"role"`
}

type shortApplicantResponse struct {
	ID         int64              `json:"id"`
	Email      string             `json:"email"`
	FullName   string             `json:"full_name"`
	Department departmentResponse `json:"department"`
}

type vacancyResponseResponse struct {
	ID                int64     `json:"id"`
	VacancyID         int64     `json:"vacancy_id"`
	VacancyPosition   string    `json:"vacancy_position"`
	ResumeID          int64     `json:"resume_id"`
	ApplicantID       int64     `json:"applicant_id"`
	ApplicantFullName string    `json:"applicant_full_name,omitempty"`
	ApplicantContact  string    `json:"applicant_contact,omitempty"`
	Message           *string   `json:"message"`
	CreatedAt         time.Time `json:"created_at"`
}
