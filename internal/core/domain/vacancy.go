package domain

import "time"

// Vacancy is created by a manager.
type Vacancy struct {
	ID          int64
	CreatorID   int64
	Creator     *User
	Position    string
	Experience  *int
	Description string
	Lifecycle
}

func (v *Vacancy) ResourceID() int64          { return v.ID }
func (v *Vacancy) LifecycleState() *Lifecycle { return &v.Lifecycle }

// VacancyContent carries the fields supplied on creation.
type VacancyContent struct {
	Position    string
	Experience  *int
	Description string
}

// VacancyUpdate is a partial update: nil fields are left untouched.
type VacancyUpdate struct {
	Position    *string
	Experience  *int
	Description *string
}

// Apply copies every present field onto v.
func (u VacancyUpdate) Apply(v *Vacancy) {
	if u.Position != nil {
		v.Position = *u.Position
	}
	if u.Experience != nil {
		exp := *u.Experience
		v.Experience = &exp
	}
	if u.Description != nil {
		v.Description = *u.Description
	}
}

// NewVacancy builds a DRAFT vacancy for creator.
func NewVacancy(creatorID int64, c VacancyContent, now time.Time) *Vacancy {
	return &Vacancy{
		CreatorID:   creatorID,
		Position:    c.Position,
		Experience:  c.Experience,
		Description: c.Description,
		Lifecycle:   NewLifecycle(now),
	}
}

// VacancyResponse links a published resume to a published vacancy.
// At most one exists per (vacancy, resume) pair.
type VacancyResponse struct {
	ID               int64
	VacancyID        int64
	ResumeID         int64
	Vacancy          *Vacancy
	Resume           *Resume
	ApplicantMessage *string
	CreatedAt        time.Time
}
