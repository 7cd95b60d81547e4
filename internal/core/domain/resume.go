package domain

import (
	"strings"
	"time"
)

// Resume is owned by exactly one applicant.
type Resume struct {
	ID              int64
	OwnerID         int64
	Owner           *User
	CurrentPosition string
	DesiredPosition string
	Experience      int
	Bio             string
	Skills          []string
	Lifecycle
}

func (r *Resume) ResourceID() int64          { return r.ID }
func (r *Resume) LifecycleState() *Lifecycle { return &r.Lifecycle }

// ResumeContent carries the fields supplied on creation.
type ResumeContent struct {
	CurrentPosition string
	DesiredPosition string
	Experience      int
	Bio             string
	Skills          []string
}

// ResumeUpdate is a partial update: nil fields are left untouched.
type ResumeUpdate struct {
	CurrentPosition *string
	DesiredPosition *string
	Experience      *int
	Bio             *string
	Skills          *[]string
}

// Empty reports whether the update carries no field at all.
func (u ResumeUpdate) Empty() bool {
	return u.CurrentPosition == nil && u.DesiredPosition == nil &&
		u.Experience == nil && u.Bio == nil && u.Skills == nil
}

// Apply copies every present field onto r.
func (u ResumeUpdate) Apply(r *Resume) {
	if u.CurrentPosition != nil {
		r.CurrentPosition = *u.CurrentPosition
	}
	if u.DesiredPosition != nil {
		r.DesiredPosition = *u.DesiredPosition
	}
	if u.Experience != nil {
		r.Experience = *u.Experience
	}
	if u.Bio != nil {
		r.Bio = *u.Bio
	}
	if u.Skills != nil {
		r.Skills = NormalizeSkills(*u.Skills)
	}
}

// NewResume builds a DRAFT resume for owner.
func NewResume(ownerID int64, c ResumeContent, now time.Time) *Resume {
	return &Resume{
		OwnerID:         ownerID,
		CurrentPosition: c.CurrentPosition,
		DesiredPosition: c.DesiredPosition,
		Experience:      c.Experience,
		Bio:             c.Bio,
		Skills:          NormalizeSkills(c.Skills),
		Lifecycle:       NewLifecycle(now),
	}
}

// NormalizeSkills lowercases and trims skill names, dropping blanks and
// duplicates while keeping the first occurrence order.
func NormalizeSkills(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
