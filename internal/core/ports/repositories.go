package ports

import (
	"context"

	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/pagination"
)

// UserRepository persists users.
type UserRepository interface {
	// Create fails with domain.ErrUserAlreadyExists when the email is taken.
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// ListApplicants returns APPLICANT users ordered by -id.
	ListApplicants(filter ApplicantFilter) pagination.Query[*domain.User]
}

// DepartmentRepository persists departments.
type DepartmentRepository interface {
	Create(ctx context.Context, d *domain.Department) error
	FindByID(ctx context.Context, id int64) (*domain.Department, error)
	// List returns every department ordered by name.
	List(ctx context.Context) ([]domain.Department, error)
}

// SkillRepository interns skill names. Existing names are left untouched.
type SkillRepository interface {
	Intern(ctx context.Context, names []string) error
}

// LockingRepository is what the lifecycle engine needs from a store of R.
type LockingRepository[R domain.Publishable] interface {
	// Lock loads the row owned by ownerID and holds a write lock on it until
	// the surrounding transaction ends. A missing or foreign row yields the
	// resource's not-found error.
	Lock(ctx context.Context, ownerID, id int64) (R, error)
	// SaveLifecycle persists state and published_at.
	SaveLifecycle(ctx context.Context, r R) error
	// SaveContent persists the editable fields.
	SaveContent(ctx context.Context, r R) error
}

// ResumeRepository persists resumes and their skill links.
type ResumeRepository interface {
	LockingRepository[*domain.Resume]
	Create(ctx context.Context, r *domain.Resume) error
	FindByOwner(ctx context.Context, ownerID, id int64) (*domain.Resume, error)
	// ListByOwner returns the owner's resumes ordered by id.
	ListByOwner(ctx context.Context, ownerID int64, filter ResumeOwnerFilter) ([]*domain.Resume, error)
	// ListPublished returns PUBLISHED resumes ordered by -published_at, -id.
	ListPublished(filter ResumeFilter) pagination.Query[*domain.Resume]
}

// VacancyRepository persists vacancies.
type VacancyRepository interface {
	LockingRepository[*domain.Vacancy]
	Create(ctx context.Context, v *domain.Vacancy) error
	// FindInDepartment loads a vacancy whose creator belongs to departmentID.
	FindInDepartment(ctx context.Context, departmentID, id int64) (*domain.Vacancy, error)
	// FindPublished loads a vacancy only if it is PUBLISHED.
	FindPublished(ctx context.Context, id int64) (*domain.Vacancy, error)
	// ListInDepartment returns vacancies of the department ordered by -id.
	ListInDepartment(departmentID int64, filter VacancyFilter) pagination.Query[*domain.Vacancy]
	// ListPublished returns PUBLISHED vacancies ordered by -id. filter.States is ignored.
	ListPublished(filter VacancyFilter) pagination.Query[*domain.Vacancy]
}

// VacancyResponseRepository persists vacancy responses.
type VacancyResponseRepository interface {
	// Create fails with domain.ErrVacancyResponseAlreadyExists on a duplicate pair.
	Create(ctx context.Context, r *domain.VacancyResponse) error
	Exists(ctx context.Context, vacancyID, resumeID int64) (bool, error)
	// ListInDepartment returns responses to vacancies created in departmentID, ordered by -id.
	ListInDepartment(departmentID int64) pagination.Query[*domain.VacancyResponse]
}
