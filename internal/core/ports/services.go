package ports

import (
	"context"

	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/pagination"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Email                string
	Password             string
	PasswordConfirmation string
	FirstName            string
	LastName             string
	Patronymic           string
	DepartmentID         int64
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// CreateManager is the operator path for manager accounts.
	CreateManager(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Authenticate verifies an access token. Every failure is domain.ErrForbidden.
	Authenticate(token string) (*domain.Identity, error)
	CurrentUser(ctx context.Context, userID int64) (*domain.User, error)
}

type DepartmentService interface {
	Create(ctx context.Context, name string) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
}

type ResumeService interface {
	Create(ctx context.Context, ownerID int64, content domain.ResumeContent) (*domain.Resume, error)
	Get(ctx context.Context, ownerID, id int64) (*domain.Resume, error)
	List(ctx context.Context, ownerID int64, filter ResumeOwnerFilter) ([]*domain.Resume, error)
	Update(ctx context.Context, ownerID, id int64, update domain.ResumeUpdate) (*domain.Resume, error)
	Publish(ctx context.Context, ownerID, id int64) (*domain.Resume, error)
	Hide(ctx context.Context, ownerID, id int64) (*domain.Resume, error)
	ListPublished(ctx context.Context, filter ResumeFilter) (pagination.Query[*domain.Resume], error)
}

type VacancyService interface {
	Create(ctx context.Context, creatorID int64, content domain.VacancyContent) (*domain.Vacancy, error)
	GetForManager(ctx context.Context, managerID, id int64) (*domain.Vacancy, error)
	GetForApplicant(ctx context.Context, id int64) (*domain.Vacancy, error)
	ListForManager(ctx context.Context, managerID int64, filter VacancyFilter) (pagination.Query[*domain.Vacancy], error)
	ListForApplicant(ctx context.Context, filter VacancyFilter) (pagination.Query[*domain.Vacancy], error)
	Update(ctx context.Context, creatorID, id int64, update domain.VacancyUpdate) (*domain.Vacancy, error)
	Publish(ctx context.Context, creatorID, id int64) (*domain.Vacancy, error)
	Hide(ctx context.Context, creatorID, id int64) (*domain.Vacancy, error)
}

type ResponseService interface {
	Respond(ctx context.Context, applicantID, vacancyID, resumeID int64, message *string) (*domain.VacancyResponse, error)
	ListForManager(ctx context.Context, managerID int64) (pagination.Query[*domain.VacancyResponse], error)
}

type ApplicantService interface {
	List(ctx context.Context, filter ApplicantFilter) (pagination.Query[*domain.User], error)
}
