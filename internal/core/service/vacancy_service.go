package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/pagination"
	"github.com/hrprojector/jobboard/internal/core/ports"
)

// VacancyService implements the vacancy lifecycle.
//
// Managers read vacancies of their own department, but only the creator may
// update, publish or hide one. Applicants only ever see PUBLISHED vacancies.
// Anything outside the caller's scope is reported as domain.ErrVacancyNotFound.
type VacancyService struct {
	vacancies ports.VacancyRepository
	users     ports.UserRepository
	engine    *lifecycleEngine[*domain.Vacancy]
	log       zerolog.Logger
}

func NewVacancyService(
	tx ports.Transactor,
	vacancies ports.VacancyRepository,
	users ports.UserRepository,
	audit ports.AuditSink,
	log zerolog.Logger,
) *VacancyService {
	return &VacancyService{
		vacancies: vacancies,
		users:     users,
		engine:    newLifecycleEngine[*domain.Vacancy](tx, vacancies, domain.VacancyResource, audit, log),
		log:       log,
	}
}

func (s *VacancyService) Create(ctx context.Context, creatorID int64, content domain.VacancyContent) (*domain.Vacancy, error) {
	vacancy := domain.NewVacancy(creatorID, content, s.engine.now())
	if err := s.vacancies.Create(ctx, vacancy); err != nil {
		return nil, fmt.Errorf("create vacancy: %w", err)
	}
	s.engine.created(vacancy, creatorID)
	s.log.Debug().
		Int64("vacancy_id", vacancy.ID).
		Int64("creator_id", creatorID).
		Msg("vacancy created")
	return vacancy, nil
}

func (s *VacancyService) GetForManager(ctx context.Context, managerID, id int64) (*domain.Vacancy, error) {
	departmentID, err := managerDepartment(ctx, s.users, managerID)
	if err != nil {
		return nil, err
	}
	vacancy, err := s.vacancies.FindInDepartment(ctx, departmentID, id)
	if err != nil {
		return nil, fmt.Errorf("get vacancy: %w", err)
	}
	return vacancy, nil
}

// GetForApplicant reports a non-published vacancy as not found.
func (s *VacancyService) GetForApplicant(ctx context.Context, id int64) (*domain.Vacancy, error) {
	vacancy, err := s.vacancies.FindPublished(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get vacancy: %w", err)
	}
	return vacancy, nil
}

func (s *VacancyService) ListForManager(ctx context.Context, managerID int64, filter ports.VacancyFilter) (pagination.Query[*domain.Vacancy], error) {
	departmentID, err := managerDepartment(ctx, s.users, managerID)
	if err != nil {
		return nil, err
	}
	return s.vacancies.ListInDepartment(departmentID, filter), nil
}

func (s *VacancyService) ListForApplicant(_ context.Context, filter ports.VacancyFilter) (pagination.Query[*domain.Vacancy], error) {
	filter.States = nil
	return s.vacancies.ListPublished(filter), nil
}

func (s *VacancyService) Update(ctx context.Context, creatorID, id int64, update domain.VacancyUpdate) (*domain.Vacancy, error) {
	return s.engine.edit(ctx, creatorID, id, func(_ context.Context, v *domain.Vacancy) error {
		update.Apply(v)
		return nil
	})
}

func (s *VacancyService) Publish(ctx context.Context, creatorID, id int64) (*domain.Vacancy, error) {
	return s.engine.publish(ctx, creatorID, id)
}

func (s *VacancyService) Hide(ctx context.Context, creatorID, id int64) (*domain.Vacancy, error) {
	return s.engine.hide(ctx, creatorID, id)
}

// managerDepartment resolves the department that scopes a manager's reads.
// A token whose user no longer exists is treated as forbidden.
func managerDepartment(ctx context.Context, users ports.UserRepository, managerID int64) (int64, error) {
	manager, err := users.FindByID(ctx, managerID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return 0, domain.ErrForbidden
	}
	if err != nil {
		return 0, fmt.Errorf("load manager: %w", err)
	}
	return manager.DepartmentID, nil
}
