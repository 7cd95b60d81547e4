package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/pagination"
	"github.com/hrprojector/jobboard/internal/core/ports"
)

// ResponseService lets applicants respond to vacancies with a resume.
type ResponseService struct {
	tx        ports.Transactor
	vacancies ports.VacancyRepository
	resumes   ports.ResumeRepository
	responses ports.VacancyResponseRepository
	users     ports.UserRepository
	log       zerolog.Logger
}

func NewResponseService(
	tx ports.Transactor,
	vacancies ports.VacancyRepository,
	resumes ports.ResumeRepository,
	responses ports.VacancyResponseRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *ResponseService {
	return &ResponseService{
		tx:        tx,
		vacancies: vacancies,
		resumes:   resumes,
		responses: responses,
		users:     users,
		log:       log,
	}
}

// Respond checks, in this order: the vacancy is PUBLISHED (else vacancy not
// found), the resume belongs to the applicant (else resume not found), the
// resume is PUBLISHED (else wrong state) and the pair is new (else conflict).
// Callers observe the first failing check.
func (s *ResponseService) Respond(ctx context.Context, applicantID, vacancyID, resumeID int64, message *string) (*domain.VacancyResponse, error) {
	var response *domain.VacancyResponse
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		vacancy, err := s.vacancies.FindPublished(ctx, vacancyID)
		if err != nil {
			return err
		}
		resume, err := s.resumes.FindByOwner(ctx, applicantID, resumeID)
		if err != nil {
			return err
		}
		if resume.State != domain.StatePublished {
			return domain.ErrResumeWrongState
		}
		exists, err := s.responses.Exists(ctx, vacancyID, resumeID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrVacancyResponseAlreadyExists
		}

		response = &domain.VacancyResponse{
			VacancyID:        vacancy.ID,
			ResumeID:         resume.ID,
			Vacancy:          vacancy,
			Resume:           resume,
			ApplicantMessage: message,
			CreatedAt:        time.Now().UTC(),
		}
		return s.responses.Create(ctx, response)
	})
	if err != nil {
		return nil, fmt.Errorf("respond vacancy: %w", err)
	}

	s.log.Info().
		Int64("vacancy_id", vacancyID).
		Int64("resume_id", resumeID).
		Int64("applicant_id", applicantID).
		Msg("vacancy response created")
	return response, nil
}

// ListForManager returns responses to vacancies created in the manager's department.
func (s *ResponseService) ListForManager(ctx context.Context, managerID int64) (pagination.Query[*domain.VacancyResponse], error) {
	departmentID, err := managerDepartment(ctx, s.users, managerID)
	if err != nil {
		return nil, err
	}
	return s.responses.ListInDepartment(departmentID), nil
}
