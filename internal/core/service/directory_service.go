package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/pagination"
	"github.com/hrprojector/jobboard/internal/core/ports"
)

// DepartmentService reads and creates departments. The list is not cached.
type DepartmentService struct {
	repo ports.DepartmentRepository
}

func NewDepartmentService(repo ports.DepartmentRepository) *DepartmentService {
	return &DepartmentService{repo: repo}
}

func (s *DepartmentService) Create(ctx context.Context, name string) (*domain.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("create department: empty name")
	}
	d := &domain.Department{Name: name}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create department: %w", err)
	}
	return d, nil
}

func (s *DepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	departments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return departments, nil
}

// ApplicantService is the managers' view of the applicant directory.
type ApplicantService struct {
	users ports.UserRepository
}

func NewApplicantService(users ports.UserRepository) *ApplicantService {
	return &ApplicantService{users: users}
}

func (s *ApplicantService) List(_ context.Context, filter ports.ApplicantFilter) (pagination.Query[*domain.User], error) {
	return s.users.ListApplicants(filter), nil
}
