package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/ports"
)

var _ ports.DepartmentRepository = (*DepartmentRepository)(nil)

// ErrDepartmentExists is returned by Create for a taken name.
var ErrDepartmentExists = errors.New("department already exists")

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) Create(ctx context.Context, d *domain.Department) error {
	row := &departmentRow{Name: d.Name}
	if err := conn(ctx, r.db).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDepartmentExists
		}
		return fmt.Errorf("insert department: %w", err)
	}
	d.ID = row.ID
	return nil
}

func (r *DepartmentRepository) FindByID(ctx context.Context, id int64) (*domain.Department, error) {
	var row departmentRow
	err := conn(ctx, r.db).Take(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrDepartmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find department: %w", err)
	}
	return row.toDomain(), nil
}

func (r *DepartmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	var rows []departmentRow
	if err := conn(ctx, r.db).Order("name").Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	out := make([]domain.Department, len(rows))
	for i := range rows {
		out[i] = *rows[i].toDomain()
	}
	return out, nil
}
