package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/pagination"
	"github.com/hrprojector/jobboard/internal/core/ports"
)

var _ ports.UserRepository = (*UserRepository)(nil)

// fullNameMatch is a full-text match of the argument against the user's
// last name, first name and patronymic. It is backed by a GIN index.
const fullNameMatch = "to_tsvector('simple', %[1]s.last_name || ' ' || %[1]s.first_name || ' ' || %[1]s.patronymic) @@ plainto_tsquery('simple', ?)"

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	row := newUserRow(u)
	if err := conn(ctx, r.db).Omit("Department").Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = row.ID
	u.CreatedAt = row.CreatedAt
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(ctx, "users.email = ?", strings.ToLower(email))
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.find(ctx, "users.id = ?", id)
}

func (r *UserRepository) find(ctx context.Context, cond string, arg any) (*domain.User, error) {
	var row userRow
	err := conn(ctx, r.db).Preload("Department").Where(cond, arg).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) ListApplicants(filter ports.ApplicantFilter) pagination.Query[*domain.User] {
	q := r.db.Model(&userRow{}).
		Preload("Department").
		Where("users.role = ?", string(domain.RoleApplicant))

	if filter.Email != "" {
		q = q.Where("users.email ILIKE ?", containsPattern(filter.Email))
	}
	if filter.FullName != "" {
		q = q.Where(fmt.Sprintf(fullNameMatch, "users"), filter.FullName)
	}
	if len(filter.DepartmentIDs) > 0 {
		q = q.Where("users.department_id IN ?", filter.DepartmentIDs)
	}

	return newQuery(q.Order("users.id DESC"), func(_ context.Context, rows []userRow) ([]*domain.User, error) {
		out := make([]*domain.User, len(rows))
		for i := range rows {
			out[i] = rows[i].toDomain()
		}
		return out, nil
	})
}
