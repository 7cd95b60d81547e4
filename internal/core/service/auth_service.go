package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/ports"
)

// AuthService implements registration, login and token verification.
type AuthService struct {
	users       ports.UserRepository
	departments ports.DepartmentRepository
	jwtSecret   string
	tokenTTL    time.Duration
	now         func() time.Time
}

func NewAuthService(users ports.UserRepository, departments ports.DepartmentRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:       users,
		departments: departments,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		now:         time.Now,
	}
}

// Register creates an APPLICANT account.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	user, err := s.createUser(ctx, input, domain.RoleApplicant)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return user, nil
}

// CreateManager creates a MANAGER account. It is not reachable over RPC.
func (s *AuthService) CreateManager(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	user, err := s.createUser(ctx, input, domain.RoleManager)
	if err != nil {
		return nil, fmt.Errorf("create manager: %w", err)
	}
	return user, nil
}

func (s *AuthService) createUser(ctx context.Context, input ports.RegisterInput, role domain.Role) (*domain.User, error) {
	if input.Password != input.PasswordConfirmation {
		return nil, domain.ErrPasswordsMismatch
	}

	department, err := s.departments.FindByID(ctx, input.DepartmentID)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Patronymic:   input.Patronymic,
		PasswordHash: string(hash),
		Role:         role,
		DepartmentID: department.ID,
		Department:   department,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login never tells an unknown email from a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrForbidden
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, domain.ErrForbidden
	}
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrForbidden
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}
	return token, user, nil
}

// Authenticate verifies an HS256 access token. Every failure maps to
// domain.ErrForbidden.
func (s *AuthService) Authenticate(token string) (*domain.Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid {
		return nil, domain.ErrForbidden
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return nil, domain.ErrForbidden
	}
	role, _ := claims["role"].(string)
	if !domain.Role(role).Valid() {
		return nil, domain.ErrForbidden
	}
	return &domain.Identity{UserID: int64(userID), Role: domain.Role(role)}, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
		"jti":     uuid.NewString(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
