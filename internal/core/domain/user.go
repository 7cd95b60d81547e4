package domain

import (
	"strings"
	"time"
)

// Role is fixed at creation; there is no role change operation.
type Role string

const (
	RoleApplicant Role = "APPLICANT"
	RoleManager   Role = "MANAGER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleApplicant || r == RoleManager
}

// Department is a reference entity. It is never cascade-deleted.
type Department struct {
	ID   int64
	Name string
}

// User models an authenticated actor in the system.
type User struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	Patronymic   string
	PasswordHash string
	Role         Role
	DepartmentID int64
	Department   *Department // loaded with the user when the store can join it
	CreatedAt    time.Time
}

// FullName joins last name, first name and patronymic.
func (u *User) FullName() string {
	return strings.TrimSpace(strings.Join([]string{u.LastName, u.FirstName, u.Patronymic}, " "))
}

// Identity is what a verified access token tells about its bearer.
type Identity struct {
	UserID int64
	Role   Role
}
