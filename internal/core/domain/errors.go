package domain

import "errors"

// CodedError is a recoverable domain error with a stable code that is
// returned to RPC callers as is.
type CodedError struct {
	Code    int
	Message string
}

func (e *CodedError) Error() string { return e.Message }

func newCoded(code int, msg string) *CodedError {
	return &CodedError{Code: code, Message: msg}
}

// Forbidden is deliberately generic. Missing, malformed and expired tokens,
// a role outside the allow-list and bad login credentials all look the same.
var ErrForbidden = newCoded(403, "forbidden")

var (
	ErrUserAlreadyExists            = newCoded(1001, "User already exists")
	ErrPasswordsMismatch            = newCoded(1002, "Passwords does not match")
	ErrDepartmentNotFound           = newCoded(2001, "Department not found")
	ErrResumeNotFound               = newCoded(3001, "Resume not found")
	ErrResumeWrongState             = newCoded(3002, "Resume has not allowed state for this method")
	ErrVacancyNotFound              = newCoded(4001, "Vacancy not found")
	ErrVacancyWrongState            = newCoded(4002, "Vacancy has not allowed state for this method")
	ErrVacancyResponseAlreadyExists = newCoded(5003, "Vacancy response already exists")
)

// Internal sentinels. They never leave the service layer unmapped.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("rate limit exceeded")
)
