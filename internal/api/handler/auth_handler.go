package handler

import (
	"github.com/hrprojector/jobboard/internal/api/jsonrpc"
	"github.com/hrprojector/jobboard/internal/core/ports"
)

type AuthHandler struct {
	authService       ports.AuthService
	departmentService ports.DepartmentService
}

func NewAuthHandler(authService ports.AuthService, departmentService ports.DepartmentService) *AuthHandler {
	return &AuthHandler{authService: authService, departmentService: departmentService}
}

// Register creates an applicant account.
func (h *AuthHandler) Register(c *jsonrpc.Call) (any, error) {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	user, err := h.authService.Register(c.Ctx(), toRegisterInput(req.UserData))
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login exchanges credentials for an access token.
func (h *AuthHandler) Login(c *jsonrpc.Call) (any, error) {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	token, user, err := h.authService.Login(c.Ctx(), req.Credentials.Email, req.Credentials.Password)
	if err != nil {
		return nil, err
	}
	return loginResponse{Token: token, User: toUserResponse(user)}, nil
}

func (h *AuthHandler) CurrentUser(c *jsonrpc.Call) (any, error) {
	id, err := caller(c)
	if err != nil {
		return nil, err
	}
	user, err := h.authService.CurrentUser(c.Ctx(), id.UserID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (h *AuthHandler) Departments(c *jsonrpc.Call) (any, error) {
	departments, err := h.departmentService.List(c.Ctx())
	if err != nil {
		return nil, err
	}
	out := make([]departmentResponse, len(departments))
	for i, d := range departments {
		out[i] = toDepartmentResponse(&d)
	}
	return out, nil
}

// Echo returns its message unchanged. It is a connectivity check.
func Echo(c *jsonrpc.Call) (any, error) {
	var req echoRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}
	return req.Message, nil
}
