package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/hrprojector/jobboard/internal/api/handler"
	"github.com/hrprojector/jobboard/internal/api/jsonrpc"
	"github.com/hrprojector/jobboard/internal/api/middleware"
	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/ports"
	"github.com/hrprojector/jobboard/internal/infrastructure/http/handlers"
)

const RPCPath = "/api/v1/web/jsonrpc"

// Deps are the services and adapters the HTTP surface is built from.
type Deps struct {
	Auth        ports.AuthService
	Departments ports.DepartmentService
	Resumes     ports.ResumeService
	Vacancies   ports.VacancyService
	Responses   ports.ResponseService
	Applicants  ports.ApplicantService

	// AuthLimiter throttles register and login per client IP.
	AuthLimiter middleware.Limiter
	Readiness   *handlers.HealthDependenciesHandler
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))

	// --- JSON-RPC ---
	rpc := NewRPCServer(d)
	e.POST(RPCPath, rpc.Handle, middleware.Auth(d.Auth))

	// --- Health checks and metrics (no auth required) ---
	e.GET("/health/live", handlers.NewHealthHandler().Liveness)
	if d.Readiness != nil {
		e.GET("/health/ready", d.Readiness.Readiness)
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

// NewRPCServer registers every method with its access guards.
func NewRPCServer(d Deps) *jsonrpc.Server {
	rpc := jsonrpc.NewServer(d.Log)

	auth := handler.NewAuthHandler(d.Auth, d.Departments)
	resumes := handler.NewResumeHandler(d.Resumes)
	vacancies := handler.NewVacancyHandler(d.Vacancies, d.Responses)
	directory := handler.NewDirectoryHandler(d.Applicants, d.Resumes)

	var throttle []jsonrpc.Guard
	if d.AuthLimiter != nil {
		throttle = append(throttle, middleware.RateLimit(d.AuthLimiter, d.Log))
	}
	applicant := middleware.RequireRole(domain.RoleApplicant)
	manager := middleware.RequireRole(domain.RoleManager)

	// --- Public ---
	rpc.Register("register", auth.Register, throttle...)
	rpc.Register("login", auth.Login, throttle...)
	rpc.Register("get_departments", auth.Departments)
	rpc.Register("echo", handler.Echo)
	rpc.Register("get_current_user", auth.CurrentUser, middleware.Authenticated())

	// --- Applicant ---
	rpc.Register("create_resume", resumes.Create, applicant)
	rpc.Register("get_resume_for_applicant", resumes.Get, applicant)
	rpc.Register("get_resumes_for_applicant", resumes.List, applicant)
	rpc.Register("update_resume", resumes.Update, applicant)
	rpc.Register("publish_resume", resumes.Publish, applicant)
	rpc.Register("hide_resume", resumes.Hide, applicant)
	rpc.Register("get_vacancy_for_applicant", vacancies.GetForApplicant, applicant)
	rpc.Register("get_vacancies_for_applicant", vacancies.ListForApplicant, applicant)
	rpc.Register("respond_vacancy", vacancies.Respond, applicant)

	// --- Manager ---
	rpc.Register("create_vacancy", vacancies.Create, manager)
	rpc.Register("get_vacancy_for_manager", vacancies.GetForManager, manager)
	rpc.Register("get_vacancies_for_manager", vacancies.ListForManager, manager)
	rpc.Register("update_vacancy", vacancies.Update, manager)
	rpc.Register("publish_vacancy", vacancies.Publish, manager)
	rpc.Register("hide_vacancy", vacancies.Hide, manager)
	rpc.Register("get_vacancy_responses_for_manager", vacancies.Responses, manager)
	rpc.Register("get_applicants_for_manager", directory.Applicants, manager)
	rpc.Register("get_resumes_for_manager", directory.Resumes, manager)

	return rpc
}
