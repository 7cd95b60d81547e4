package handler

import (
	"github.com/hrprojector/jobboard/internal/api/jsonrpc"
	"github.com/hrprojector/jobboard/internal/core/ports"
)

// VacancyHandler serves vacancies to managers and applicants, and vacancy
// responses to both sides.
type VacancyHandler struct {
	vacancyService  ports.VacancyService
	responseService ports.ResponseService
}

func NewVacancyHandler(vacancyService ports.VacancyService, responseService ports.ResponseService) *VacancyHandler {
	return &VacancyHandler{vacancyService: vacancyService, responseService: responseService}
}

// --- Manager methods ---

func (h *VacancyHandler) Create(c *jsonrpc.Call) (any, error) {
	id, err := caller(c)
	if err != nil {
		return nil, err
	}
	var req createVacancyRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	vacancy, err := h.vacancyService.Create(c.Ctx(), id.UserID, toVacancyContent(req.VacancyData))
	if err != nil {
		return nil, err
	}
	return toVacancyForManager(vacancy), nil
}

func (h *VacancyHandler) GetForManager(c *jsonrpc.Call) (any, error) {
	id, err := caller(c)
	if err != nil {
		return nil, err
	}
	var req idRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	vacancy, err := h.vacancyService.GetForManager(c.Ctx(), id.UserID, req.ID)
	if err != nil {
		return nil, err
	}
	return toVacancyForManager(vacancy), nil
}

func (h *VacancyHandler) ListForManager(c *jsonrpc.Call) (any, error) {
	id, err := caller(c)
	if err != nil {
		return nil, err
	}
	var req listVacanciesForManagerRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	q, err := h.vacancyService.ListForManager(c.Ctx(), id.UserID, toManagerVacancyFilter(req.Filters))
	if err != nil {
		return nil, err
	}
	return paginate(c, req.Params, q, toShortVacancyForManager)
}

func (h *VacancyHandler) Update(c *jsonrpc.Call) (any, error) {
	id, err := caller(c)
	if err != nil {
		return nil, err
	}
	var req updateVacancyRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	vacancy, err := h.vacancyService.Update(c.Ctx(), id.UserID, req.ID, toVacancyUpdate(req.NewData))
	if err != nil {
		return nil, err
	}
	return toVacancyForManager(vacancy), nil
}

func (h *VacancyHandler) Publish(c *jsonrpc.Call) (any, error) {
	id, err := caller(c)
	if err != nil {
		return nil, err
	}
	var req idRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	vacancy, err := h.vacancyService.Publish(c.Ctx(), id.UserID, req.ID)
	if err != nil {
		return nil, err
	}
	return toVacancyForManager(vacancy), nil
}

func (h *VacancyHandler) Hide(c *jsonrpc.Call) (any, error) {
	id, err := caller(c)
	if err != nil {
		return nil, err
	}
	var req idRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	vacancy, err := h.vacancyService.Hide(c.Ctx(), id.UserID, req.ID)
	if err != nil {
		return nil, err
	}
	return toVacancyForManager(vacancy), nil
}

func (h *VacancyHandler) Responses(c *jsonrpc.Call) (any, error) {
	id, err := caller(c)
	if err != nil {
		return nil, err
	}
	var req listResponsesRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	q, err := h.responseService.ListForManager(c.Ctx(), id.UserID)
	if err != nil {
		return nil, err
	}
	return paginate(c, req.Params, q, toVacancyResponse)
}

// --- Applicant methods ---

func (h *VacancyHandler) GetForApplicant(c *jsonrpc.Call) (any, error) {
	var req idRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	vacancy, err := h.vacancyService.GetForApplicant(c.Ctx(), req.ID)
	if err != nil {
		return nil, err
	}
	return toVacancyForApplicant(vacancy), nil
}

func (h *VacancyHandler) ListForApplicant(c *jsonrpc.Call) (any, error) {
	var req listVacanciesForApplicantRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	q, err := h.vacancyService.ListForApplicant(c.Ctx(), toApplicantVacancyFilter(req.Filters))
	if err != nil {
		return nil, err
	}
	return paginate(c, req.Params, q, toShortVacancyForApplicant)
}

func (h *VacancyHandler) Respond(c *jsonrpc.Call) (any, error) {
	id, err := caller(c)
	if err != nil {
		return nil, err
	}
	var req respondVacancyRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	response, err := h.responseService.Respond(c.Ctx(), id.UserID, req.VacancyID, req.ResumeID, req.Message)
	if err != nil {
		return nil, err
	}
	return toVacancyResponse(response), nil
}
