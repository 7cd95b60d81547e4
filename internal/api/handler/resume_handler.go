package handler

import (
	"github.com/hrprojector/jobboard/internal/api/jsonrpc"
	"github.com/hrprojector/jobboard/internal/core/ports"
)

// ResumeHandler serves the applicant's own resumes.
type ResumeHandler struct {
	resumeService ports.ResumeService
}

func NewResumeHandler(resumeService ports.ResumeService) *ResumeHandler {
	return &ResumeHandler{resumeService: resumeService}
}

func (h *ResumeHandler) Create(c *jsonrpc.Call) (any, error) {
	id, err := caller(c)
	if err != nil {
		return nil, err
	}
	var req createResumeRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	resume, err := h.resumeService.Create(c.Ctx(), id.UserID, toResumeContent(req.Content))
	if err != nil {
		return nil, err
	}
	return toResumeForApplicant(resume), nil
}

func (h *ResumeHandler) Get(c *jsonrpc.Call) (any, error) {
	id, err := caller(c)
	if err != nil {
		return nil, err
	}
	var req idRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	resume, err := h.resumeService.Get(c.Ctx(), id.UserID, req.ID)
	if err != nil {
		return nil, err
	}
	return toResumeForApplicant(resume), nil
}

func (h *ResumeHandler) List(c *jsonrpc.Call) (any, error) {
	id, err := caller(c)
	if err != nil {
		return nil, err
	}
	var req listResumesForApplicantRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	resumes, err := h.resumeService.List(c.Ctx(), id.UserID, toResumeOwnerFilter(req.Filters))
	if err != nil {
		return nil, err
	}
	out := make([]resumeForApplicantResponse, len(resumes))
	for i, r := range resumes {
		out[i] = toResumeForApplicant(r)
	}
	return out, nil
}

func (h *ResumeHandler) Update(c *jsonrpc.Call) (any, error) {
	id, err := caller(c)
	if err != nil {
		return nil, err
	}
	var req updateResumeRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	resume, err := h.resumeService.Update(c.Ctx(), id.UserID, req.ID, toResumeUpdate(req.Content))
	if err != nil {
		return nil, err
	}
	return toResumeForApplicant(resume), nil
}

func (h *ResumeHandler) Publish(c *jsonrpc.Call) (any, error) {
	id, err := caller(c)
	if err != nil {
		return nil, err
	}
	var req idRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	resume, err := h.resumeService.Publish(c.Ctx(), id.UserID, req.ID)
	if err != nil {
		return nil, err
	}
	return toResumeForApplicant(resume), nil
}

func (h *ResumeHandler) Hide(c *jsonrpc.Call) (any, error) {
	id, err := caller(c)
	if err != nil {
		return nil, err
	}
	var req idRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	resume, err := h.resumeService.Hide(c.Ctx(), id.UserID, req.ID)
	if err != nil {
		return nil, err
	}
	return toResumeForApplicant(resume), nil
}
