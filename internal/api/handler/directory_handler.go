package handler

import (
	"github.com/hrprojector/jobboard/internal/api/jsonrpc"
	"github.com/hrprojector/jobboard/internal/core/ports"
)

// DirectoryHandler lets managers browse applicants and published resumes.
type DirectoryHandler struct {
	applicantService ports.ApplicantService
	resumeService    ports.ResumeService
}

func NewDirectoryHandler(applicantService ports.ApplicantService, resumeService ports.ResumeService) *DirectoryHandler {
	return &DirectoryHandler{applicantService: applicantService, resumeService: resumeService}
}

func (h *DirectoryHandler) Applicants(c *jsonrpc.Call) (any, error) {
	var req listApplicantsRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	q, err := h.applicantService.List(c.Ctx(), toApplicantFilter(req.Filters))
	if err != nil {
		return nil, err
	}
	return paginate(c, req.Params, q, toShortApplicant)
}

func (h *DirectoryHandler) Resumes(c *jsonrpc.Call) (any, error) {
	var req listResumesForManagerRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	q, err := h.resumeService.ListPublished(c.Ctx(), toResumeFilter(req.Filters))
	if err != nil {
		return nil, err
	}
	return paginate(c, req.Params, q, toResumeForManager)
}
