package handler

import (
	"github.com/hrprojector/jobboard/internal/api/jsonrpc"
	"github.com/hrprojector/jobboard/internal/api/metrics"
	"github.com/hrprojector/jobboard/internal/api/middleware"
	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/pagination"
)

// caller returns the identity verified by the Auth middleware. Role guards
// run first, so a missing identity here means the method was registered
// without one.
func caller(c *jsonrpc.Call) (*domain.Identity, error) {
	id, ok := middleware.Identity(c)
	if !ok {
		return nil, domain.ErrForbidden
	}
	return id, nil
}

// paginate resolves the caller's directive and slices q into a page.
func paginate[R, T any](c *jsonrpc.Call, p pagination.Params, q pagination.Query[R], project func(R) T) (*pagination.Page[T], error) {
	w, err := p.Window()
	if err != nil {
		return nil, err
	}
	page, err := pagination.Paginate(c.Ctx(), q, w, project)
	if err != nil {
		return nil, err
	}
	metrics.PageSize.WithLabelValues(c.Method).Observe(float64(len(page.Items)))
	return page, nil
}
