package middleware

import (
	"github.com/hrprojector/jobboard/internal/api/jsonrpc"
	"github.com/hrprojector/jobboard/internal/core/domain"
)

// RequireRole refuses calls without a verified identity or whose role is not
// in the allow-list. Both cases are domain.ErrForbidden.
func RequireRole(allowedRoles ...domain.Role) jsonrpc.Guard {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(c *jsonrpc.Call) error {
		id, ok := Identity(c)
		if !ok {
			return domain.ErrForbidden
		}
		if _, ok := allowed[id.Role]; !ok {
			return domain.ErrForbidden
		}
		return nil
	}
}

// Authenticated accepts any verified identity.
func Authenticated() jsonrpc.Guard {
	return RequireRole(domain.RoleApplicant, domain.RoleManager)
}
