package jsonrpc

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/pagination"
)

// resolveError maps handler errors to the error member:
//   - *Error passes through unchanged.
//   - Coded domain errors keep their code and message.
//   - Rejected pagination directives are invalid params.
//   - Anything else is logged and reported as an internal error.
func (s *Server) resolveError(c *Call, err error) *Error {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}

	var coded *domain.CodedError
	if errors.As(err, &coded) {
		return &Error{Code: coded.Code, Message: coded.Message}
	}

	if errors.Is(err, pagination.ErrMixedModes) || errors.Is(err, pagination.ErrOutOfRange) {
		return &Error{Code: CodeInvalidParams, Message: "Invalid params", Data: err.Error()}
	}

	s.log.Error().
		Err(err).
		Str("method", c.Method).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return &Error{Code: CodeInternalError, Message: "Internal error"}
}
