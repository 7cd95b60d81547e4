package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hrprojector/jobboard/internal/api/metrics"
)

const (
	maxBodyBytes = 1 << 20
	maxBatchSize = 50
)

// Handler serves one method. The returned value becomes the result member.
type Handler func(c *Call) (any, error)

// Guard runs before a handler and may refuse the call with an error.
type Guard func(c *Call) error

// Call is a single method invocation. It embeds the echo context of the
// HTTP request carrying it; batched calls share that context.
type Call struct {
	echo.Context
	Method string

	params   json.RawMessage
	validate *paramsValidator
}

// Ctx returns the request context.
func (c *Call) Ctx() context.Context {
	return c.Request().Context()
}

// Bind decodes by-name params into dst and validates it. Missing params
// decode as an empty object.
func (c *Call) Bind(dst any) error {
	params := bytes.TrimSpace(c.params)
	if len(params) == 0 || bytes.Equal(params, []byte("null")) {
		params = []byte("{}")
	}
	if params[0] != '{' {
		return &Error{Code: CodeInvalidParams, Message: "Invalid params", Data: "params must be an object"}
	}
	if err := json.Unmarshal(params, dst); err != nil {
		return &Error{Code: CodeInvalidParams, Message: "Invalid params", Data: err.Error()}
	}
	return c.validate.Validate(dst)
}

type method struct {
	handler Handler
	guards  []Guard
}

// Server dispatches JSON-RPC requests to registered methods.
type Server struct {
	methods  map[string]method
	validate *paramsValidator
	log      zerolog.Logger
}

func NewServer(log zerolog.Logger) *Server {
	return &Server{
		methods:  make(map[string]method),
		validate: newParamsValidator(),
		log:      log,
	}
}

// Register adds a method. Guards run in order before the handler.
func (s *Server) Register(name string, h Handler, guards ...Guard) {
	if _, dup := s.methods[name]; dup {
		panic(fmt.Sprintf("jsonrpc: method %q registered twice", name))
	}
	s.methods[name] = method{handler: h, guards: guards}
}

// Methods lists the registered method names in order.
func (s *Server) Methods() []string {
	names := make([]string, 0, len(s.methods))
	for name := range s.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Handle is the echo handler for the JSON-RPC endpoint. Every outcome that
// reaches the JSON-RPC layer is answered with HTTP 200.
func (s *Server) Handle(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return c.JSON(http.StatusOK, errorResponse(nil, &Error{Code: CodeParseError, Message: "Parse error"}))
	}
	body = bytes.TrimSpace(body)

	if len(body) > 0 && body[0] == '[' {
		return s.handleBatch(c, body)
	}

	resp := s.dispatch(c, body)
	if resp == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleBatch(c echo.Context, body []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err != nil {
		return c.JSON(http.StatusOK, errorResponse(nil, &Error{Code: CodeParseError, Message: "Parse error"}))
	}
	if len(raws) == 0 || len(raws) > maxBatchSize {
		return c.JSON(http.StatusOK, errorResponse(nil, &Error{Code: CodeInvalidRequest, Message: "Invalid Request"}))
	}

	out := make([]*Response, 0, len(raws))
	for _, raw := range raws {
		if resp := s.dispatch(c, raw); resp != nil {
			out = append(out, resp)
		}
	}
	if len(out) == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, out)
}

// dispatch runs one request. It returns nil for notifications.
func (s *Server) dispatch(c echo.Context, raw []byte) *Response {
	if !json.Valid(raw) {
		resp := errorResponse(nil, &Error{Code: CodeParseError, Message: "Parse error"})
		return &resp
	}

	var req Request
	if err := json.Unmarshal(raw, &req); err != nil || req.JSONRPC != Version || req.Method == "" {
		resp := errorResponse(req.ID, &Error{Code: CodeInvalidRequest, Message: "Invalid Request"})
		return &resp
	}

	m, ok := s.methods[req.Method]
	if !ok {
		metrics.RPCCallsTotal.WithLabelValues("unknown", strconv.Itoa(CodeMethodNotFound)).Inc()
		if req.IsNotification() {
			return nil
		}
		resp := errorResponse(req.ID, &Error{Code: CodeMethodNotFound, Message: "Method not found"})
		return &resp
	}

	call := &Call{Context: c, Method: req.Method, params: req.Params, validate: s.validate}
	start := time.Now()
	result, err := s.invoke(call, m)
	metrics.RPCDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

	var rpcErr *Error
	code := "ok"
	if err != nil {
		rpcErr = s.resolveError(call, err)
		code = strconv.Itoa(rpcErr.Code)
	}
	metrics.RPCCallsTotal.WithLabelValues(req.Method, code).Inc()

	if req.IsNotification() {
		return nil
	}
	if rpcErr != nil {
		resp := errorResponse(req.ID, rpcErr)
		return &resp
	}
	return &Response{JSONRPC: Version, ID: req.ID, Result: result}
}

func (s *Server) invoke(call *Call, m method) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", call.Method, r)
		}
	}()
	for _, guard := range m.guards {
		if err := guard(call); err != nil {
			return nil, err
		}
	}
	return m.handler(call)
}

// MarshalJSON emits exactly one of result and error; a nil result is null.
func (r Response) MarshalJSON() ([]byte, error) {
	if r.Error != nil {
		return json.Marshal(struct {
			JSONRPC string          `json:"jsonrpc"`
			ID      json.RawMessage `json:"id"`
			Error   *Error          `json:"error"`
		}{r.JSONRPC, r.ID, r.Error})
	}
	return json.Marshal(struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Result  any             `json:"result"`
	}{r.JSONRPC, r.ID, r.Result})
}
