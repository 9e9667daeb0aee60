// Package http exposes the operational endpoints of the fulfillment
// service. Business operations are reached through the command handlers,
// not over HTTP.
package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const readinessTimeout = 2 * time.Second

// CheckFunc probes one dependency. A nil error means it is usable.
type CheckFunc func(ctx context.Context) error

type statusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Server serves liveness and readiness probes.
type Server struct {
	checks map[string]CheckFunc
	logger *zap.Logger
}

func NewServer(logger *zap.Logger) *Server {
	return &Server{
		checks: make(map[string]CheckFunc),
		logger: logger.Named("http"),
	}
}

// AddCheck registers a readiness dependency under name.
func (s *Server) AddCheck(name string, check CheckFunc) {
	s.checks[name] = check
}

// Register mounts the probe routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/ready", s.Ready)
}

// Health handles GET /health. It only reports that the process serves requests.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, statusResponse{Status: "healthy"})
}

// Ready handles GET /ready and runs every registered check.
func (s *Server) Ready(ctx echo.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx.Request().Context(), readinessTimeout)
	defer cancel()

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := statusResponse{Status: "ready", Checks: make(map[string]string, len(names))}
	code := http.StatusOK
	for _, name := range names {
		if err := s.checks[name](checkCtx); err != nil {
			s.logger.Warn("Readiness check failed", zap.String("check", name), zap.Error(err))
			resp.Checks[name] = err.Error()
			resp.Status = "unavailable"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	return ctx.JSON(code, resp)
}
