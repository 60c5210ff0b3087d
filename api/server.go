package api

import (
	"context"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// ============================================================================
// API SERVER — HTTP surface for the chart data transform
// ============================================================================
// A thin transform endpoint: the chart host POSTs query results plus
// form data and gets the render config back. This is not a BI backend;
// query execution, auth, and dashboards live elsewhere.
// ============================================================================

// Server wraps the echo instance and its handler.
type Server struct {
	echo   *echo.Echo
	logger *zap.Logger
}

// NewServer builds a server with recovery and CORS middleware and the
// goccy JSON serializer.
func NewServer(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = goccySerializer{}
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{echo: e, logger: logger}
	h := &Handler{logger: logger}
	h.RegisterRoutes(e)
	return s
}

// Start blocks serving on addr.
func (s *Server) Start(addr string) error {
	s.logger.Info("chart data API listening", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying instance for tests.
func (s *Server) Echo() *echo.Echo { return s.echo }

// goccySerializer plugs goccy/go-json into echo.
type goccySerializer struct{}

func (goccySerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (goccySerializer) Deserialize(c echo.Context, i interface{}) error {
	return json.NewDecoder(c.Request().Body).Decode(i)
}
