package api

import (
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/spektr-org/chartform/engine"
	"github.com/spektr-org/chartform/formdata"
)

// Handler serves the transform endpoints.
type Handler struct {
	logger *zap.Logger
}

// RegisterRoutes attaches the API routes.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	e.POST("/api/v1/chart/data", h.ChartData)
}

// ChartDataRequest is the transform request body. FormData is raw so
// it merges onto the defaults rather than overwriting them.
type ChartDataRequest struct {
	Queries     engine.Queries     `json:"queries"`
	FormData    json.RawMessage    `json:"formData"`
	FilterState engine.FilterState `json:"filterState"`
}

// Health reports liveness.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ChartData runs the transform and returns the render config.
func (h *Handler) ChartData(c echo.Context) error {
	var req ChartDataRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	form := formdata.Defaults()
	if len(req.FormData) > 0 {
		parsed, err := formdata.Load(req.FormData)
		if err != nil {
			h.logger.Warn("bad form data", zap.Error(err))
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		form = parsed
	}

	cfg, err := engine.Transform(req.Queries, form,
		engine.RenderContext{FilterState: req.FilterState},
		engine.WithLogger(h.logger),
	)
	if err != nil {
		h.logger.Warn("transform failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	return c.JSON(http.StatusOK, cfg)
}
