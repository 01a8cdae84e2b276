package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"StockSentinel/internal/collector"
	"StockSentinel/internal/model"
	"StockSentinel/internal/strategy"
)

// Runner produces a report for a list of tickers.
type Runner interface {
	Run(ctx context.Context, symbols []string, th model.AlertThresholds) (*model.Report, error)
}

// ReportStore keeps the most recent report.
type ReportStore interface {
	Last() *model.Report
	SetLast(rep *model.Report)
}

// ScanRequest is the body of POST /api/v1/scan. Omitted fields fall back to
// the configured tickers and the default thresholds.
type ScanRequest struct {
	Tickers           []string `json:"tickers" validate:"max=500"`
	RSIUpper          float64  `json:"rsi_upper" default:"70" validate:"gt=0,lt=100"`
	RSILower          float64  `json:"rsi_lower" default:"30" validate:"gt=0,ltfield=RSIUpper"`
	VolumeSpikeFactor float64  `json:"volume_spike_factor" default:"2.0" validate:"gt=0"`
}

func (r *ScanRequest) thresholds() model.AlertThresholds {
	return model.AlertThresholds{RSIUpper: r.RSIUpper, RSILower: r.RSILower, VolumeSpikeFactor: r.VolumeSpikeFactor}
}

// Handler serves the report API.
type Handler struct {
	Runner  Runner
	Reports ReportStore
	Tickers func() ([]string, error)
	Log     zerolog.Logger

	validate *validator.Validate
}

// NewHandler creates a Handler.
func NewHandler(r Runner, reports ReportStore, tickers func() ([]string, error), log zerolog.Logger) *Handler {
	return &Handler{Runner: r, Reports: reports, Tickers: tickers, Log: log, validate: validator.New()}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	g := e.Group("/api/v1")
	g.GET("/report", h.Report)
	g.POST("/scan", h.Scan)
}

func (h *Handler) Health(c echo.Context) error {
	return dataResponse(c, http.StatusOK, map[string]string{"status": "ok"})
}

// Report returns the most recent report.
func (h *Handler) Report(c echo.Context) error {
	rep := h.Reports.Last()
	if rep == nil {
		return dataResponse(c, http.StatusNotFound, "no scan has completed yet")
	}
	return dataResponse(c, http.StatusOK, rep)
}

// Scan runs a scan with the request's tickers and thresholds and returns its report.
// It does not send notifications.
func (h *Handler) Scan(c echo.Context) error {
	// defaults first so an explicit zero in the body is validated, not replaced
	req := &ScanRequest{}
	if err := defaults.Set(req); err != nil {
		return dataResponse(c, http.StatusInternalServerError, validationErrors(err))
	}
	if err := c.Bind(req); err != nil {
		return dataResponse(c, http.StatusBadRequest, validationErrors(err))
	}
	if err := h.validate.StructCtx(c.Request().Context(), req); err != nil {
		return dataResponse(c, http.StatusBadRequest, validationErrors(err))
	}

	var (
		symbols []string
		err     error
	)
	if len(req.Tickers) > 0 {
		symbols, err = collector.NormalizeTickers(req.Tickers)
	} else {
		symbols, err = h.Tickers()
	}
	if err != nil {
		return dataResponse(c, http.StatusBadRequest, []ValidationError{{Code: "ERR_TICKERS", Field: "tickers", Message: err.Error()}})
	}

	rep, err := h.Runner.Run(c.Request().Context(), symbols, req.thresholds())
	switch {
	case errors.Is(err, strategy.ErrInvalidThresholds):
		return dataResponse(c, http.StatusBadRequest, []ValidationError{{Code: "ERR_THRESHOLDS", Message: err.Error()}})
	case err != nil:
		h.Log.Error().Err(err).Msg("on-demand scan")
		return dataResponse(c, http.StatusInternalServerError, "scan failed")
	}
	h.Reports.SetLast(rep)
	return dataResponse(c, http.StatusOK, rep)
}
