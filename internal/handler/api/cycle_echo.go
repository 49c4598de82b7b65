package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	models "Hermes/internal/domain/models"
	domsvc "Hermes/internal/domain/service"
	"Hermes/internal/service/metrics"
	"Hermes/internal/service/ratelimit"
	"Hermes/internal/service/stream"
	"Hermes/internal/usecase"
	xhttp "Hermes/pkg/http"
	xlogger "Hermes/pkg/logger"

	"github.com/labstack/echo/v4"
)

// NoTradeMessage is returned when a cycle ends without a trade plan.
const NoTradeMessage = "No trade plan generated for this cycle."

// CycleRunner runs one decision cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context, p usecase.RunCycleParams) (*models.CycleResult, error)
}

// CycleEchoHandler exposes the decision engine over HTTP.
type CycleEchoHandler struct {
	logger *xlogger.Logger
	runner CycleRunner
	hub    *stream.Hub
	rl     *ratelimit.Limiter
}

// NewCycleEchoHandler builds the handler. hub and rl are optional.
func NewCycleEchoHandler(logger *xlogger.Logger, runner CycleRunner, hub *stream.Hub, rl *ratelimit.Limiter) *CycleEchoHandler {
	metrics.Register()
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &CycleEchoHandler{logger: logger, runner: runner, hub: hub, rl: rl}
}

func (h *CycleEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	g := e.Group("/btc")
	g.POST("/run_cycle", h.RunCycle)
	if h.hub != nil {
		g.GET("/stream", h.Stream)
	}
}

func (h *CycleEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *CycleEchoHandler) RunCycle(c echo.Context) error {
	const endpoint = "run_cycle"
	start := time.Now()
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if h.rl != nil && !h.rl.Allow(c.RealIP()) {
		metrics.APIErrors.WithLabelValues(endpoint, "429").Inc()
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many cycle requests"))
	}

	req := &models.RunCycleRequest{}
	if verr := xhttp.ReadAndValidateQuery(c, req); verr != nil {
		metrics.APIErrors.WithLabelValues(endpoint, "400").Inc()
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.runner.RunCycle(c.Request().Context(), usecase.RunCycleParams{
		Env:            req.Env,
		HorizonMinutes: req.HorizonMinutes,
	})
	if err != nil {
		appErr := toAppError(err, req)
		metrics.APIErrors.WithLabelValues(endpoint, strconv.Itoa(appErr.Status)).Inc()
		h.logger.Error("run cycle failed",
			xlogger.String("env", req.Env),
			xlogger.Int("horizon_minutes", req.HorizonMinutes),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, appErr)
	}

	out := models.RunCycleResponse{
		TradeExecuted: res.TradeExecuted(),
		ExecutedTrade: res.Trade,
		CycleID:       res.CycleID,
	}
	if !out.TradeExecuted {
		out.Message = NoTradeMessage
	}
	return xhttp.SuccessResponse(c, out)
}

// Stream upgrades to a websocket that receives every scheduled cycle result.
func (h *CycleEchoHandler) Stream(c echo.Context) error {
	if err := h.hub.ServeWS(c.Response(), c.Request()); err != nil {
		h.logger.Warn("stream upgrade failed", xlogger.Error(err))
	}
	return nil
}

func toAppError(err error, req *models.RunCycleRequest) *xhttp.AppError {
	var appErr *xhttp.AppError
	switch {
	case errors.Is(err, domsvc.ErrConfiguration):
		appErr = xhttp.BadRequestError(err.Error())
	case errors.Is(err, domsvc.ErrNotSupported), errors.Is(err, domsvc.ErrNotImplemented):
		appErr = xhttp.NotImplementedError(err.Error())
	default:
		appErr = xhttp.InternalError("cycle failed")
	}
	return appErr.
		WithParam("env", req.Env).
		WithParam("horizon_minutes", req.HorizonMinutes).
		WithError(err)
}
