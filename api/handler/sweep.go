package handler

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/tasknotify/domain"
	"github.com/fastygo/tasknotify/pkg/httpcontext"
	appLogger "github.com/fastygo/tasknotify/pkg/logger"
)

// SweepRunner runs one overdue notification sweep.
type SweepRunner interface {
	Run(ctx context.Context) (*domain.SweepResult, error)
}

type SweepHandler struct {
	baseHandler
	runner SweepRunner
}

func NewSweepHandler(runner SweepRunner, adapter *httpcontext.Adapter, logger *zap.Logger) *SweepHandler {
	return &SweepHandler{
		baseHandler: newBaseHandler(adapter, logger),
		runner:      runner,
	}
}

// @Summary Run an overdue task sweep now
// @Tags sweeps
// @Produce json
// @Success 200 {object} transport.Envelope
// @Router /api/v1/sweeps [post]
func (h *SweepHandler) Trigger(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	logger := appLogger.WithRequestID(stdCtx, h.logger)
	if subject := httpcontext.Subject(stdCtx); subject != "" {
		logger = logger.With(zap.String("subject", subject))
	}
	logger.Info("manual sweep requested")

	result, err := h.runner.Run(stdCtx)
	if err != nil {
		logger.Error("manual sweep failed", zap.Error(err))
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}
