package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"sass-calc/internal/calculator/engine"
	"sass-calc/internal/calculator/models"
	"sass-calc/internal/calculator/service"
	"sass-calc/internal/calculator/units"
)

// ============================================================
// Calculator Handler
// ============================================================

type Handler struct {
	session *service.Session
	logger  *zap.Logger
}

func New(session *service.Session, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		session: session,
		logger:  logger,
	}
}

// Register вешает маршруты API на router.
func (h *Handler) Register(router fiber.Router) {
	router.Get("/units", h.ListUnits)
	router.Get("/units/common", h.CommonConversions)
	router.Post("/convert", h.Convert)
	router.Post("/convert/swap", h.Swap)

	router.Get("/calculator", h.GetState)
	router.Post("/calculator/:action", h.Dispatch)

	router.Get("/history", h.ListHistory)
	router.Delete("/history", h.ClearHistory)
	router.Get("/history/stats", h.HistoryStats)

	router.Get("/settings", h.GetSettings)
	router.Put("/settings", h.UpdateSettings)
}

// ============================================================
// Helpers
// ============================================================

func (h *Handler) decodeBody(c fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return errors.New("empty body")
	}
	if err := json.Unmarshal(c.Body(), dst); err != nil {
		h.logger.Debug("decode body", zap.String("path", c.Path()), zap.Error(err))
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// fail переводит ошибку ядра в HTTP-статус.
func (h *Handler) fail(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrUnknownUnit),
		errors.Is(err, models.ErrUnknownOperator),
		errors.Is(err, models.ErrInvalidSettings),
		errors.Is(err, engine.ErrInvalidDigit),
		errors.Is(err, units.ErrInvalidInput):
		return badRequest(c, err.Error())
	}

	h.logger.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}
