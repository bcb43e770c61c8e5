package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v3"

	"sass-calc/internal/calculator/models"
	"sass-calc/internal/calculator/service"
)

// ============================================================
// Calculator Handlers
// ============================================================

type actionRequest struct {
	Digit    *int   `json:"digit"`
	Operator string `json:"operator"`
}

// GetState отдает текущее состояние калькулятора.
func (h *Handler) GetState(c fiber.Ctx) error {
	return c.JSON(h.session.State())
}

// Dispatch применяет одно событие UI к калькулятору.
func (h *Handler) Dispatch(c fiber.Ctx) error {
	var req actionRequest
	if len(c.Body()) > 0 {
		if err := h.decodeBody(c, &req); err != nil {
			return badRequest(c, err.Error())
		}
	}

	var (
		res service.CalculatorResult
		err error
	)

	switch action := c.Params("action"); action {
	case "digit":
		if req.Digit == nil {
			return badRequest(c, "digit required")
		}
		res, err = h.session.InputDigit(*req.Digit)
	case "decimal":
		res, err = h.session.InputDecimalPoint()
	case "operator":
		op, parseErr := models.ParseOperator(req.Operator)
		if parseErr != nil {
			return h.fail(c, parseErr)
		}
		res, err = h.session.ChooseOperator(op)
	case "equals":
		res, err = h.session.Equals()
	case "clear":
		res, err = h.session.Clear()
	case "negate":
		res, err = h.session.Negate()
	case "percent":
		res, err = h.session.Percent()
	case "sqrt":
		res, err = h.session.Sqrt()
	case "square":
		res, err = h.session.Square()
	default:
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "unknown action: " + action})
	}

	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res)
}
