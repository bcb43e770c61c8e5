package handlers

import (
	"github.com/gofiber/fiber/v3"

	"sass-calc/internal/calculator/models"
)

type settingsRequest struct {
	Precision int    `json:"precision"`
	Unit      string `json:"unit"`
	Theme     string `json:"theme"`
}

func (h *Handler) GetSettings(c fiber.Ctx) error {
	return c.JSON(h.session.Settings())
}

// UpdateSettings заменяет настройки целиком.
func (h *Handler) UpdateSettings(c fiber.Ctx) error {
	var req settingsRequest
	if err := h.decodeBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	unit, err := models.ParseUnit(req.Unit)
	if err != nil {
		return h.fail(c, err)
	}

	updated, err := h.session.UpdateSettings(models.Settings{
		Precision: req.Precision,
		Unit:      unit,
		Theme:     models.Theme(req.Theme),
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(updated)
}
