package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// ============================================================
// History Handlers
// ============================================================

func (h *Handler) ListHistory(c fiber.Ctx) error {
	entries, err := h.session.History()
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"entries": entries,
		"count":   len(entries),
	})
}

func (h *Handler) ClearHistory(c fiber.Ctx) error {
	if err := h.session.ClearHistory(); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HistoryStats отдает блок статистики панели истории.
func (h *Handler) HistoryStats(c fiber.Ctx) error {
	stats, err := h.session.HistoryStats()
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(stats)
}
