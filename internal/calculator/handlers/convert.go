package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"sass-calc/internal/calculator/models"
	"sass-calc/internal/calculator/units"
)

// ============================================================
// Conversion Handlers
// ============================================================

type convertRequest struct {
	Value json.Number `json:"value"`
	From  string      `json:"from"`
	To    string      `json:"to"`
}

type swapRequest struct {
	Value  float64 `json:"value"`
	Result float64 `json:"result"`
	From   string  `json:"from"`
	To     string  `json:"to"`
}

type unitPayload struct {
	Value models.Unit `json:"value"`
	Label string      `json:"label"`
}

// ListUnits отдает список единиц для выпадающих списков UI.
func (h *Handler) ListUnits(c fiber.Ctx) error {
	all := models.AllUnits()
	out := make([]unitPayload, 0, len(all))
	for _, u := range all {
		out = append(out, unitPayload{Value: u, Label: u.Label()})
	}
	return c.JSON(fiber.Map{
		"units":   out,
		"context": h.session.ConversionContext(),
	})
}

// CommonConversions отдает справочную таблицу типовых конверсий.
func (h *Handler) CommonConversions(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"conversions": units.CommonConversions(h.session.ConversionContext()),
	})
}

// Convert переводит значение между единицами.
func (h *Handler) Convert(c fiber.Ctx) error {
	var req convertRequest
	if err := h.decodeBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	value, err := units.ParseValue(req.Value.String())
	if err != nil {
		return h.fail(c, err)
	}
	from, err := models.ParseUnit(req.From)
	if err != nil {
		return h.fail(c, err)
	}
	to, err := models.ParseUnit(req.To)
	if err != nil {
		return h.fail(c, err)
	}

	result, err := h.session.Convert(value, from, to)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(result)
}

// Swap меняет местами единицы и значения без пересчета.
func (h *Handler) Swap(c fiber.Ctx) error {
	var req swapRequest
	if err := h.decodeBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	from, err := models.ParseUnit(req.From)
	if err != nil {
		return h.fail(c, err)
	}
	to, err := models.ParseUnit(req.To)
	if err != nil {
		return h.fail(c, err)
	}

	swapped, result := units.Swap(models.ConversionRequest{Value: req.Value, From: from, To: to}, req.Result)
	return c.JSON(swapRequest{
		Value:  swapped.Value,
		Result: result,
		From:   string(swapped.From),
		To:     string(swapped.To),
	})
}
