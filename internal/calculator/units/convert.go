package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"sass-calc/internal/calculator/models"
)

// ============================================================
// Conversion Engine
// ============================================================

const (
	pxPerPt = 1.333
	pxPerCm = 37.795
	pxPerMm = 3.7795
	pxPerIn = 96.0
)

var ErrInvalidInput = errors.New("invalid numeric input")

// Convert переводит value из from в to через пиксели.
// Для from == to значение возвращается без изменений.
func Convert(value float64, from, to models.Unit, ctx models.ConversionContext) float64 {
	if from == to {
		return value
	}
	return FromPixels(ToPixels(value, from, ctx), to, ctx)
}

// ToPixels: первая стадия: from -> px.
func ToPixels(value float64, from models.Unit, ctx models.ConversionContext) float64 {
	return value * factor(from, ctx)
}

// FromPixels: вторая стадия: px -> to, точная обратная к ToPixels.
func FromPixels(pixels float64, to models.Unit, ctx models.ConversionContext) float64 {
	return pixels / factor(to, ctx)
}

// factor возвращает количество пикселей в одной единице unit.
// Неизвестная единица трактуется как px.
func factor(unit models.Unit, ctx models.ConversionContext) float64 {
	switch unit {
	case models.UnitRem, models.UnitEm:
		return ctx.BaseFontSize
	case models.UnitPercent:
		return ctx.BaseFontSize / 100
	case models.UnitVh:
		return ctx.ViewportHeight / 100
	case models.UnitVw:
		return ctx.ViewportWidth / 100
	case models.UnitPt:
		return pxPerPt
	case models.UnitCm:
		return pxPerCm
	case models.UnitMm:
		return pxPerMm
	case models.UnitIn:
		return pxPerIn
	default:
		return 1
	}
}

// ============================================================
// Common conversions
// ============================================================

// Preset: готовая пара для справочной таблицы UI.
type Preset struct {
	Value  float64     `json:"value"`
	From   models.Unit `json:"from"`
	To     models.Unit `json:"to"`
	Result float64     `json:"result"`
}

var commonPresets = []models.ConversionRequest{
	{Value: 16, From: models.UnitPx, To: models.UnitRem},
	{Value: 24, From: models.UnitPx, To: models.UnitRem},
	{Value: 8, From: models.UnitPx, To: models.UnitRem},
	{Value: 32, From: models.UnitPx, To: models.UnitRem},
	{Value: 100, From: models.UnitPercent, To: models.UnitEm},
	{Value: 50, From: models.UnitPercent, To: models.UnitEm},
}

// CommonConversions считает таблицу типовых конверсий в заданном контексте.
func CommonConversions(ctx models.ConversionContext) []Preset {
	out := make([]Preset, 0, len(commonPresets))
	for _, p := range commonPresets {
		out = append(out, Preset{
			Value:  p.Value,
			From:   p.From,
			To:     p.To,
			Result: Convert(p.Value, p.From, p.To, ctx),
		})
	}
	return out
}

// ============================================================
// Swap & input parsing
// ============================================================

// Swap меняет местами единицы и значения (вход/результат) без пересчета.
func Swap(req models.ConversionRequest, result float64) (models.ConversionRequest, float64) {
	return models.ConversionRequest{
		Value: result,
		From:  req.To,
		To:    req.From,
	}, req.Value
}

// ParseValue разбирает пользовательский ввод для конвертера.
// В отличие от дисплея калькулятора, нечисловой ввод отклоняется.
func ParseValue(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidInput)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInput, text)
	}
	return v, nil
}
