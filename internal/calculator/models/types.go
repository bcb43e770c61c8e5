package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ============================================================
// Units
// ============================================================

type Unit string

const (
	UnitPx      Unit = "px"
	UnitRem     Unit = "rem"
	UnitEm      Unit = "em"
	UnitPercent Unit = "%"
	UnitVh      Unit = "vh"
	UnitVw      Unit = "vw"
	UnitPt      Unit = "pt"
	UnitCm      Unit = "cm"
	UnitMm      Unit = "mm"
	UnitIn      Unit = "in"
)

var ErrUnknownUnit = errors.New("unknown unit")

var unitLabels = map[Unit]string{
	UnitPx:      "Pixels (px)",
	UnitRem:     "REM",
	UnitEm:      "EM",
	UnitPercent: "Percentage (%)",
	UnitVh:      "Viewport Height (vh)",
	UnitVw:      "Viewport Width (vw)",
	UnitPt:      "Points (pt)",
	UnitCm:      "Centimeters (cm)",
	UnitMm:      "Millimeters (mm)",
	UnitIn:      "Inches (in)",
}

// AllUnits возвращает все поддерживаемые единицы в порядке отображения в UI.
func AllUnits() []Unit {
	return []Unit{UnitPx, UnitRem, UnitEm, UnitPercent, UnitVh, UnitVw, UnitPt, UnitCm, UnitMm, UnitIn}
}

// ParseUnit разбирает токен единицы. "percent" принимается как синоним "%".
func ParseUnit(s string) (Unit, error) {
	token := strings.ToLower(strings.TrimSpace(s))
	if token == "percent" {
		return UnitPercent, nil
	}
	u := Unit(token)
	if !u.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return u, nil
}

func (u Unit) Valid() bool {
	_, ok := unitLabels[u]
	return ok
}

func (u Unit) Label() string {
	if label, ok := unitLabels[u]; ok {
		return label
	}
	return string(u)
}

// ConversionContext задает внешние параметры для относительных единиц.
type ConversionContext struct {
	BaseFontSize   float64 `json:"baseFontSize"`
	ViewportWidth  float64 `json:"viewportWidth"`
	ViewportHeight float64 `json:"viewportHeight"`
}

func DefaultConversionContext() ConversionContext {
	return ConversionContext{
		BaseFontSize:   16,
		ViewportWidth:  1920,
		ViewportHeight: 1080,
	}
}

type ConversionRequest struct {
	Value float64 `json:"value"`
	From  Unit    `json:"from"`
	To    Unit    `json:"to"`
}

// ============================================================
// Operators
// ============================================================

type Operator string

const (
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "*"
	OpDivide   Operator = "/"
)

var ErrUnknownOperator = errors.New("unknown operator")

func ParseOperator(s string) (Operator, error) {
	op := Operator(strings.TrimSpace(s))
	if !op.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownOperator, s)
	}
	return op, nil
}

func (o Operator) Valid() bool {
	switch o {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

// ============================================================
// Calculator state & records
// ============================================================

// CalculatorState: снимок состояния калькулятора для рендеринга.
// Operation != nil означает, что PreviousValue был задан в момент выбора оператора.
type CalculatorState struct {
	Display          string    `json:"display"`
	PreviousValue    *float64  `json:"previousValue"`
	Operation        *Operator `json:"operation"`
	AwaitingNewEntry bool      `json:"awaitingNewEntry"`
	Pending          string    `json:"pending,omitempty"`
}

type CalculationRecord struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
	Unit       Unit   `json:"unit"`
}

type HistoryEntry struct {
	ID          string            `json:"id"`
	Calculation CalculationRecord `json:"calculation"`
	Timestamp   string            `json:"timestamp"`
	CreatedAt   time.Time         `json:"createdAt"`
	Result      string            `json:"result"`
}

// ============================================================
// Settings
// ============================================================

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
	ThemeAuto  Theme = "auto"
)

var ErrInvalidSettings = errors.New("invalid settings")

type Settings struct {
	Precision int   `json:"precision"`
	Unit      Unit  `json:"unit"`
	Theme     Theme `json:"theme"`
}

func DefaultSettings() Settings {
	return Settings{
		Precision: 4,
		Unit:      UnitPx,
		Theme:     ThemeDark,
	}
}

// Validate проверяет, что настройки входят в допустимые множества.
func (s Settings) Validate() error {
	switch s.Precision {
	case 2, 4, 6:
	default:
		return fmt.Errorf("%w: precision must be 2, 4 or 6, got %d", ErrInvalidSettings, s.Precision)
	}
	if !s.Unit.Valid() {
		return fmt.Errorf("%w: unit %q", ErrInvalidSettings, s.Unit)
	}
	switch s.Theme {
	case ThemeDark, ThemeLight, ThemeAuto:
	default:
		return fmt.Errorf("%w: theme %q", ErrInvalidSettings, s.Theme)
	}
	return nil
}
