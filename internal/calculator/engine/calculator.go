package engine

import (
	"fmt"
	"math"
	"strings"

	"sass-calc/internal/calculator/models"
)

// ============================================================
// Calculator State Machine
// ============================================================

const DefaultMaxDisplayLength = 64

// SettingsReader отдает текущие настройки. Калькулятор их только читает.
type SettingsReader func() models.Settings

type Option func(*Calculator)

// WithOnCalculation задает callback, вызываемый после каждого успешного Equals.
func WithOnCalculation(fn func(models.CalculationRecord)) Option {
	return func(c *Calculator) {
		c.onCalculation = fn
	}
}

// WithMaxDisplayLength ограничивает длину вводимого числа. 0 снимает ограничение.
func WithMaxDisplayLength(n int) Option {
	return func(c *Calculator) {
		c.maxDisplay = n
	}
}

// Calculator: единственный владелец CalculatorState.
// Вычисление идет слева направо без приоритета операторов: 2 + 3 * 4 = 20.
type Calculator struct {
	settings      SettingsReader
	onCalculation func(models.CalculationRecord)
	maxDisplay    int

	display     string
	previous    float64
	hasPrevious bool
	operation   models.Operator
	awaiting    bool

	lastErr error
}

func New(settings SettingsReader, opts ...Option) *Calculator {
	if settings == nil {
		settings = models.DefaultSettings
	}
	c := &Calculator{
		settings:   settings,
		maxDisplay: DefaultMaxDisplayLength,
		display:    "0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State возвращает снимок текущего состояния.
func (c *Calculator) State() models.CalculatorState {
	state := models.CalculatorState{
		Display:          c.display,
		AwaitingNewEntry: c.awaiting,
	}
	if c.hasPrevious {
		prev := c.previous
		state.PreviousValue = &prev
	}
	if c.operation != "" {
		op := c.operation
		state.Operation = &op
		if c.hasPrevious {
			state.Pending = FormatNumber(c.previous) + " " + string(op)
		}
	}
	return state
}

// Err возвращает ArithmeticError последней операции, если результат вырожден.
func (c *Calculator) Err() error {
	return c.lastErr
}

// ============================================================
// Entry
// ============================================================

func (c *Calculator) InputDigit(d int) (models.CalculatorState, error) {
	if d < 0 || d > 9 {
		return c.State(), fmt.Errorf("%w: %d", ErrInvalidDigit, d)
	}
	c.lastErr = nil
	digit := string(rune('0' + d))

	switch {
	case c.awaiting:
		c.display = digit
		c.awaiting = false
	case c.display == "0":
		c.display = digit
	case c.maxDisplay > 0 && len(c.display) >= c.maxDisplay:
		// дисплей заполнен, ввод игнорируется
	default:
		c.display += digit
	}
	return c.State(), nil
}

func (c *Calculator) InputDecimalPoint() models.CalculatorState {
	c.lastErr = nil
	switch {
	case c.awaiting:
		c.display = "0."
		c.awaiting = false
	case !strings.Contains(c.display, "."):
		c.display += "."
	}
	return c.State()
}

// ============================================================
// Binary operations
// ============================================================

// ChooseOperator запоминает оператор. Если оператор уже ожидает, сначала
// сворачивает его с текущим вводом.
func (c *Calculator) ChooseOperator(op models.Operator) (models.CalculatorState, error) {
	if !op.Valid() {
		return c.State(), fmt.Errorf("%w: %q", ErrInvalidOperator, op)
	}
	c.lastErr = nil
	input := ParseDisplay(c.display)

	switch {
	case !c.hasPrevious:
		c.previous = input
		c.hasPrevious = true
	case c.operation != "":
		result := apply(c.previous, input, c.operation)
		c.lastErr = Classify(c.expression(input), input, c.operation, result)
		c.display = FormatFixed(result, c.precision())
		c.previous = ParseDisplay(c.display)
	}

	c.operation = op
	c.awaiting = true
	return c.State(), nil
}

// Equals завершает вычисление и отдает запись в onCalculation.
// Без ожидающего оператора ничего не делает.
func (c *Calculator) Equals() models.CalculatorState {
	if !c.hasPrevious || c.operation == "" {
		return c.State()
	}

	settings := c.settings()
	input := ParseDisplay(c.display)
	expression := c.expression(input)
	value := apply(c.previous, input, c.operation)
	result := FormatFixed(value, settings.Precision)

	c.lastErr = Classify(expression, input, c.operation, value)
	if c.onCalculation != nil {
		c.onCalculation(models.CalculationRecord{
			Expression: expression,
			Result:     result,
			Unit:       settings.Unit,
		})
	}

	c.display = result
	c.previous = 0
	c.hasPrevious = false
	c.operation = ""
	c.awaiting = true
	return c.State()
}

// Clear возвращает калькулятор в исходное состояние.
func (c *Calculator) Clear() models.CalculatorState {
	c.display = "0"
	c.previous = 0
	c.hasPrevious = false
	c.operation = ""
	c.awaiting = false
	c.lastErr = nil
	return c.State()
}

// ============================================================
// Unary operations
// ============================================================

func (c *Calculator) Negate() models.CalculatorState {
	return c.unary("negate", func(v float64) float64 { return v * -1 })
}

func (c *Calculator) Percent() models.CalculatorState {
	return c.unary("percent", func(v float64) float64 { return v / 100 })
}

func (c *Calculator) Sqrt() models.CalculatorState {
	return c.unary("sqrt", math.Sqrt)
}

func (c *Calculator) Square() models.CalculatorState {
	return c.unary("square", func(v float64) float64 { return math.Pow(v, 2) })
}

func (c *Calculator) unary(name string, fn func(float64) float64) models.CalculatorState {
	input := ParseDisplay(c.display)
	result := fn(input)

	c.lastErr = nil
	if math.IsNaN(result) {
		c.lastErr = &ArithmeticError{Kind: ErrNotANumber, Expression: name + "(" + FormatNumber(input) + ")"}
	}
	c.display = FormatNumber(result)
	return c.State()
}

// ============================================================
// Helpers
// ============================================================

func apply(a, b float64, op models.Operator) float64 {
	switch op {
	case models.OpAdd:
		return a + b
	case models.OpSubtract:
		return a - b
	case models.OpMultiply:
		return a * b
	case models.OpDivide:
		return a / b
	default:
		return b
	}
}

func (c *Calculator) expression(input float64) string {
	return FormatNumber(c.previous) + " " + string(c.operation) + " " + FormatNumber(input)
}

func (c *Calculator) precision() int {
	return c.settings().Precision
}
