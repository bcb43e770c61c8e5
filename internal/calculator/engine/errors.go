package engine

import (
	"errors"
	"fmt"
	"math"

	"sass-calc/internal/calculator/models"
)

var (
	ErrInvalidDigit    = errors.New("digit must be in range 0-9")
	ErrInvalidOperator = models.ErrUnknownOperator

	ErrDivisionByZero = errors.New("division by zero")
	ErrNotANumber     = errors.New("not a number")
)

// ArithmeticError описывает вырожденный результат операции.
// Калькулятор продолжает показывать NaN/Infinity; ошибка лишь сопровождает результат.
type ArithmeticError struct {
	Kind       error
	Expression string
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Expression)
}

func (e *ArithmeticError) Unwrap() error {
	return e.Kind
}

// Classify возвращает *ArithmeticError, если result вырожден, иначе nil.
func Classify(expression string, divisor float64, op models.Operator, result float64) error {
	switch {
	case op == models.OpDivide && divisor == 0:
		return &ArithmeticError{Kind: ErrDivisionByZero, Expression: expression}
	case math.IsNaN(result):
		return &ArithmeticError{Kind: ErrNotANumber, Expression: expression}
	}
	return nil
}
