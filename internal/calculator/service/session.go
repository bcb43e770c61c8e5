package service

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"sass-calc/internal/calculator/engine"
	"sass-calc/internal/calculator/history"
	"sass-calc/internal/calculator/models"
	"sass-calc/internal/calculator/units"
)

// ============================================================
// Session
// ============================================================

// Session хранит состояние одного пользователя (калькулятор, журнал, настройки).
// Все события выполняются под одним мьютексом, по одному до конца.
type Session struct {
	mu sync.Mutex

	settings   models.Settings
	conversion models.ConversionContext

	calc   *engine.Calculator
	ledger *history.Ledger
	logger *zap.Logger

	lastEntry *models.HistoryEntry
	appendErr error
}

// CalculatorResult: состояние для рендеринга плюс побочные результаты события.
type CalculatorResult struct {
	models.CalculatorState
	Warning string               `json:"warning,omitempty"`
	Entry   *models.HistoryEntry `json:"entry,omitempty"`
}

type ConversionResult struct {
	Value     float64     `json:"value"`
	From      models.Unit `json:"from"`
	To        models.Unit `json:"to"`
	Result    float64     `json:"result"`
	Formatted string      `json:"formatted"`
}

func NewSession(settings models.Settings, conversion models.ConversionContext, ledger *history.Ledger, logger *zap.Logger) (*Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if ledger == nil {
		ledger = history.NewLedger()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		settings:   settings,
		conversion: conversion,
		ledger:     ledger,
		logger:     logger,
	}
	s.calc = engine.New(
		func() models.Settings { return s.settings },
		engine.WithOnCalculation(s.record),
	)
	return s, nil
}

// record вызывается калькулятором под s.mu.
func (s *Session) record(rec models.CalculationRecord) {
	entry, err := s.ledger.Append(rec)
	if err != nil {
		s.appendErr = err
		s.logger.Error("history append failed", zap.Error(err), zap.String("expression", rec.Expression))
		return
	}
	s.lastEntry = &entry
	s.logger.Debug("calculation recorded",
		zap.String("id", entry.ID),
		zap.String("expression", rec.Expression),
		zap.String("result", rec.Result),
	)
}

// ============================================================
// Calculator events
// ============================================================

func (s *Session) State() CalculatorResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CalculatorResult{CalculatorState: s.calc.State()}
}

func (s *Session) InputDigit(d int) (CalculatorResult, error) {
	return s.dispatchErr(func() (models.CalculatorState, error) { return s.calc.InputDigit(d) })
}

func (s *Session) InputDecimalPoint() (CalculatorResult, error) {
	return s.dispatch(s.calc.InputDecimalPoint)
}

func (s *Session) ChooseOperator(op models.Operator) (CalculatorResult, error) {
	return s.dispatchErr(func() (models.CalculatorState, error) { return s.calc.ChooseOperator(op) })
}

func (s *Session) Equals() (CalculatorResult, error) {
	return s.dispatch(s.calc.Equals)
}

func (s *Session) Clear() (CalculatorResult, error) {
	return s.dispatch(s.calc.Clear)
}

func (s *Session) Negate() (CalculatorResult, error) {
	return s.dispatch(s.calc.Negate)
}

func (s *Session) Percent() (CalculatorResult, error) {
	return s.dispatch(s.calc.Percent)
}

func (s *Session) Sqrt() (CalculatorResult, error) {
	return s.dispatch(s.calc.Sqrt)
}

func (s *Session) Square() (CalculatorResult, error) {
	return s.dispatch(s.calc.Square)
}

func (s *Session) dispatch(fn func() models.CalculatorState) (CalculatorResult, error) {
	return s.dispatchErr(func() (models.CalculatorState, error) { return fn(), nil })
}

func (s *Session) dispatchErr(fn func() (models.CalculatorState, error)) (CalculatorResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastEntry, s.appendErr = nil, nil
	state, err := fn()
	if err != nil {
		return CalculatorResult{CalculatorState: state}, err
	}

	result := CalculatorResult{CalculatorState: state, Entry: s.lastEntry}
	if s.appendErr != nil {
		return result, s.appendErr
	}

	var arithErr *engine.ArithmeticError
	if errors.As(s.calc.Err(), &arithErr) {
		result.Warning = arithErr.Error()
		s.logger.Info("degenerate arithmetic result", zap.Error(arithErr))
	}
	return result, nil
}

// ============================================================
// Conversion
// ============================================================

func (s *Session) Convert(value float64, from, to models.Unit) (ConversionResult, error) {
	if !from.Valid() {
		return ConversionResult{}, fmt.Errorf("%w: %q", models.ErrUnknownUnit, from)
	}
	if !to.Valid() {
		return ConversionResult{}, fmt.Errorf("%w: %q", models.ErrUnknownUnit, to)
	}

	s.mu.Lock()
	ctx, precision := s.conversion, s.settings.Precision
	s.mu.Unlock()

	result := units.Convert(value, from, to, ctx)
	return ConversionResult{
		Value:     value,
		From:      from,
		To:        to,
		Result:    result,
		Formatted: engine.FormatFixed(result, precision),
	}, nil
}

func (s *Session) ConversionContext() models.ConversionContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversion
}

// ============================================================
// History & settings
// ============================================================

func (s *Session) History() ([]models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.List()
}

func (s *Session) ClearHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ledger.Clear(); err != nil {
		return err
	}
	s.logger.Info("history cleared")
	return nil
}

func (s *Session) HistoryStats() (history.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Stats()
}

func (s *Session) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings заменяет настройки целиком. Ядро только читает их.
func (s *Session) UpdateSettings(settings models.Settings) (models.Settings, error) {
	if err := settings.Validate(); err != nil {
		return models.Settings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.logger.Info("settings updated",
		zap.Int("precision", settings.Precision),
		zap.String("unit", string(settings.Unit)),
		zap.String("theme", string(settings.Theme)),
	)
	return s.settings, nil
}
