package history

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"sass-calc/internal/calculator/models"
)

// ============================================================
// History Ledger
// ============================================================

const (
	DefaultCapacity        = 50
	DefaultTimestampLayout = "1/2/2006, 3:04:05 PM"
)

// Store хранит записи в порядке "новые первыми".
type Store interface {
	// Prepend добавляет запись в начало и обрезает последовательность до limit.
	Prepend(entry models.HistoryEntry, limit int) error
	List() ([]models.HistoryEntry, error)
	Clear() error
	Count() (int, error)
}

type Option func(*Ledger)

func WithCapacity(n int) Option {
	return func(l *Ledger) {
		if n > 0 {
			l.capacity = n
		}
	}
}

func WithStore(s Store) Option {
	return func(l *Ledger) {
		if s != nil {
			l.store = s
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(l *Ledger) {
		if fn != nil {
			l.newID = fn
		}
	}
}

func WithClock(fn func() time.Time) Option {
	return func(l *Ledger) {
		if fn != nil {
			l.now = fn
		}
	}
}

func WithTimestampLayout(layout string) Option {
	return func(l *Ledger) {
		if layout != "" {
			l.layout = layout
		}
	}
}

// Ledger: ограниченный журнал вычислений, единственный, кто меняет Store.
type Ledger struct {
	store    Store
	capacity int
	newID    func() string
	now      func() time.Time
	layout   string
}

func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		store:    NewMemoryStore(),
		capacity: DefaultCapacity,
		newID:    newTimeOrderedID,
		now:      time.Now,
		layout:   DefaultTimestampLayout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append создает запись и кладет ее в начало журнала.
func (l *Ledger) Append(record models.CalculationRecord) (models.HistoryEntry, error) {
	createdAt := l.now()
	entry := models.HistoryEntry{
		ID:          l.newID(),
		Calculation: record,
		Timestamp:   createdAt.Format(l.layout),
		CreatedAt:   createdAt,
		Result:      record.Result,
	}
	if err := l.store.Prepend(entry, l.capacity); err != nil {
		return models.HistoryEntry{}, fmt.Errorf("append history entry: %w", err)
	}
	return entry, nil
}

func (l *Ledger) List() ([]models.HistoryEntry, error) {
	entries, err := l.store.List()
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

func (l *Ledger) Clear() error {
	if err := l.store.Clear(); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (l *Ledger) Len() (int, error) {
	return l.store.Count()
}

func (l *Ledger) Capacity() int {
	return l.capacity
}

// ============================================================
// Statistics
// ============================================================

type Stats struct {
	Total         int    `json:"total"`
	LastSession   string `json:"lastSession"`
	AveragePerDay int    `json:"averagePerDay"`
}

// Stats повторяет блок статистики панели истории.
func (l *Ledger) Stats() (Stats, error) {
	entries, err := l.List()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Total:       len(entries),
		LastSession: "N/A",
	}
	if len(entries) > 0 {
		date, _, _ := strings.Cut(entries[0].Timestamp, ",")
		stats.LastSession = date
	}
	stats.AveragePerDay = int(math.Round(float64(stats.Total) / 7))
	return stats, nil
}

// newTimeOrderedID выдает UUIDv7: идентификаторы растут в пределах процесса.
func newTimeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
