package timeseries

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrMissingColumn indicates a requested column name absent from the table.
	ErrMissingColumn = errors.New("column not found in table")
	// ErrColumnExists indicates a duplicate column name.
	ErrColumnExists = errors.New("column already exists in table")
	// ErrColumnLength indicates a column whose length differs from the date index.
	ErrColumnLength = errors.New("column has different length than date index")
)

// Table is a column-oriented container with a shared date index, used as the
// input shape for model fitting and prediction: one date column plus any
// number of named numeric columns.
type Table struct {
	dates   []time.Time
	columns map[string][]float64
	order   []string
}

// NewTable creates a table over the given date index.
func NewTable(dates []time.Time) *Table {
	d := make([]time.Time, len(dates))
	copy(d, dates)
	return &Table{
		dates:   d,
		columns: make(map[string][]float64),
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.dates)
}

// Dates returns a copy of the date index.
func (t *Table) Dates() []time.Time {
	dst := make([]time.Time, len(t.dates))
	copy(dst, t.dates)
	return dst
}

// StartDate returns the first date of the index.
func (t *Table) StartDate() time.Time {
	return t.dates[0]
}

// EndDate returns the last date of the index.
func (t *Table) EndDate() time.Time {
	return t.dates[len(t.dates)-1]
}

// AddColumn attaches a named numeric column. The column must match the date
// index length and must not already exist.
func (t *Table) AddColumn(name string, values []float64) error {
	if _, ok := t.columns[name]; ok {
		return fmt.Errorf("%q: %w", name, ErrColumnExists)
	}
	if len(values) != len(t.dates) {
		return fmt.Errorf("%q has %d values for %d dates: %w",
			name, len(values), len(t.dates), ErrColumnLength)
	}
	dst := make([]float64, len(values))
	copy(dst, values)
	t.columns[name] = dst
	t.order = append(t.order, name)
	return nil
}

// Column returns the named column, or an error if it does not exist.
func (t *Table) Column(name string) ([]float64, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrMissingColumn)
	}
	return col, nil
}

// HasColumns reports whether every named column exists.
func (t *Table) HasColumns(names []string) bool {
	for _, name := range names {
		if _, ok := t.columns[name]; !ok {
			return false
		}
	}
	return true
}

// ColumnNames returns column names in insertion order.
func (t *Table) ColumnNames() []string {
	dst := make([]string, len(t.order))
	copy(dst, t.order)
	return dst
}

// Matrix selects the named columns into a dense rows x len(names) matrix.
// A missing column is an error.
func (t *Table) Matrix(names []string) (*mat.Dense, error) {
	m := mat.NewDense(len(t.dates), len(names), nil)
	for j, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		for i, v := range col {
			m.Set(i, j, v)
		}
	}
	return m, nil
}
