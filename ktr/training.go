package ktr

import (
	"fmt"
	"time"

	"github.com/sartorproj/goktr/timeseries"
)

// TrainingMeta is the immutable record describing one fit: the response, the
// date index and the training window. It is constructed once per fit call and
// read-only thereafter.
type TrainingMeta struct {
	NumObservations int
	Response        []float64
	ResponseCol     string
	DateCol         string
	Dates           []time.Time
	TrainingStart   time.Time
	TrainingEnd     time.Time
	Freq            time.Duration
}

// NewTrainingMeta derives training metadata from an input table. The date
// index must be strictly increasing with no duplicates and the response
// column must exist; the sampling frequency is inferred when freq is zero.
func NewTrainingMeta(table *timeseries.Table, responseCol, dateCol string, freq time.Duration) (*TrainingMeta, error) {
	dates := table.Dates()
	if len(dates) == 0 {
		return nil, fmt.Errorf("empty input table: %w", ErrData)
	}
	if !timeseries.IsOrdered(dates) {
		return nil, fmt.Errorf("%v: %w", timeseries.ErrUnorderedDates, ErrData)
	}
	response, err := table.Column(responseCol)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrConfiguration)
	}
	if freq <= 0 {
		freq, err = timeseries.InferFrequency(dates)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrData)
		}
	}

	resp := make([]float64, len(response))
	copy(resp, response)
	return &TrainingMeta{
		NumObservations: len(dates),
		Response:        resp,
		ResponseCol:     responseCol,
		DateCol:         dateCol,
		Dates:           dates,
		TrainingStart:   dates[0],
		TrainingEnd:     dates[len(dates)-1],
		Freq:            freq,
	}, nil
}

// TimePositions returns the normalized time positions of the training dates.
func (m *TrainingMeta) TimePositions() []float64 {
	return timeseries.TimePositions(m.NumObservations)
}

// startOffset resolves the zero-based time index a date array begins at: an
// exact calendar match when start falls within the training dates, otherwise
// counting continues from the number of observations.
func (m *TrainingMeta) startOffset(start time.Time) (int, error) {
	if start.After(m.TrainingEnd) {
		return m.NumObservations, nil
	}
	idx, ok := timeseries.IndexOf(m.Dates, start)
	if !ok {
		return 0, fmt.Errorf("date %s not found in training dates: %w",
			start.Format(time.RFC3339), ErrData)
	}
	return idx, nil
}
