package metrics

import (
	coremetrics "github.com/rav6044/smartpark/core/metrics"
	"github.com/rav6044/smartpark/core/model"
)

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordEntry forwards the record to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordEntry(r coremetrics.EntryRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordEntry(r); err != nil {
			return err
		}
	}
	return nil
}

// RecordExit forwards the record to all sinks.
func (m *MultiSink) RecordExit(r coremetrics.ExitRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordExit(r); err != nil {
			return err
		}
	}
	return nil
}

// RecordOccupancy forwards occupancy levels to sinks that support them.
func (m *MultiSink) RecordOccupancy(c model.Category, occupied, capacity int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.OccupancyRecorder); ok {
			if err := rec.RecordOccupancy(c, occupied, capacity); err != nil {
				return err
			}
		}
	}
	return nil
}
