package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/rav6044/smartpark/core/metrics"
	"github.com/rav6044/smartpark/core/model"
)

// PromSink records lot activity in Prometheus metrics.
type PromSink struct {
	entries   *prometheus.CounterVec
	exits     *prometheus.CounterVec
	revenue   *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	occupancy *prometheus.GaugeVec
}

// NewPromSink registers lot metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusAddr.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	entries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "parking_entries_total",
		Help: "Total number of vehicle entries",
	}, []string{"category", "slot_category", "vip"})
	exits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "parking_exits_total",
		Help: "Total number of vehicle exits",
	}, []string{"category"})
	revenue := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "parking_revenue_total",
		Help: "Accumulated fees by billed category",
	}, []string{"category"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "parking_billed_hours",
		Help:    "Billed parking duration in hours",
		Buckets: []float64{1, 2, 3, 4, 6, 8, 12, 24},
	}, []string{"category"})
	occupancy := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "parking_occupied_slots",
		Help: "Currently occupied slots per category",
	}, []string{"category"})

	s := &PromSink{}
	if err := register(reg, entries, &s.entries); err != nil {
		return nil, err
	}
	if err := register(reg, exits, &s.exits); err != nil {
		return nil, err
	}
	if err := register(reg, revenue, &s.revenue); err != nil {
		return nil, err
	}
	if err := registerHist(reg, duration, &s.duration); err != nil {
		return nil, err
	}
	if err := registerGauge(reg, occupancy, &s.occupancy); err != nil {
		return nil, err
	}
	return s, nil
}

func register(reg prometheus.Registerer, c *prometheus.CounterVec, out **prometheus.CounterVec) error {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			c = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return err
		}
	}
	*out = c
	return nil
}

func registerHist(reg prometheus.Registerer, h *prometheus.HistogramVec, out **prometheus.HistogramVec) error {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			h = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return err
		}
	}
	*out = h
	return nil
}

func registerGauge(reg prometheus.Registerer, g *prometheus.GaugeVec, out **prometheus.GaugeVec) error {
	if err := reg.Register(g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			g = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return err
		}
	}
	*out = g
	return nil
}

// RecordEntry increments the entry counter.
func (s *PromSink) RecordEntry(r coremetrics.EntryRecord) error {
	s.entries.WithLabelValues(r.Requested.String(), r.SlotCategory.String(), strconv.FormatBool(r.VIP)).Inc()
	return nil
}

// RecordExit increments the exit and revenue counters and observes the
// billed duration.
func (s *PromSink) RecordExit(r coremetrics.ExitRecord) error {
	cat := r.Category.String()
	s.exits.WithLabelValues(cat).Inc()
	s.revenue.WithLabelValues(cat).Add(r.Fee)
	s.duration.WithLabelValues(cat).Observe(float64(r.BilledHours))
	return nil
}

// RecordOccupancy sets the per-category occupancy gauge.
func (s *PromSink) RecordOccupancy(c model.Category, occupied, _ int) error {
	s.occupancy.WithLabelValues(c.String()).Set(float64(occupied))
	return nil
}
