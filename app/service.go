package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rav6044/smartpark/config"
	"github.com/rav6044/smartpark/core/events"
	"github.com/rav6044/smartpark/core/ledger"
	coremetrics "github.com/rav6044/smartpark/core/metrics"
	"github.com/rav6044/smartpark/core/parking"
	"github.com/rav6044/smartpark/infra/console"
	"github.com/rav6044/smartpark/infra/logger"
	"github.com/rav6044/smartpark/infra/metrics"
	"github.com/rav6044/smartpark/internal/eventbus"
)

// Service wires the lot manager, console front-end and observability.
type Service struct {
	Manager *parking.Manager
	console *console.Console
	bus     *eventbus.Bus[events.Event]
	sink    coremetrics.MetricsSink
	log     logger.Logger

	promEnabled bool
	promAddr    string
}

// New creates a Service from the configuration, reading from in and
// rendering to out.
func New(cfg *config.Config, in io.Reader, out io.Writer) (*Service, error) {
	logger.SetGlobalLevel(cfg.Logging.Level)
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	registry, err := parking.NewRegistry(parking.RegistryConfig{
		Capacities: cfg.Capacities(),
		Shuffle:    cfg.Lot.Shuffle,
		Seed:       cfg.Lot.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}

	bus := eventbus.New[events.Event]()
	mgr, err := parking.NewManager(registry, parking.PriorityAllocator{}, cfg.PricingTable(), ledger.New(), logger.New("parking"), sink, bus)
	if err != nil {
		return nil, fmt.Errorf("manager: %w", err)
	}

	return &Service{
		Manager:     mgr,
		console:     console.New(in, out, mgr, logger.New("console")),
		bus:         bus,
		sink:        sink,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promAddr:    cfg.Metrics.PrometheusAddr,
	}, nil
}

// NewDefault creates a Service bound to the process streams.
func NewDefault(cfg *config.Config) (*Service, error) {
	return New(cfg, os.Stdin, os.Stdout)
}

// Run starts the observability side and blocks in the console loop until
// the user quits or the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	metrics.StartOccupancyCollector(ctx, s.bus, s.sink)
	go s.auditEvents(ctx)
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	return s.console.Run(ctx)
}

// auditEvents logs every lot event at debug level.
func (s *Service) auditEvents(ctx context.Context) {
	sub := s.bus.Subscribe()
	defer s.bus.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			switch e := ev.(type) {
			case events.VehicleEntered:
				s.log.Debugw("vehicle entered", map[string]any{"vehicle": e.VehicleID, "slot": e.SlotID, "vip": e.VIP})
			case events.VehicleExited:
				s.log.Debugw("vehicle exited", map[string]any{"vehicle": e.VehicleID, "slot": e.SlotID, "fee": e.Fee})
			case events.EntryRejected:
				s.log.Debugw("entry rejected", map[string]any{"vehicle": e.VehicleID, "reason": e.Err.Error()})
			}
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error { return s.Manager.Close() }
