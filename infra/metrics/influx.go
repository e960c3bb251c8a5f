package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/rav6044/smartpark/core/metrics"
	"github.com/rav6044/smartpark/core/model"
	"github.com/rav6044/smartpark/infra/logger"
)

// InfluxSink writes lot events to an InfluxDB instance using the official
// client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	client := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns
// a NopSink if the health check fails, so a missing server degrades
// silently.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordEntry writes the slot assignment as a point.
func (s *InfluxSink) RecordEntry(r coremetrics.EntryRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("parking_entry").
		AddTag("vehicle_id", r.VehicleID).
		AddTag("category", r.Requested.String()).
		AddTag("slot_id", r.SlotID).
		AddTag("slot_category", r.SlotCategory.String()).
		AddTag("vip", strconv.FormatBool(r.VIP)).
		AddField("count", 1).
		SetTime(r.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordExit writes the completed visit as a point.
func (s *InfluxSink) RecordExit(r coremetrics.ExitRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("parking_exit").
		AddTag("vehicle_id", r.VehicleID).
		AddTag("category", r.Category.String()).
		AddTag("slot_id", r.SlotID).
		AddTag("receipt_id", r.ReceiptID).
		AddField("billed_hours", r.BilledHours).
		AddField("fee", r.Fee).
		SetTime(r.ExitTime)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordOccupancy writes the per-category occupancy level.
func (s *InfluxSink) RecordOccupancy(c model.Category, occupied, capacity int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("parking_occupancy").
		AddTag("category", c.String()).
		AddField("occupied", occupied).
		AddField("capacity", capacity).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// Close shuts the underlying client down.
func (s *InfluxSink) Close() {
	s.client.Close()
}
