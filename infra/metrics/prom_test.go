package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/rav6044/smartpark/core/metrics"
	"github.com/rav6044/smartpark/core/model"
)

func TestPromSink_RecordEntryAndExit(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}

	now := time.Now()
	if err := sink.RecordEntry(coremetrics.EntryRecord{
		VehicleID:    "AB1",
		Requested:    model.CategoryCar,
		SlotID:       "V-01",
		SlotCategory: model.CategoryVIP,
		VIP:          false,
		Time:         now,
	}); err != nil {
		t.Fatalf("record entry: %v", err)
	}

	expected := `
# HELP parking_entries_total Total number of vehicle entries
# TYPE parking_entries_total counter
parking_entries_total{category="CAR",slot_category="VIP",vip="false"} 1
`
	if err := testutil.CollectAndCompare(sink.entries, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}

	if err := sink.RecordExit(coremetrics.ExitRecord{
		ReceiptID:   "r1",
		VehicleID:   "AB1",
		Category:    model.CategoryCar,
		SlotID:      "V-01",
		BilledHours: 3,
		Fee:         15,
		EntryTime:   now,
		ExitTime:    now.Add(3 * time.Hour),
	}); err != nil {
		t.Fatalf("record exit: %v", err)
	}
	if got := testutil.ToFloat64(sink.revenue.WithLabelValues("CAR")); got != 15 {
		t.Errorf("revenue = %v, want 15", got)
	}
	if c := testutil.CollectAndCount(sink.duration); c == 0 {
		t.Errorf("duration not recorded")
	}

	if err := sink.RecordOccupancy(model.CategoryVIP, 1, 5); err != nil {
		t.Fatalf("record occupancy: %v", err)
	}
	if got := testutil.ToFloat64(sink.occupancy.WithLabelValues("VIP")); got != 1 {
		t.Errorf("occupancy = %v, want 1", got)
	}
}

func TestPromSink_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("first sink: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("second sink must reuse collectors: %v", err)
	}
}
