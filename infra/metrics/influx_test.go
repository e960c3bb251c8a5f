package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	coremetrics "github.com/rav6044/smartpark/core/metrics"
	"github.com/rav6044/smartpark/core/model"
)

func TestInfluxSink_RecordExit(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(coremetrics.Config{InfluxURL: srv.URL, InfluxOrg: "org", InfluxBucket: "bucket"})
	defer sink.Close()

	now := time.Now()
	err := sink.RecordExit(coremetrics.ExitRecord{
		ReceiptID:   "r1",
		VehicleID:   "AB1",
		Category:    model.CategoryCar,
		SlotID:      "C-01",
		BilledHours: 3,
		Fee:         20,
		EntryTime:   now.Add(-3 * time.Hour),
		ExitTime:    now,
	})
	if err != nil {
		t.Fatalf("record exit: %v", err)
	}
	if !strings.HasPrefix(body, "parking_exit,") {
		t.Errorf("unexpected measurement: %s", body)
	}
	for _, want := range []string{`vehicle_id=AB1`, `category=CAR`, `slot_id=C-01`, `fee=20`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %s: %s", want, body)
		}
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	sink := NewInfluxSinkWithFallback(coremetrics.Config{InfluxURL: "http://127.0.0.1:1", InfluxOrg: "o", InfluxBucket: "b"})
	if _, ok := sink.(coremetrics.NopSink); !ok {
		t.Fatalf("expected NopSink fallback, got %T", sink)
	}
}
