package metrics

import (
	"context"

	"github.com/rav6044/smartpark/core/events"
	coremetrics "github.com/rav6044/smartpark/core/metrics"
	"github.com/rav6044/smartpark/internal/eventbus"
)

// StartOccupancyCollector subscribes to the event bus and forwards
// occupancy changes to the sink. It stops when the context is canceled.
func StartOccupancyCollector(ctx context.Context, bus *eventbus.Bus[events.Event], sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	rec, ok := sink.(coremetrics.OccupancyRecorder)
	if !ok {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, open := <-sub:
				if !open {
					return
				}
				if oc, ok := ev.(events.OccupancyChanged); ok {
					for c, n := range oc.Counts {
						_ = rec.RecordOccupancy(c, n.Occupied, n.Capacity)
					}
				}
			}
		}
	}()
}
