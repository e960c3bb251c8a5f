package console

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rav6044/smartpark/core/model"
	"github.com/rav6044/smartpark/core/parking"
)

const rule = "-------------------------------------------------------"

// RenderStatus writes the occupancy dashboard: a totals header followed by
// the per-slot table sorted by id.
func RenderStatus(w io.Writer, views []model.SlotView) {
	fmt.Fprintln(w, colorBlue+colorBright+"=======================================================")
	fmt.Fprintln(w, "              PARKING LOT STATUS DASHBOARD             ")
	fmt.Fprintln(w, "======================================================="+colorReset)

	total := len(views)
	occupied := 0
	for _, v := range views {
		if v.Reservation != nil {
			occupied++
		}
	}
	utilization := 0.0
	if total > 0 {
		utilization = float64(occupied) / float64(total) * 100
	}
	fmt.Fprintf(w, colorCyan+"Total Capacity: %d | Occupied: %d | Available: %d\n", total, occupied, total-occupied)
	fmt.Fprintf(w, "Utilization: %.2f%%\n"+colorReset, utilization)
	fmt.Fprintln(w, rule)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tSTATUS\tTYPE\tVEHICLE NO")
	for _, v := range views {
		if v.Reservation != nil {
			status := "OCCUPIED"
			if v.Reservation.VIP {
				status = "OCCUPIED (VIP)"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.ID, status, v.Reservation.Requested, v.Reservation.VehicleID)
		} else {
			fmt.Fprintf(tw, "%s\tAVAILABLE\t%s\t\n", v.ID, v.Category)
		}
	}
	tw.Flush()
	fmt.Fprintln(w, rule)
}

// RenderTicket writes the entry confirmation.
func RenderTicket(w io.Writer, vehicleID string, requested model.Category, t parking.EntryTicket) {
	color := colorGreen
	if t.VIP {
		color = colorCyan
	}
	fmt.Fprintf(w, color+colorBright+"\n[SUCCESS] Vehicle %s (%s) entered.\n"+colorReset, vehicleID, requested)
	fmt.Fprintf(w, color+"Allocated Slot: %s | Entry Time: %s\n"+colorReset, t.SlotID, t.EntryTime.Format("2006-01-02 15:04:05"))
}

// RenderReceipt writes the exit report.
func RenderReceipt(w io.Writer, r parking.Receipt) {
	fmt.Fprintf(w, colorGreen+colorBright+"\n[EXIT REPORT] Vehicle %s Exited from Slot %s\n"+colorReset, r.VehicleID, r.SlotID)
	fmt.Fprintln(w, colorGreen+rule+colorReset)
	fmt.Fprintf(w, colorYellow+"  Vehicle Type: %s\n", r.Category)
	fmt.Fprintf(w, "  Duration (Hrs): %d\n", r.BilledHours)
	fmt.Fprintf(w, "  Total Fee: $%.2f\n"+colorReset, r.Fee)
	fmt.Fprintln(w, colorGreen+rule+colorReset)
	fmt.Fprintf(w, colorMagenta+"  Receipt: %s\n"+colorReset, r.ReceiptID)
}

// RenderReport writes the revenue report: totals followed by the
// transaction list in append order.
func RenderReport(w io.Writer, rep parking.RevenueReport) {
	fmt.Fprintln(w, colorBlue+colorBright+"=======================================================")
	fmt.Fprintln(w, "                 DAILY REVENUE REPORT                  ")
	fmt.Fprintln(w, "======================================================="+colorReset)

	if rep.Aggregate.Count == 0 {
		fmt.Fprintln(w, colorYellow+"No transactions recorded yet."+colorReset)
		fmt.Fprintln(w, rule)
		return
	}

	fmt.Fprintf(w, colorGreen+"Total Revenue Earned: $%.2f\n", rep.Aggregate.TotalFee)
	fmt.Fprintf(w, "Total Vehicles Processed: %d\n", rep.Aggregate.Count)
	fmt.Fprintf(w, "Average Parking Duration: %.1f hours\n"+colorReset, rep.Aggregate.AvgDurationHours)
	fmt.Fprintln(w, rule)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tVEHICLE\tTYPE\tDURATION\tFEE")
	for _, e := range rep.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.2f\n", e.SlotID, e.VehicleID, e.Category, e.BilledHours, e.Fee)
	}
	tw.Flush()
	fmt.Fprintln(w, rule)
}
