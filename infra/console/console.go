package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rav6044/smartpark/core/logger"
	"github.com/rav6044/smartpark/core/model"
	"github.com/rav6044/smartpark/core/parking"
)

// Console drives the interactive menu loop against the manager. It owns no
// lot state: every operation calls into the core and renders the result.
type Console struct {
	in  *bufio.Reader
	out io.Writer
	mgr *parking.Manager
	log logger.Logger
}

// New creates a console bound to the given streams.
func New(in io.Reader, out io.Writer, mgr *parking.Manager, log logger.Logger) *Console {
	return &Console{in: bufio.NewReader(in), out: out, mgr: mgr, log: log}
}

// Run executes the menu loop until the user quits, the input stream closes
// or the context is canceled.
func (c *Console) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		RenderStatus(c.out, c.mgr.Snapshot())
		fmt.Fprintln(c.out, colorYellow+colorBright+"\n--- MENU ---"+colorReset)
		fmt.Fprintln(c.out, colorGreen+"1. Vehicle Entry")
		fmt.Fprintln(c.out, "2. Vehicle Exit")
		fmt.Fprintln(c.out, "3. View Parking Status")
		fmt.Fprintln(c.out, "4. View Revenue Report"+colorReset)
		fmt.Fprintln(c.out, colorRed+"5. Exit System"+colorReset)

		choice, err := c.prompt("Enter your choice (1-5): ")
		if err != nil {
			return c.eof(err)
		}
		switch choice {
		case "1":
			if err := c.entry(); err != nil {
				return c.eof(err)
			}
		case "2":
			if err := c.exit(); err != nil {
				return c.eof(err)
			}
		case "3":
			RenderStatus(c.out, c.mgr.Snapshot())
			if err := c.pause(); err != nil {
				return c.eof(err)
			}
		case "4":
			RenderReport(c.out, c.mgr.RevenueReport())
			if err := c.pause(); err != nil {
				return c.eof(err)
			}
		case "5", "":
			fmt.Fprintln(c.out, colorGreen+colorBright+"Thank you for parking with us. Goodbye!"+colorReset)
			return nil
		default:
			fmt.Fprintln(c.out, colorRed+"\nInvalid choice. Please select 1-5."+colorReset)
		}
	}
}

func (c *Console) entry() error {
	fmt.Fprintln(c.out, colorMagenta+colorBright+"\n--- VEHICLE ENTRY ---"+colorReset)
	vehicleID, err := c.prompt("Enter Vehicle Number: ")
	if err != nil {
		return err
	}
	typeName, err := c.prompt("Enter Vehicle Type (BIKE/CAR/EV/HEAVY): ")
	if err != nil {
		return err
	}
	vipAnswer, err := c.prompt("Is this a VIP/Loyalty Customer? (y/n): ")
	if err != nil {
		return err
	}
	vip := strings.EqualFold(vipAnswer, "y")

	requested, perr := model.ParseCategory(strings.ToUpper(typeName))
	if perr != nil {
		fmt.Fprintln(c.out, colorRed+"\n[ERROR] Invalid vehicle type. Must be BIKE, CAR, EV, or HEAVY."+colorReset)
		return c.pause()
	}
	ticket, err := c.mgr.VehicleEntry(vehicleID, requested, vip)
	switch {
	case err == nil:
		RenderTicket(c.out, model.NormalizeVehicleID(vehicleID), requested, ticket)
	case errors.Is(err, parking.ErrInvalidVehicleType):
		fmt.Fprintln(c.out, colorRed+"\n[ERROR] Invalid vehicle type. Must be BIKE, CAR, EV, or HEAVY."+colorReset)
	case errors.Is(err, parking.ErrDuplicateVehicle):
		fmt.Fprintf(c.out, colorYellow+"\n[WARN] %v.\n"+colorReset, err)
	case errors.Is(err, parking.ErrLotFull):
		fmt.Fprintln(c.out, colorRed+"\n[FAILURE] Parking lot is full for the requested vehicle type."+colorReset)
	default:
		c.log.Errorf("vehicle entry: %v", err)
		fmt.Fprintf(c.out, colorRed+"\n[ERROR] %v\n"+colorReset, err)
	}
	return c.pause()
}

func (c *Console) exit() error {
	fmt.Fprintln(c.out, colorMagenta+colorBright+"\n--- VEHICLE EXIT ---"+colorReset)
	vehicleID, err := c.prompt("Enter Vehicle Number to Exit: ")
	if err != nil {
		return err
	}
	receipt, err := c.mgr.VehicleExit(vehicleID)
	switch {
	case err == nil:
		RenderReceipt(c.out, receipt)
	case errors.Is(err, parking.ErrVehicleNotFound):
		fmt.Fprintf(c.out, colorRed+"\n[ERROR] Vehicle %s not found in the parking lot.\n"+colorReset, model.NormalizeVehicleID(vehicleID))
	default:
		c.log.Errorf("vehicle exit: %v", err)
		fmt.Fprintf(c.out, colorRed+"\n[ERROR] %v\n"+colorReset, err)
	}
	return c.pause()
}

func (c *Console) prompt(label string) (string, error) {
	fmt.Fprint(c.out, colorCyan+label+colorWhite)
	line, err := c.in.ReadString('\n')
	fmt.Fprint(c.out, colorReset)
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) pause() error {
	_, err := c.prompt("\nPress Enter to return to menu...")
	return err
}

// eof maps a closed input stream to a clean shutdown.
func (c *Console) eof(err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(c.out, colorRed+"\n[SYSTEM] Input stream closed. Exiting."+colorReset)
		return nil
	}
	return err
}
