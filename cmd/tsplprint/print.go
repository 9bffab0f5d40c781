package main

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/google/gousb"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xgd16/tspl-generator/config"
	"github.com/xgd16/tspl-generator/printer"
)

const (
	rawPort = "9100"
	lpdPort = "515"
)

func newPrintCmd(a *app) *cobra.Command {
	var copies int
	cmd := &cobra.Command{
		Use:   "print <job>",
		Short: "Send the TSPL program of a job to the configured device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.buildLabel(args[0])
			if err != nil {
				return err
			}
			logger := a.logger.With(zap.String("run_id", uuid.NewString()))
			if copies > 0 {
				l.Print(copies)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if a.cfg.Device.WriteTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, a.cfg.Device.WriteTimeout)
				defer cancel()
			}

			p, err := openDevice(ctx, a.cfg.Device, cmd.OutOrStdout(),
				printer.WithPrinterLogger(logger.Named("printer")),
				printer.WithChunkSize(a.cfg.Device.ChunkSize),
				printer.WithLPDQueue(a.cfg.Device.Queue),
			)
			if err != nil {
				return err
			}
			sendErr := p.Send(ctx, l)
			closeErr := p.CloseConnection()
			if sendErr != nil {
				return sendErr
			}
			if closeErr != nil {
				return fmt.Errorf("failed to close device: %w", closeErr)
			}
			logger.Info("job printed",
				zap.String("job", args[0]),
				zap.String("device", a.cfg.Device.Kind),
			)
			return nil
		},
	}
	cmd.Flags().IntVar(&copies, "copies", 0, "append PRINT <copies> after the job's own commands")
	return cmd
}

// stdoutDevice hides Close so the process keeps its standard output.
type stdoutDevice struct {
	io.Writer
}

func (stdoutDevice) Read([]byte) (int, error) { return 0, io.EOF }

// openDevice connects to the device described by d. The stdout kind writes
// to out.
func openDevice(ctx context.Context, d config.DeviceConfig, out io.Writer, opts ...printer.PrinterOption) (*printer.Printer, error) {
	switch d.Kind {
	case config.DeviceStdout:
		return printer.NewPrinter(stdoutDevice{out}, opts...)
	case config.DeviceRaw:
		opts = append(opts, printer.WithProtocol(printer.ProtocolRaw))
		return printer.NewNetworkPrinter(ctx, withDefaultPort(d.Address, rawPort), opts...)
	case config.DeviceLPD:
		opts = append(opts, printer.WithProtocol(printer.ProtocolLPD))
		return printer.NewNetworkPrinter(ctx, withDefaultPort(d.Address, lpdPort), opts...)
	case config.DeviceUSB:
		return printer.NewUSBPrinter(gousb.ID(d.VendorID), gousb.ID(d.ProductID), opts...)
	case config.DeviceSerial:
		return printer.NewSerialPrinter(d.Port, d.BaudRate, opts...)
	case config.DeviceSpooler:
		return printer.NewWinPrintSpoolerPrinter(d.PrinterName, opts...)
	}
	return nil, fmt.Errorf("unknown device kind %q", d.Kind)
}

func withDefaultPort(addr, port string) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, port)
}
