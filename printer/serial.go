package printer

import (
	"fmt"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"
)

const serialReadTimeout = 100 * time.Millisecond

// SerialPorts lists the serial ports present on the system.
func SerialPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	return ports, nil
}

// NewSerialPrinter opens portName (COM3, /dev/ttyUSB0, ...) at baudRate, 8N1.
func NewSerialPrinter(portName string, baudRate int, opts ...PrinterOption) (*Printer, error) {
	ports, err := SerialPorts()
	if err != nil {
		return nil, err
	}
	if !contains(ports, portName) {
		return nil, fmt.Errorf("serial port %s not found", portName)
	}

	mode := &serial.Mode{
		BaudRate: baudRate,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}
	serialPort, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}
	if err := serialPort.SetReadTimeout(serialReadTimeout); err != nil {
		serialPort.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", portName, err)
	}

	printer, err := NewPrinter(serialPort, opts...)
	if err != nil {
		serialPort.Close()
		return nil, err
	}
	printer.log.Info("serial port opened", zap.String("port", portName), zap.Int("baud_rate", baudRate))
	return printer, nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
