//go:build !windows

package printer

import "fmt"

// NewWinPrintSpoolerPrinter is only available on Windows.
func NewWinPrintSpoolerPrinter(printerName string, opts ...PrinterOption) (*Printer, error) {
	return nil, fmt.Errorf("windows spooler printing is not supported on this platform (printer %q)", printerName)
}
