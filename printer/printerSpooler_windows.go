//go:build windows

package printer

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const spoolerDocName = "TSPL label"

var (
	winspool = windows.NewLazySystemDLL("winspool.drv")

	openPrinterW      = winspool.NewProc("OpenPrinterW")
	closePrinter      = winspool.NewProc("ClosePrinter")
	startDocPrinterW  = winspool.NewProc("StartDocPrinterW")
	endDocPrinter     = winspool.NewProc("EndDocPrinter")
	startPagePrinter  = winspool.NewProc("StartPagePrinter")
	endPagePrinter    = winspool.NewProc("EndPagePrinter")
	writePrinterBytes = winspool.NewProc("WritePrinter")
)

// docInfo1 mirrors DOC_INFO_1.
type docInfo1 struct {
	docName    *uint16
	outputFile *uint16
	datatype   *uint16
}

// spoolJob is one RAW spooler document; the program reaches the printer
// untouched by the driver.
type spoolJob struct {
	h windows.Handle
}

func openSpoolJob(printerName string) (*spoolJob, error) {
	name, err := windows.UTF16PtrFromString(printerName)
	if err != nil {
		return nil, fmt.Errorf("invalid printer name %q: %w", printerName, err)
	}
	var h windows.Handle
	if r, _, err := openPrinterW.Call(uintptr(unsafe.Pointer(name)), uintptr(unsafe.Pointer(&h)), 0); r == 0 {
		return nil, fmt.Errorf("failed to open printer %q: %w", printerName, err)
	}

	docName, _ := windows.UTF16PtrFromString(spoolerDocName)
	raw, _ := windows.UTF16PtrFromString("RAW")
	di := docInfo1{docName: docName, datatype: raw}
	if r, _, err := startDocPrinterW.Call(uintptr(h), 1, uintptr(unsafe.Pointer(&di))); r == 0 {
		closePrinter.Call(uintptr(h))
		return nil, fmt.Errorf("failed to start document on %q: %w", printerName, err)
	}
	if r, _, err := startPagePrinter.Call(uintptr(h)); r == 0 {
		endDocPrinter.Call(uintptr(h))
		closePrinter.Call(uintptr(h))
		return nil, fmt.Errorf("failed to start page on %q: %w", printerName, err)
	}
	return &spoolJob{h: h}, nil
}

func (j *spoolJob) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	var n uint32
	r, _, err := writePrinterBytes.Call(
		uintptr(j.h),
		uintptr(unsafe.Pointer(&p[0])),
		uintptr(len(p)),
		uintptr(unsafe.Pointer(&n)),
	)
	if r == 0 {
		return int(n), fmt.Errorf("spooler write: %w", err)
	}
	return int(n), nil
}

func (j *spoolJob) Read([]byte) (int, error) {
	return 0, errors.New("spooler: read not supported")
}

// Close ends the page and the document, which hands the job to the spooler.
func (j *spoolJob) Close() error {
	endPagePrinter.Call(uintptr(j.h))
	r, _, err := endDocPrinter.Call(uintptr(j.h))
	closePrinter.Call(uintptr(j.h))
	if r == 0 {
		return fmt.Errorf("spooler: end document: %w", err)
	}
	return nil
}

// NewWinPrintSpoolerPrinter sends programs to the installed Windows printer
// printerName as a RAW document.
func NewWinPrintSpoolerPrinter(printerName string, opts ...PrinterOption) (*Printer, error) {
	job, err := openSpoolJob(printerName)
	if err != nil {
		return nil, err
	}
	p, err := NewPrinter(job, append(opts, WithProtocol(ProtocolRaw))...)
	if err != nil {
		job.Close()
		return nil, err
	}
	return p, nil
}
