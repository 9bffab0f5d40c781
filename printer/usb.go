package printer

import (
	"fmt"

	"github.com/google/gousb"
)

type usbConn struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	cfg  *gousb.Config
	intf *gousb.Interface
	out  *gousb.OutEndpoint
	in   *gousb.InEndpoint
}

// NewUSBPrinter opens the first device matching vendorID:productID and
// writes to the first bulk OUT endpoint of its first interface.
func NewUSBPrinter(vendorID, productID gousb.ID, opts ...PrinterOption) (*Printer, error) {
	ctx := gousb.NewContext()
	dev, err := findUSBPrinter(ctx, vendorID, productID)
	if err != nil {
		ctx.Close()
		return nil, err
	}

	dev.SetAutoDetach(true)
	cfg, err := dev.Config(1)
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, err
	}

	intf, err := cfg.Interface(0, 0)
	if err != nil {
		cfg.Close()
		dev.Close()
		ctx.Close()
		return nil, err
	}

	outNum, inNum := bulkEndpoints(intf.Setting)
	if outNum < 0 {
		intf.Close()
		cfg.Close()
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("USB device %s:%s has no bulk OUT endpoint", vendorID, productID)
	}

	outEp, err := intf.OutEndpoint(outNum)
	if err != nil {
		intf.Close()
		cfg.Close()
		dev.Close()
		ctx.Close()
		return nil, err
	}

	var inEp *gousb.InEndpoint
	if inNum >= 0 {
		if ep, err := intf.InEndpoint(inNum); err == nil {
			inEp = ep
		}
	}

	conn := &usbConn{ctx, dev, cfg, intf, outEp, inEp}
	printer, err := NewPrinter(conn, opts...)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return printer, nil
}

func findUSBPrinter(ctx *gousb.Context, vendorID, productID gousb.ID) (*gousb.Device, error) {
	dev, err := ctx.OpenDeviceWithVIDPID(vendorID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to open USB device %s:%s: %w", vendorID, productID, err)
	}
	if dev == nil {
		return nil, fmt.Errorf("USB device %s:%s not found", vendorID, productID)
	}
	return dev, nil
}

// bulkEndpoints returns the first bulk OUT and IN endpoint numbers, -1 when
// absent.
func bulkEndpoints(setting gousb.InterfaceSetting) (out, in int) {
	out, in = -1, -1
	for _, ep := range setting.Endpoints {
		if ep.TransferType != gousb.TransferTypeBulk {
			continue
		}
		switch ep.Direction {
		case gousb.EndpointDirectionOut:
			if out < 0 || ep.Number < out {
				out = ep.Number
			}
		case gousb.EndpointDirectionIn:
			if in < 0 || ep.Number < in {
				in = ep.Number
			}
		}
	}
	return out, in
}

func (u *usbConn) Read(p []byte) (int, error) {
	if u.in != nil {
		return u.in.Read(p)
	}
	return 0, fmt.Errorf("USB read not supported")
}

func (u *usbConn) Write(p []byte) (int, error) {
	return u.out.Write(p)
}

func (u *usbConn) Close() error {
	if u.intf != nil {
		u.intf.Close()
	}
	if u.cfg != nil {
		u.cfg.Close()
	}
	if u.dev != nil {
		u.dev.Close()
	}
	if u.ctx != nil {
		u.ctx.Close()
	}
	return nil
}
