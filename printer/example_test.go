package printer_test

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/xgd16/tspl-generator/printer"
	"github.com/xgd16/tspl-generator/tspl"
)

func ExampleLabel() {
	l := printer.NewLabel().
		Initialize(printer.LabelConfig{Width: 40, Height: 30, Measurement: tspl.Metric}).
		AddText(tspl.TextOptions{X: 10, Y: 10, Font: tspl.Font1, Text: `A"B`}).
		Print(1)
	if err := l.Err(); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(strings.ReplaceAll(l.Buffer(), "\r\n", "\n"))
	// Output:
	// SIZE 40 mm,30 mm
	// SPEED 3
	// DENSITY 8
	// GAP 3 mm,0 mm
	// CLS
	// TEXT 10,10,"1",0,1,1,"A\"B"
	// PRINT 1
}

func ExampleLabel_AddCommand() {
	l := printer.NewLabel().
		Initialize(printer.LabelConfig{Width: 2, Height: 1, Measurement: tspl.English}).
		AddCommand("SET CUTTER 1").
		AddBarcode(tspl.BarcodeOptions{X: 20, Y: 20, Type: tspl.Code128, Height: 60, Readable: tspl.ReadableCenter, Content: "SKU-0042"}).
		Print(1)

	for _, c := range l.Commands()[5:] {
		fmt.Printf("%s %s\n", c.Kind, strings.TrimSpace(c.Text))
	}
	// Output:
	// raw SET CUTTER 1
	// typed BARCODE 20,20,"128",60,2,0,2,2,"SKU-0042"
	// typed PRINT 1
}

func ExamplePrinter_Send() {
	p, err := printer.NewPrinter(os.Stdout)
	if err != nil {
		fmt.Println(err)
		return
	}
	l := printer.NewLabel(printer.WithStrict(false)).Print(1)
	if err := p.Send(context.Background(), l); err != nil {
		fmt.Println(err)
	}
	// Output: PRINT 1
}
