package tspl

import (
	"fmt"
	"strings"
)

// BarcodeType names a barcode symbology.
type BarcodeType string

const (
	Code128   BarcodeType = "CODE128"
	Code128M  BarcodeType = "CODE128M"
	EAN128    BarcodeType = "EAN128"
	Code39    BarcodeType = "CODE39"
	Code39C   BarcodeType = "CODE39C"
	Code39S   BarcodeType = "CODE39S"
	Code93    BarcodeType = "CODE93"
	Code11    BarcodeType = "CODE11"
	EAN13     BarcodeType = "EAN13"
	EAN13Add2 BarcodeType = "EAN13+2"
	EAN13Add5 BarcodeType = "EAN13+5"
	EAN8      BarcodeType = "EAN8"
	EAN8Add2  BarcodeType = "EAN8+2"
	EAN8Add5  BarcodeType = "EAN8+5"
	EAN14     BarcodeType = "EAN14"
	UPCA      BarcodeType = "UPCA"
	UPCAAdd2  BarcodeType = "UPCA+2"
	UPCAAdd5  BarcodeType = "UPCA+5"
	UPCE      BarcodeType = "UPCE"
	UPCEAdd2  BarcodeType = "UPCE+2"
	UPCEAdd5  BarcodeType = "UPCE+5"
	ITF       BarcodeType = "ITF"
	ITFC      BarcodeType = "ITFC"
	ITF14     BarcodeType = "ITF14"
	Codabar   BarcodeType = "CODABAR"
	MSI       BarcodeType = "MSI"
	MSIC      BarcodeType = "MSIC"
	Plessey   BarcodeType = "PLESSEY"
	Postnet   BarcodeType = "POSTNET"
	Telepen   BarcodeType = "TELEPEN"
	TelepenN  BarcodeType = "TELEPENN"
	Logmars   BarcodeType = "LOGMARS"
	CPost     BarcodeType = "CPOST"
	Deutsche  BarcodeType = "DPI"
	DPL       BarcodeType = "DPL"
)

var symbologyTokens = map[BarcodeType]string{
	Code128:   "128",
	Code128M:  "128M",
	EAN128:    "EAN128",
	Code39:    "39",
	Code39C:   "39C",
	Code39S:   "39S",
	Code93:    "93",
	Code11:    "11",
	EAN13:     "EAN13",
	EAN13Add2: "EAN13+2",
	EAN13Add5: "EAN13+5",
	EAN8:      "EAN8",
	EAN8Add2:  "EAN8+2",
	EAN8Add5:  "EAN8+5",
	EAN14:     "EAN14",
	UPCA:      "UPCA",
	UPCAAdd2:  "UPCA+2",
	UPCAAdd5:  "UPCA+5",
	UPCE:      "UPCE",
	UPCEAdd2:  "UPCE+2",
	UPCEAdd5:  "UPCE+5",
	ITF:       "25",
	ITFC:      "25C",
	ITF14:     "ITF14",
	Codabar:   "CODA",
	MSI:       "MSI",
	MSIC:      "MSIC",
	Plessey:   "PLESSEY",
	Postnet:   "POST",
	Telepen:   "TELEPEN",
	TelepenN:  "TELEPENN",
	Logmars:   "LOGMARS",
	CPost:     "CPOST",
	Deutsche:  "DPI",
	DPL:       "DPL",
}

// Token returns the TSPL type token for b.
func (b BarcodeType) Token() (string, error) {
	tok, ok := symbologyTokens[BarcodeType(strings.ToUpper(string(b)))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSymbology, b)
	}
	return tok, nil
}

// BarcodeOptions describes a BARCODE command.
//
// RawType is the advanced path for symbologies missing from the BarcodeType
// table: when set it is sent as the type token without lookup and Type is
// ignored.
type BarcodeOptions struct {
	X, Y     int
	Type     BarcodeType
	RawType  string
	Height   int
	Readable Readable
	Rotation Rotation
	Narrow   int
	Wide     int
	Content  string
}

// WithDefaults fills zero narrow/wide module widths and a zero height.
func (o BarcodeOptions) WithDefaults() BarcodeOptions {
	o.Height = orDefault(o.Height, 100)
	o.Narrow = orDefault(o.Narrow, 2)
	o.Wide = orDefault(o.Wide, 2)
	return o
}

func (o BarcodeOptions) typeToken() (string, error) {
	if o.RawType != "" {
		if strings.ContainsAny(o.RawType, "\"\\\r\n") {
			return "", fmt.Errorf("%w: raw %q", ErrUnknownSymbology, o.RawType)
		}
		return o.RawType, nil
	}
	return o.Type.Token()
}

// Barcode returns the BARCODE command for o.
func Barcode(o BarcodeOptions) (string, error) {
	if err := checkCoordinates(o.X, o.Y); err != nil {
		return "", err
	}
	tok, err := o.typeToken()
	if err != nil {
		return "", err
	}
	if o.Height < 1 {
		return "", fmt.Errorf("%w: barcode height %d", ErrInvalidDimension, o.Height)
	}
	if o.Readable < ReadableNone || o.Readable > ReadableRight {
		return "", fmt.Errorf("%w: %d", ErrInvalidReadable, int(o.Readable))
	}
	if err := checkRotation(o.Rotation); err != nil {
		return "", err
	}
	if err := checkMultiplier("narrow", o.Narrow); err != nil {
		return "", err
	}
	if err := checkMultiplier("wide", o.Wide); err != nil {
		return "", err
	}
	content, err := quote(o.Content)
	if err != nil {
		return "", err
	}
	return command("BARCODE",
		itoa(o.X), itoa(o.Y), `"`+tok+`"`, itoa(o.Height), itoa(int(o.Readable)),
		itoa(int(o.Rotation)), itoa(o.Narrow), itoa(o.Wide), content), nil
}

// QRCodeOptions describes a QRCODE command.
// Model ("M1" or "M2") and Mask ("S0".."S8") are optional; Mask requires Model.
type QRCodeOptions struct {
	X, Y      int
	ECC       ECCLevel
	CellWidth int
	Mode      QRMode
	Rotation  Rotation
	Model     string
	Mask      string
	Content   string
}

// WithDefaults fills ECC M, cell width 4 and automatic mode.
func (o QRCodeOptions) WithDefaults() QRCodeOptions {
	if o.ECC == "" {
		o.ECC = ECCMedium
	}
	o.CellWidth = orDefault(o.CellWidth, 4)
	if o.Mode == "" {
		o.Mode = QRAuto
	}
	return o
}

// QRCode returns the QRCODE command for o.
func QRCode(o QRCodeOptions) (string, error) {
	if err := checkCoordinates(o.X, o.Y); err != nil {
		return "", err
	}
	switch o.ECC {
	case ECCLow, ECCMedium, ECCQuartile, ECCHigh:
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidEccLevel, o.ECC)
	}
	if err := checkMultiplier("cell width", o.CellWidth); err != nil {
		return "", err
	}
	switch o.Mode {
	case QRAuto, QRManual:
	default:
		return "", fmt.Errorf("%w: qr %q", ErrInvalidMode, o.Mode)
	}
	if err := checkRotation(o.Rotation); err != nil {
		return "", err
	}
	args := []string{itoa(o.X), itoa(o.Y), string(o.ECC), itoa(o.CellWidth), string(o.Mode), itoa(int(o.Rotation))}
	if o.Model != "" {
		if o.Model != "M1" && o.Model != "M2" {
			return "", fmt.Errorf("%w: qr model %q", ErrInvalidMode, o.Model)
		}
		args = append(args, o.Model)
		if o.Mask != "" {
			if len(o.Mask) != 2 || o.Mask[0] != 'S' || o.Mask[1] < '0' || o.Mask[1] > '8' {
				return "", fmt.Errorf("%w: qr mask %q", ErrInvalidMode, o.Mask)
			}
			args = append(args, o.Mask)
		}
	} else if o.Mask != "" {
		return "", fmt.Errorf("%w: qr mask %q without model", ErrInvalidMode, o.Mask)
	}
	content, err := quote(o.Content)
	if err != nil {
		return "", err
	}
	return command("QRCODE", append(args, content)...), nil
}
