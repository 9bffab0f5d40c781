package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/xgd16/tspl-generator/log"
	"github.com/xgd16/tspl-generator/printer"
	"github.com/xgd16/tspl-generator/tspl"
)

// Device kinds accepted in DeviceConfig.Kind.
const (
	DeviceStdout  = "stdout"
	DeviceRaw     = "raw"
	DeviceLPD     = "lpd"
	DeviceUSB     = "usb"
	DeviceSerial  = "serial"
	DeviceSpooler = "spooler"
)

// Config is the configuration of the tsplprint tool.
type Config struct {
	Label   LabelConfig  `mapstructure:"label"`
	Device  DeviceConfig `mapstructure:"device"`
	Logging log.Config   `mapstructure:"logging"`
}

// LabelConfig holds page setup defaults applied when a job omits them.
type LabelConfig struct {
	Width       float64 `mapstructure:"width"`
	Height      float64 `mapstructure:"height"`
	Speed       float64 `mapstructure:"speed"`
	Density     int     `mapstructure:"density"`
	Gap         float64 `mapstructure:"gap"`
	GapOffset   float64 `mapstructure:"gap_offset"`
	Measurement string  `mapstructure:"measurement"`
}

// DeviceConfig describes where programs are sent.
type DeviceConfig struct {
	Kind         string        `mapstructure:"kind"`
	Address      string        `mapstructure:"address"`
	Queue        string        `mapstructure:"queue"`
	Port         string        `mapstructure:"port"`
	BaudRate     int           `mapstructure:"baud_rate"`
	VendorID     uint16        `mapstructure:"vendor_id"`
	ProductID    uint16        `mapstructure:"product_id"`
	PrinterName  string        `mapstructure:"printer_name"`
	ChunkSize    int           `mapstructure:"chunk_size"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Load reads path (YAML, JSON or TOML by extension) on top of the defaults.
// An empty path uses defaults and TSPL_* environment variables only.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TSPL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("label.width", 40)
	v.SetDefault("label.height", 30)
	v.SetDefault("label.speed", printer.DefaultSpeed)
	v.SetDefault("label.density", printer.DefaultDensity)
	v.SetDefault("label.gap", printer.DefaultGap)
	v.SetDefault("label.gap_offset", printer.DefaultGapOffset)
	v.SetDefault("label.measurement", "metric")

	v.SetDefault("device.kind", DeviceStdout)
	v.SetDefault("device.address", "")
	v.SetDefault("device.port", "")
	v.SetDefault("device.vendor_id", 0)
	v.SetDefault("device.product_id", 0)
	v.SetDefault("device.printer_name", "")
	v.SetDefault("device.queue", printer.DefaultLPDQueue)
	v.SetDefault("device.baud_rate", 9600)
	v.SetDefault("device.chunk_size", printer.DefaultChunkSize)
	v.SetDefault("device.write_timeout", "30s")

	v.SetDefault("logging.level", log.INFO)
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
}

func validate(cfg *Config) error {
	if _, err := tspl.ParseMeasurement(cfg.Label.Measurement); err != nil {
		return err
	}
	if _, err := log.ParseLevel(cfg.Logging.Level); err != nil {
		return err
	}

	d := cfg.Device
	switch d.Kind {
	case DeviceStdout:
	case DeviceRaw, DeviceLPD:
		if d.Address == "" {
			return fmt.Errorf("device.address is required for %s", d.Kind)
		}
	case DeviceUSB:
		if d.VendorID == 0 || d.ProductID == 0 {
			return errors.New("device.vendor_id and device.product_id are required for usb")
		}
	case DeviceSerial:
		if d.Port == "" {
			return errors.New("device.port is required for serial")
		}
	case DeviceSpooler:
		if d.PrinterName == "" {
			return errors.New("device.printer_name is required for spooler")
		}
	default:
		return fmt.Errorf("device.kind must be one of: %v", []string{DeviceStdout, DeviceRaw, DeviceLPD, DeviceUSB, DeviceSerial, DeviceSpooler})
	}
	return nil
}

// PageSetup converts the label defaults into a printer.LabelConfig.
func (c LabelConfig) PageSetup() (printer.LabelConfig, error) {
	m, err := tspl.ParseMeasurement(c.Measurement)
	if err != nil {
		return printer.LabelConfig{}, err
	}
	return printer.LabelConfig{
		Width:       c.Width,
		Height:      c.Height,
		Speed:       c.Speed,
		Density:     printer.Density(c.Density),
		Gap:         c.Gap,
		GapOffset:   c.GapOffset,
		Measurement: m,
	}, nil
}
