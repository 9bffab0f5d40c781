package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xgd16/tspl-generator/config"
	"github.com/xgd16/tspl-generator/log"
)

const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
)

// app carries state shared by the subcommands once PersistentPreRunE ran.
type app struct {
	configFile string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "tsplprint",
		Short: "Render and print TSPL label jobs",
		Long: `tsplprint turns label job files (YAML or JSON) into TSPL programs and
either prints the program text or sends it to a label printer over TCP
(raw 9100 or LPD), USB, a serial port or the Windows spooler.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configFile, flagConfig, "", "config file (YAML, JSON or TOML)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, flagLogLevel, "",
		"log level, one of: debug, info, warn, error; overrides logging.level")

	rootCmd.AddCommand(
		newRenderCmd(a),
		newPrintCmd(a),
		newPortsCmd(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		if _, err := log.ParseLevel(a.logLevel); err != nil {
			return err
		}
		cfg.Logging.Level = a.logLevel
	}
	logger, err := log.New(cfg.Logging)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}
