package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xgd16/tspl-generator/printer"
)

func newPortsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List serial ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ports, err := printer.SerialPorts()
			if err != nil {
				return err
			}
			if len(ports) == 0 {
				a.logger.Warn("no serial ports found")
				return nil
			}
			for _, p := range ports {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}
