package main

import (
	"fmt"
	"strings"

	"github.com/creachadair/atomicfile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xgd16/tspl-generator/job"
	"github.com/xgd16/tspl-generator/printer"
	"github.com/xgd16/tspl-generator/tspl"
)

func newRenderCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render <job>",
		Short: "Write the TSPL program of a job to stdout or a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.buildLabel(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), l.Buffer())
				return err
			}
			if _, err := atomicfile.WriteAll(output, strings.NewReader(l.Buffer()), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			a.logger.Info("program written", zap.String("file", output))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the program to this file instead of stdout")
	return cmd
}

// buildLabel loads the job at path and replays it onto a fresh Label.
func (a *app) buildLabel(path string) (*printer.Label, error) {
	j, err := job.Load(path, a.cfg.Label)
	if err != nil {
		return nil, err
	}
	m, err := tspl.ParseMeasurement(a.cfg.Label.Measurement)
	if err != nil {
		return nil, err
	}
	l := printer.NewLabel(
		printer.WithMeasurement(m),
		printer.WithLogger(a.logger.Named("label")),
	)
	if err := job.Apply(j, l, nil); err != nil {
		return nil, fmt.Errorf("job %s: %w", path, err)
	}
	a.logger.Debug("job rendered",
		zap.String("job", path),
		zap.Int("commands", l.Len()),
	)
	return l, nil
}
