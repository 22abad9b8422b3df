package main

import (
	"github.com/spf13/cobra"

	"github.com/rjboer/swerling/internal/explorer"
)

func newComputeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compute",
		Short: "Pd and Pfa for the steady target and the selected model",
		Example: "  swerling compute --snr 13 --threshold 4.5 --model III\n" +
			"  swerling compute --pulses 10 --format csv > curves.csv",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}
			ex, err := explorer.New(s.controls, explorer.Options{
				Bounds:    explorer.Unbounded(),
				NumPoints: s.numPoints,
				XMax:      s.xMax,
				Rule:      s.rule,
				Logger:    a.logger,
			})
			if err != nil {
				return err
			}
			return renderSnapshot(a.out, s.format, ex.Latest())
		},
	}
}
