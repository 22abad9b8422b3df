package main

import (
	"github.com/spf13/cobra"

	"github.com/rjboer/swerling/internal/detection"
)

func newSweepCmd(a *app) *cobra.Command {
	var from, to float64
	var steps int

	cmd := &cobra.Command{
		Use:     "sweep",
		Short:   "Tabulate Pd and Pfa over a range of thresholds",
		Example: "  swerling sweep --from 0 --to 10 --steps 21 --model II",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}
			thresholds, err := detection.Thresholds(from, to, steps)
			if err != nil {
				return err
			}
			steadyParams, err := s.params(detection.NonFluctuating)
			if err != nil {
				return err
			}
			steady, err := detection.Sweep(steadyParams, thresholds)
			if err != nil {
				return err
			}
			fluctParams := steadyParams
			fluctParams.Model = s.controls.Model
			fluct, err := detection.Sweep(fluctParams, thresholds)
			if err != nil {
				return err
			}

			rows := make([]sweepRow, len(thresholds))
			for i := range thresholds {
				rows[i] = sweepRow{
					Threshold:     thresholds[i],
					SteadyPd:      steady[i].Pd,
					FluctuatingPd: fluct[i].Pd,
					Pfa:           steady[i].Pfa,
				}
			}
			return renderSweep(a.out, s.format, s.controls.Model, rows)
		},
	}
	cmd.Flags().Float64Var(&from, "from", 0, "first threshold")
	cmd.Flags().Float64Var(&to, "to", 10, "last threshold")
	cmd.Flags().IntVar(&steps, "steps", 21, "number of thresholds")
	return cmd
}
