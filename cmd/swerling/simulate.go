package main

import (
	"github.com/spf13/cobra"

	"github.com/rjboer/swerling/internal/detection"
	"github.com/rjboer/swerling/internal/logging"
	"github.com/rjboer/swerling/internal/montecarlo"
)

func newSimulateCmd(a *app) *cobra.Command {
	var trials int
	var seed uint64

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Compare integrated Pd with a Monte Carlo estimate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}

			models := []detection.ModelKind{detection.NonFluctuating}
			if s.controls.Model != detection.NonFluctuating {
				models = append(models, s.controls.Model)
			}

			var rows []simulationRow
			for _, m := range models {
				if !montecarlo.Supported(m) {
					a.logger.Warn("model skipped", logging.Field{Key: "model", Value: m.String()},
						logging.Field{Key: "reason", Value: montecarlo.ErrUnsupportedModel.Error()})
					continue
				}
				params, err := s.params(m)
				if err != nil {
					return err
				}
				integrated, err := detection.Compute(params)
				if err != nil {
					return err
				}
				sim, err := montecarlo.Run(montecarlo.Config{
					SNRdB:     params.SNRdB,
					Threshold: params.Threshold,
					Model:     m,
					Trials:    trials,
					Seed:      seed,
				})
				if err != nil {
					return err
				}
				rows = append(rows, simulationRow{Model: m.String(), Integrated: integrated.Pd, Simulated: sim})
			}
			return renderSimulation(a.out, s.format, detection.RayleighTail(s.controls.Threshold), rows)
		},
	}
	cmd.Flags().IntVar(&trials, "trials", 100_000, "number of simulated looks per model")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	return cmd
}
