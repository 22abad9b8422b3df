package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/rjboer/swerling/internal/detection"
	"github.com/rjboer/swerling/internal/explorer"
	"github.com/rjboer/swerling/internal/montecarlo"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Pd is shown with three decimals and Pfa in exponent form.
func formatPd(v float64) string  { return strconv.FormatFloat(v, 'f', 3, 64) }
func formatPfa(v float64) string { return strconv.FormatFloat(v, 'e', 2, 64) }

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderSnapshot(w io.Writer, format string, s explorer.Snapshot) error {
	switch format {
	case "json":
		return writeJSON(w, s)
	case "csv":
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"x", "noise", "steady_signal", "fluctuating_signal"}); err != nil {
			return err
		}
		noise, steady, fluct := s.Steady.Noise(), s.Steady.Signal(), s.Fluctuating.Signal()
		for i, p := range noise {
			row := []string{
				formatFloat(p.X),
				formatFloat(p.Y),
				formatFloat(steady[i].Y),
				formatFloat(fluct[i].Y),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		return renderSnapshotText(w, s)
	}
}

func renderSnapshotText(w io.Writer, s explorer.Snapshot) error {
	c := s.Controls
	fmt.Fprintf(w, "threshold      %s\n", formatFloat(c.Threshold))
	fmt.Fprintf(w, "base SNR       %s dB x %d pulse(s)\n", formatFloat(c.BaseSNRdB), c.NumPulses)
	fmt.Fprintf(w, "effective SNR  %.2f dB\n\n", s.EffectiveSNRdB)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TARGET\tPd\tPfa")
	fmt.Fprintf(tw, "%s\t%s\t%s\n", detection.NonFluctuating, formatPd(s.Steady.Pd), formatPfa(s.Steady.Pfa))
	fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Model, formatPd(s.Fluctuating.Pd), formatPfa(s.Fluctuating.Pfa))
	return tw.Flush()
}

// snapshotLine is the single-line form used when exploring interactively.
func snapshotLine(w io.Writer, format string, s explorer.Snapshot) error {
	if format == "json" {
		return json.NewEncoder(w).Encode(struct {
			Controls       explorer.Controls `json:"controls"`
			EffectiveSNRdB float64           `json:"effectiveSnrDb"`
			SteadyPd       float64           `json:"steadyPd"`
			FluctuatingPd  float64           `json:"fluctuatingPd"`
			Pfa            float64           `json:"pfa"`
		}{s.Controls, s.EffectiveSNRdB, s.Steady.Pd, s.Fluctuating.Pd, s.Steady.Pfa})
	}
	_, err := fmt.Fprintf(w, "threshold=%s snr=%s pulses=%d model=%q effective=%.2fdB steady_pd=%s %s_pd=%s pfa=%s\n",
		formatFloat(s.Controls.Threshold), formatFloat(s.Controls.BaseSNRdB), s.Controls.NumPulses,
		s.Controls.Model.String(), s.EffectiveSNRdB, formatPd(s.Steady.Pd),
		modelSlug(s.Controls.Model), formatPd(s.Fluctuating.Pd), formatPfa(s.Steady.Pfa))
	return err
}

func modelSlug(m detection.ModelKind) string {
	switch m {
	case detection.NonFluctuating:
		return "swerling0"
	case detection.Swerling1:
		return "swerling1"
	case detection.Swerling2:
		return "swerling2"
	case detection.Swerling3:
		return "swerling3"
	case detection.Swerling4:
		return "swerling4"
	default:
		return "unknown"
	}
}

type sweepRow struct {
	Threshold     float64 `json:"threshold"`
	SteadyPd      float64 `json:"steadyPd"`
	FluctuatingPd float64 `json:"fluctuatingPd"`
	Pfa           float64 `json:"pfa"`
}

func renderSweep(w io.Writer, format string, model detection.ModelKind, rows []sweepRow) error {
	switch format {
	case "json":
		return writeJSON(w, rows)
	case "csv":
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"threshold", "steady_pd", modelSlug(model) + "_pd", "pfa"}); err != nil {
			return err
		}
		for _, r := range rows {
			if err := cw.Write([]string{formatFloat(r.Threshold), formatFloat(r.SteadyPd), formatFloat(r.FluctuatingPd), formatFloat(r.Pfa)}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "THRESHOLD\t%s Pd\t%s Pd\tPfa\n", detection.NonFluctuating, model)
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", strconv.FormatFloat(r.Threshold, 'f', 2, 64), formatPd(r.SteadyPd), formatPd(r.FluctuatingPd), formatPfa(r.Pfa))
		}
		return tw.Flush()
	}
}

type simulationRow struct {
	Model      string            `json:"model"`
	Integrated float64           `json:"integratedPd"`
	Simulated  montecarlo.Result `json:"simulated"`
}

func renderSimulation(w io.Writer, format string, pfa float64, rows []simulationRow) error {
	switch format {
	case "json", "csv":
		// csv has no natural shape for nested results; json covers both.
		return writeJSON(w, struct {
			AnalyticPfa float64         `json:"analyticPfa"`
			Rows        []simulationRow `json:"rows"`
		}{pfa, rows})
	default:
		fmt.Fprintf(w, "analytic Pfa  %s\n\n", formatPfa(pfa))
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TARGET\tINTEGRATED Pd\tSIMULATED Pd\tSTDERR\tSIMULATED Pfa")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Model, formatPd(r.Integrated), formatPd(r.Simulated.Pd),
				strconv.FormatFloat(r.Simulated.PdStdErr, 'e', 1, 64), formatPfa(r.Simulated.Pfa))
		}
		return tw.Flush()
	}
}
