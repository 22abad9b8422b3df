package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rjboer/swerling/internal/detection"
	"github.com/rjboer/swerling/internal/explorer"
	"github.com/rjboer/swerling/internal/logging"
)

func newExploreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Apply control changes read from stdin and print each result",
		Long: "Reads one change per line (threshold=5.2, snr=20, pulses=10, model=III)\n" +
			"and prints a snapshot after each accepted change. Values are limited to the\n" +
			"slider ranges: threshold 0..10, snr 0..30 dB, pulses 1..100. 'quit' stops.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}
			ex, err := explorer.New(s.controls, explorer.Options{
				NumPoints: s.numPoints,
				XMax:      s.xMax,
				Rule:      s.rule,
				Reporter:  explorer.NewLogReporter(a.logger),
				Logger:    a.logger,
			})
			if err != nil {
				return err
			}
			if err := snapshotLine(a.out, s.format, ex.Latest()); err != nil {
				return err
			}

			scanner := bufio.NewScanner(a.in)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}
				if line == "quit" || line == "exit" {
					break
				}
				snap, err := applyChange(ex, line)
				if err != nil {
					a.logger.Warn("ignored change", logging.Field{Key: "input", Value: line}, logging.Field{Key: "error", Value: err.Error()})
					continue
				}
				if err := snapshotLine(a.out, s.format, snap); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}
}

// applyChange parses a key=value line and forwards it to the matching setter.
func applyChange(ex *explorer.Explorer, line string) (explorer.Snapshot, error) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return explorer.Snapshot{}, fmt.Errorf("expected key=value, got %q", line)
	}
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	switch key {
	case "threshold", "t":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return explorer.Snapshot{}, fmt.Errorf("threshold: %w", err)
		}
		return ex.SetThreshold(v)
	case "snr", "s":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return explorer.Snapshot{}, fmt.Errorf("snr: %w", err)
		}
		return ex.SetBaseSNR(v)
	case "pulses", "n":
		v, err := strconv.Atoi(value)
		if err != nil {
			return explorer.Snapshot{}, fmt.Errorf("pulses: %w", err)
		}
		return ex.SetPulses(v)
	case "model", "m":
		m, err := detection.ParseModel(value)
		if err != nil {
			return explorer.Snapshot{}, err
		}
		return ex.SetModel(m)
	default:
		return explorer.Snapshot{}, fmt.Errorf("unknown control %q", key)
	}
}
