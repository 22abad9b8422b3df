package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rjboer/swerling/internal/detection"
	"github.com/rjboer/swerling/internal/explorer"
	"github.com/rjboer/swerling/internal/logging"
)

const envPrefix = "SWERLING"

// app carries the state shared by all subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string
	in      io.Reader
	out     io.Writer
	logger  logging.Logger
}

// settings is the resolved configuration of one invocation.
type settings struct {
	controls  explorer.Controls
	numPoints int
	xMax      float64
	rule      detection.IntegrationRule
	format    string
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New(), in: in, out: out}

	root := &cobra.Command{
		Use:           "swerling",
		Short:         "Radar detection statistics for steady and Swerling targets",
		Long:          "Computes probability of detection and false alarm for a threshold detector\non Rayleigh noise and steady or Swerling I-IV target returns.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(errOut)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "optional config file (json, yaml or toml)")
	pf.Float64("threshold", explorer.DefaultThreshold, "detection threshold on the normalised envelope")
	pf.Float64("snr", explorer.DefaultBaseSNRdB, "per-pulse signal-to-noise ratio in dB")
	pf.Int("pulses", explorer.DefaultNumPulses, "number of integrated pulses")
	pf.String("model", "swerling1", "fluctuation model (0|I|II|III|IV)")
	pf.Int("points", detection.DefaultNumPoints, "number of grid intervals")
	pf.Float64("xmax", detection.DefaultXMax, "upper end of the amplitude grid")
	pf.String("rule", detection.RuleLeftRectangle.String(), "tail integration rule (left|trapezoidal)")
	pf.String("format", "text", "output format (text|json|csv)")
	pf.String("log-level", "warn", "log level (debug|info|warn|error)")
	pf.String("log-format", "text", "log format (text|json)")
	if err := a.v.BindPFlags(pf); err != nil {
		panic(err)
	}

	root.AddCommand(
		newComputeCmd(a),
		newSweepCmd(a),
		newExploreCmd(a),
		newSimulateCmd(a),
		newModelsCmd(a),
	)
	return root
}

// init resolves env and config file sources and sets up logging.
func (a *app) init(errOut io.Writer) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", a.cfgFile, err)
		}
	}

	level, err := logging.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(a.v.GetString("log-format"))
	if err != nil {
		return err
	}
	a.logger = logging.New(level, format, errOut)
	logging.SetDefault(a.logger)
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("using config file", logging.Field{Key: "path", Value: used})
	}
	return nil
}

func (a *app) settings() (settings, error) {
	model, err := detection.ParseModel(a.v.GetString("model"))
	if err != nil {
		return settings{}, err
	}
	rule, err := detection.ParseRule(a.v.GetString("rule"))
	if err != nil {
		return settings{}, err
	}
	format := strings.ToLower(strings.TrimSpace(a.v.GetString("format")))
	switch format {
	case "text", "json", "csv":
	default:
		return settings{}, fmt.Errorf("unsupported output format %q", format)
	}
	numPoints, xMax := a.v.GetInt("points"), a.v.GetFloat64("xmax")
	if numPoints <= 0 {
		return settings{}, fmt.Errorf("points %d: %w", numPoints, detection.ErrInvalidNumPoints)
	}
	if !(xMax > 0) || math.IsInf(xMax, 0) {
		return settings{}, fmt.Errorf("xmax %g: %w", xMax, detection.ErrInvalidXMax)
	}
	return settings{
		controls: explorer.Controls{
			Threshold: a.v.GetFloat64("threshold"),
			BaseSNRdB: a.v.GetFloat64("snr"),
			NumPulses: a.v.GetInt("pulses"),
			Model:     model,
		},
		numPoints: numPoints,
		xMax:      xMax,
		rule:      rule,
		format:    format,
	}, nil
}

// params returns the integrator input for the resolved settings and model.
func (s settings) params(model detection.ModelKind) (detection.CalculationParameters, error) {
	snr, err := detection.EffectiveSNRdB(s.controls.BaseSNRdB, s.controls.NumPulses)
	if err != nil {
		return detection.CalculationParameters{}, err
	}
	return detection.CalculationParameters{
		SNRdB:     snr,
		Threshold: s.controls.Threshold,
		Model:     model,
		NumPoints: s.numPoints,
		XMax:      s.xMax,
		Rule:      s.rule,
	}, nil
}

func newModelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the supported target models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, m := range detection.Models() {
				kind := "steady"
				if m.Fluctuating() {
					kind = "fluctuating"
				}
				fmt.Fprintf(a.out, "%-13s %s\n", m, kind)
			}
			return nil
		},
	}
}
