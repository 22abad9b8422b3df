package explorer

import "github.com/rjboer/swerling/internal/logging"

// Reporter receives every published snapshot.
type Reporter interface {
	Report(s Snapshot)
}

// MultiReporter fans out snapshots to multiple destinations.
type MultiReporter []Reporter

// Report forwards the snapshot to each configured reporter.
func (m MultiReporter) Report(s Snapshot) {
	for _, r := range m {
		if r != nil {
			r.Report(s)
		}
	}
}

// LogReporter writes one structured log entry per snapshot.
type LogReporter struct {
	logger logging.Logger
}

// NewLogReporter builds a reporter with the provided logger.
func NewLogReporter(logger logging.Logger) LogReporter {
	if logger == nil {
		logger = logging.Default()
	}
	return LogReporter{logger: logger}
}

func (r LogReporter) Report(s Snapshot) {
	r.logger.Info("detection snapshot",
		logging.Field{Key: "subsystem", Value: "explorer"},
		logging.Field{Key: "threshold", Value: s.Controls.Threshold},
		logging.Field{Key: "base_snr_db", Value: s.Controls.BaseSNRdB},
		logging.Field{Key: "pulses", Value: s.Controls.NumPulses},
		logging.Field{Key: "effective_snr_db", Value: s.EffectiveSNRdB},
		logging.Field{Key: "model", Value: s.Controls.Model.String()},
		logging.Field{Key: "steady_pd", Value: s.Steady.Pd},
		logging.Field{Key: "fluctuating_pd", Value: s.Fluctuating.Pd},
		logging.Field{Key: "pfa", Value: s.Steady.Pfa},
	)
}
