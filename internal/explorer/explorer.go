package explorer

import (
	"fmt"
	"sync"
	"time"

	"github.com/rjboer/swerling/internal/detection"
	"github.com/rjboer/swerling/internal/logging"
)

const defaultHistoryLimit = 100

// Snapshot is the outcome of one control change: the steady-target result
// and the result for the selected fluctuation model.
type Snapshot struct {
	Time           time.Time                 `json:"time"`
	Controls       Controls                  `json:"controls"`
	EffectiveSNRdB float64                   `json:"effectiveSnrDb"`
	Steady         detection.DetectionResult `json:"steady"`
	Fluctuating    detection.DetectionResult `json:"fluctuating"`
}

// Options configures an Explorer. Zero values select defaults.
type Options struct {
	Bounds       Bounds
	NumPoints    int
	XMax         float64
	Rule         detection.IntegrationRule
	HistoryLimit int
	CacheSize    int
	Reporter     Reporter
	Logger       logging.Logger
}

// Explorer holds the latest controls, recomputes both detection results on
// every change and fans snapshots out to subscribers.
type Explorer struct {
	updateMu sync.Mutex // serialises Update so setters never lose a change

	mu           sync.RWMutex
	controls     Controls
	latest       Snapshot
	history      []Snapshot
	historyLimit int
	subscribers  map[chan Snapshot]struct{}

	bounds    Bounds
	numPoints int
	xMax      float64
	rule      detection.IntegrationRule
	cache     *detection.Cache
	reporter  Reporter
	logger    logging.Logger
	now       func() time.Time
}

// New builds an Explorer and computes the snapshot for the initial controls.
func New(initial Controls, opts Options) (*Explorer, error) {
	if opts.Bounds.isZero() {
		opts.Bounds = DefaultBounds()
	}
	if opts.NumPoints <= 0 {
		opts.NumPoints = detection.DefaultNumPoints
	}
	if opts.XMax <= 0 {
		opts.XMax = detection.DefaultXMax
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = defaultHistoryLimit
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}

	e := &Explorer{
		historyLimit: opts.HistoryLimit,
		subscribers:  make(map[chan Snapshot]struct{}),
		bounds:       opts.Bounds,
		numPoints:    opts.NumPoints,
		xMax:         opts.XMax,
		rule:         opts.Rule,
		cache:        detection.NewCache(opts.CacheSize),
		reporter:     opts.Reporter,
		logger:       opts.Logger.With(logging.Field{Key: "subsystem", Value: "explorer"}),
		now:          time.Now,
	}
	if _, err := e.Update(initial); err != nil {
		return nil, fmt.Errorf("initial controls: %w", err)
	}
	return e, nil
}

// Update validates the controls, recomputes both results and publishes the
// new snapshot. On error the previous state is kept.
func (e *Explorer) Update(c Controls) (Snapshot, error) {
	e.updateMu.Lock()
	defer e.updateMu.Unlock()
	return e.apply(c)
}

// SetThreshold changes only the detection threshold.
func (e *Explorer) SetThreshold(v float64) (Snapshot, error) {
	return e.modify(func(c *Controls) { c.Threshold = v })
}

// SetBaseSNR changes only the per-pulse SNR in dB.
func (e *Explorer) SetBaseSNR(db float64) (Snapshot, error) {
	return e.modify(func(c *Controls) { c.BaseSNRdB = db })
}

// SetPulses changes only the number of integrated pulses.
func (e *Explorer) SetPulses(n int) (Snapshot, error) {
	return e.modify(func(c *Controls) { c.NumPulses = n })
}

// SetModel changes only the fluctuation model.
func (e *Explorer) SetModel(m detection.ModelKind) (Snapshot, error) {
	return e.modify(func(c *Controls) { c.Model = m })
}

func (e *Explorer) modify(fn func(*Controls)) (Snapshot, error) {
	e.updateMu.Lock()
	defer e.updateMu.Unlock()
	c := e.Controls()
	fn(&c)
	return e.apply(c)
}

func (e *Explorer) apply(c Controls) (Snapshot, error) {
	if err := e.bounds.Validate(c); err != nil {
		e.logger.Warn("rejected controls", logging.Field{Key: "error", Value: err.Error()})
		return Snapshot{}, err
	}
	effective, err := detection.EffectiveSNRdB(c.BaseSNRdB, c.NumPulses)
	if err != nil {
		return Snapshot{}, err
	}

	params := detection.CalculationParameters{
		SNRdB:     effective,
		Threshold: c.Threshold,
		Model:     detection.NonFluctuating,
		NumPoints: e.numPoints,
		XMax:      e.xMax,
		Rule:      e.rule,
	}
	steady, err := e.cache.Compute(params)
	if err != nil {
		return Snapshot{}, fmt.Errorf("steady target: %w", err)
	}
	params.Model = c.Model
	fluct, err := e.cache.Compute(params)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s target: %w", c.Model, err)
	}

	snap := Snapshot{
		Time:           e.now(),
		Controls:       c,
		EffectiveSNRdB: effective,
		Steady:         steady,
		Fluctuating:    fluct,
	}

	e.mu.Lock()
	e.controls = c
	e.latest = snap
	e.history = append(e.history, snap)
	if len(e.history) > e.historyLimit {
		e.history = e.history[len(e.history)-e.historyLimit:]
	}
	for ch := range e.subscribers {
		select {
		case ch <- snap:
		default:
		}
	}
	e.mu.Unlock()

	e.logger.Debug("recomputed detection statistics",
		logging.Field{Key: "effective_snr_db", Value: effective},
		logging.Field{Key: "threshold", Value: c.Threshold},
		logging.Field{Key: "model", Value: c.Model.String()},
	)
	if e.reporter != nil {
		e.reporter.Report(snap)
	}
	return snap, nil
}

// Controls returns the controls of the latest accepted update.
func (e *Explorer) Controls() Controls {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.controls
}

// Latest returns the most recent snapshot.
func (e *Explorer) Latest() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.latest
}

// History returns a copy of stored snapshots, oldest first.
func (e *Explorer) History() []Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Snapshot, len(e.history))
	copy(out, e.history)
	return out
}

// Subscribe registers a listener for new snapshots. Slow listeners miss
// snapshots rather than blocking updates.
func (e *Explorer) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 16)
	e.mu.Lock()
	e.subscribers[ch] = struct{}{}
	e.mu.Unlock()
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.subscribers, ch)
			close(ch)
			e.mu.Unlock()
		})
	}
	return ch, cancel
}
