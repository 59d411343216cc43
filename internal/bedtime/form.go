package bedtime

import (
	"time"

	"github.com/yildizm/BetterRest/internal/logger"
	"github.com/yildizm/BetterRest/internal/predict"
)

// Phase is where the form is in its idle -> calculating -> showing-result cycle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCalculating
	PhaseShowingResult
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCalculating:
		return "calculating"
	case PhaseShowingResult:
		return "showing-result"
	default:
		return "unknown"
	}
}

// Result is the title and message shown in the alert after Calculate.
// Estimate is set on success, Err on failure.
type Result struct {
	Title    string
	Message  string
	Estimate *Estimate
	Err      error
}

// OK reports whether the calculation succeeded
func (r Result) OK() bool {
	return r.Err == nil && r.Estimate != nil
}

// Form owns the three inputs and the last result.
// It is not safe for concurrent use; the UI drives it from one goroutine.
type Form struct {
	inputs     Inputs
	predictor  predict.Predictor
	timeLayout string
	now        func() time.Time
	log        *logger.Logger

	phase  Phase
	result *Result
}

// Option configures a Form
type Option func(*Form)

// WithInputs sets the starting values; invalid values are ignored
func WithInputs(in Inputs) Option {
	return func(f *Form) {
		if in.Validate() == nil {
			f.inputs = in
		}
	}
}

// WithTimeLayout sets the layout used for the success message
func WithTimeLayout(layout string) Option {
	return func(f *Form) {
		if layout != "" {
			f.timeLayout = layout
		}
	}
}

// WithClock sets the source of "today" for the wake time
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// WithLogger sets the form's logger
func WithLogger(l *logger.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.log = l
		}
	}
}

// NewForm creates a form at its defaults (07:00, 8 hours, 1 cup)
func NewForm(p predict.Predictor, opts ...Option) *Form {
	f := &Form{
		inputs:     DefaultInputs(),
		predictor:  p,
		timeLayout: DefaultTimeLayout,
		now:        time.Now,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Inputs returns the current values
func (f *Form) Inputs() Inputs {
	return f.inputs
}

// Phase returns the current phase
func (f *Form) Phase() Phase {
	return f.phase
}

// Result returns the last result, if it is still current
func (f *Form) Result() (Result, bool) {
	if f.result == nil {
		return Result{}, false
	}
	return *f.result, true
}

// SetWakeTime replaces the wake time
func (f *Form) SetWakeTime(w WakeTime) error {
	next := f.inputs
	next.Wake = w
	return f.apply(next)
}

// ShiftWakeTime moves the wake time by minutes, wrapping around midnight
func (f *Form) ShiftWakeTime(minutes int) {
	next := f.inputs
	next.Wake = next.Wake.Shift(minutes)
	_ = f.apply(next)
}

// SetSleepAmount replaces the desired sleep
func (f *Form) SetSleepAmount(hours float64) error {
	next := f.inputs
	next.SleepAmount = hours
	return f.apply(next)
}

// StepSleepAmount moves the stepper by steps quarter hours, clamped to its range
func (f *Form) StepSleepAmount(steps int) {
	next := f.inputs
	next.SleepAmount = clampFloat(next.SleepAmount+float64(steps)*SleepAmountStep, MinSleepAmount, MaxSleepAmount)
	_ = f.apply(next)
}

// SetCoffeeAmount replaces the daily coffee count
func (f *Form) SetCoffeeAmount(cups int) error {
	next := f.inputs
	next.CoffeeAmount = cups
	return f.apply(next)
}

// StepCoffeeAmount moves the picker by delta cups, clamped to its range
func (f *Form) StepCoffeeAmount(delta int) {
	next := f.inputs
	next.CoffeeAmount = clampInt(next.CoffeeAmount+delta, MinCoffeeAmount, MaxCoffeeAmount)
	_ = f.apply(next)
}

// apply validates next and, if it differs, discards the current result
func (f *Form) apply(next Inputs) error {
	if err := next.Validate(); err != nil {
		f.log.Debug("rejected input: %v", err)
		return err
	}
	if next == f.inputs {
		return nil
	}
	f.inputs = next
	f.result = nil
	f.phase = PhaseIdle
	return nil
}

// Calculate runs the prediction synchronously and stores the alert text.
// It never fails: a prediction error becomes the fixed error message.
func (f *Form) Calculate() Result {
	f.phase = PhaseCalculating
	start := f.now()

	var res Result
	est, err := Calculate(f.inputs, f.predictor, f.now())
	if err != nil {
		f.log.WarnWithFields("could not calculate bedtime", []logger.Field{
			logger.F("wake", f.inputs.Wake),
			logger.Hours("sleep", f.inputs.SleepAmount),
			logger.F("coffee", f.inputs.CoffeeAmount),
			logger.F("kind", predict.KindOf(err)),
			logger.Error(err),
		})
		res = Result{Title: ErrorTitle, Message: ErrorMessage, Err: err}
	} else {
		f.log.DebugWithFields("calculated bedtime", []logger.Field{
			logger.F("wake", f.inputs.Wake),
			logger.F("actual", est.ActualSleepDuration().Round(time.Second)),
			logger.F("bedtime", est.Format(f.timeLayout)),
			logger.Duration(f.now().Sub(start)),
		})
		res = Result{Title: SuccessTitle, Message: est.Format(f.timeLayout), Estimate: est}
	}

	f.result = &res
	f.phase = PhaseShowingResult
	return res
}

// Dismiss closes the alert. The result stays readable until the next edit.
func (f *Form) Dismiss() {
	if f.phase == PhaseShowingResult {
		f.phase = PhaseIdle
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
