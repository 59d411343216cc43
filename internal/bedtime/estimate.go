package bedtime

import (
	"fmt"
	"math"
	"time"

	"github.com/yildizm/BetterRest/internal/predict"
)

// DefaultTimeLayout renders bedtimes as a 24-hour short time
const DefaultTimeLayout = "15:04"

// Estimate is the outcome of one successful calculation
type Estimate struct {
	Inputs      Inputs    `json:"inputs"`
	ActualSleep float64   `json:"actual_sleep_hours"`
	Wake        time.Time `json:"wake"`
	Bedtime     time.Time `json:"bedtime"`
	PreviousDay bool      `json:"previous_day"`
}

// Format renders the bedtime with layout, falling back to DefaultTimeLayout
func (e *Estimate) Format(layout string) string {
	if layout == "" {
		layout = DefaultTimeLayout
	}
	return e.Bedtime.Format(layout)
}

// ActualSleepDuration returns the predicted sleep as a time.Duration
func (e *Estimate) ActualSleepDuration() time.Duration {
	return hoursToDuration(e.ActualSleep)
}

// Calculate validates in, asks p for the actual sleep and subtracts it
// from the wake time on ref's day (in ref's location).
//
// Validation failures are returned as-is; every predictor failure,
// including a panic inside p, matches predict.ErrPredictionUnavailable.
func Calculate(in Inputs, p predict.Predictor, ref time.Time) (*Estimate, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, predict.NewLoadError("", "no predictor configured", nil)
	}

	actual, err := safePredict(p, in)
	if err != nil {
		return nil, predict.Unavailable(err)
	}
	if math.IsNaN(actual) || math.IsInf(actual, 0) || actual <= 0 || actual > predict.MaxActualSleepHours {
		return nil, predict.NewEvaluateError("", fmt.Sprintf("unusable prediction: %v", actual), nil)
	}

	y, m, d := ref.Date()
	wake := time.Date(y, m, d, in.Wake.Hour, in.Wake.Minute, 0, 0, ref.Location())
	bed := wake.Add(-hoursToDuration(actual))

	by, bm, bd := bed.Date()
	return &Estimate{
		Inputs:      in,
		ActualSleep: actual,
		Wake:        wake,
		Bedtime:     bed,
		PreviousDay: by != y || bm != m || bd != d,
	}, nil
}

func safePredict(p predict.Predictor, in Inputs) (hours float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = predict.NewEvaluateError("", fmt.Sprintf("predictor panicked: %v", r), nil)
		}
	}()
	return p.PredictSleep(float64(in.Wake.Seconds()), in.SleepAmount, float64(in.CoffeeAmount))
}

func hoursToDuration(hours float64) time.Duration {
	return time.Duration(math.Round(hours * float64(time.Hour)))
}
