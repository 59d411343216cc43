// Package predict wraps the pre-trained sleep regression model behind a
// single call: wake seconds, desired sleep and coffee in, actual sleep out.
package predict

// Predictor estimates how many hours a person will actually sleep.
//
// wake is the wake time in seconds since midnight, estimatedSleep the
// desired sleep in hours and coffee the number of cups drunk per day.
// Any failure matches ErrPredictionUnavailable.
type Predictor interface {
	PredictSleep(wake, estimatedSleep, coffee float64) (float64, error)
}

// Func adapts an ordinary function to the Predictor interface
type Func func(wake, estimatedSleep, coffee float64) (float64, error)

// PredictSleep calls f
func (f Func) PredictSleep(wake, estimatedSleep, coffee float64) (float64, error) {
	return f(wake, estimatedSleep, coffee)
}

// Fixed returns a Predictor that always predicts hours
func Fixed(hours float64) Predictor {
	return Func(func(_, _, _ float64) (float64, error) {
		return hours, nil
	})
}

// Failing returns a Predictor that always fails with a load error
func Failing(cause error) Predictor {
	return Func(func(_, _, _ float64) (float64, error) {
		return 0, NewLoadError("", "model unavailable", cause)
	})
}
