package formatter

import (
	"encoding/json"

	"github.com/yildizm/BetterRest/internal/bedtime"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct {
	timeLayout string
}

// NewJSON creates a new JSON formatter
func NewJSON(opts Options) Formatter {
	return &jsonFormatter{timeLayout: opts.TimeLayout}
}

// ResultOutput is the JSON document written by the estimate command
type ResultOutput struct {
	OK          bool         `json:"ok"`
	Title       string       `json:"title"`
	Message     string       `json:"message"`
	Bedtime     string       `json:"bedtime,omitempty"`
	PreviousDay bool         `json:"previous_day,omitempty"`
	ActualSleep float64      `json:"actual_sleep_hours,omitempty"`
	Inputs      *InputOutput `json:"inputs,omitempty"`
}

// InputOutput echoes the form inputs
type InputOutput struct {
	WakeTime     string  `json:"wake_time"`
	SleepAmount  float64 `json:"sleep_amount"`
	CoffeeAmount int     `json:"coffee_amount"`
}

func (f *jsonFormatter) Format(res bedtime.Result) ([]byte, error) {
	output := &ResultOutput{
		OK:      res.OK(),
		Title:   res.Title,
		Message: res.Message,
	}

	if est := res.Estimate; res.OK() {
		output.Bedtime = est.Format(f.timeLayout)
		output.PreviousDay = est.PreviousDay
		output.ActualSleep = est.ActualSleep
		output.Inputs = &InputOutput{
			WakeTime:     est.Inputs.Wake.String(),
			SleepAmount:  est.Inputs.SleepAmount,
			CoffeeAmount: est.Inputs.CoffeeAmount,
		}
	}

	return json.MarshalIndent(output, "", "  ")
}
