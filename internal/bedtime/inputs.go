// Package bedtime holds the bedtime estimator form: its three inputs, the
// calculate operation and the message shown after it.
package bedtime

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Input ranges and defaults
const (
	MinSleepAmount  = 4.0
	MaxSleepAmount  = 8.0
	SleepAmountStep = 0.25

	MinCoffeeAmount = 1
	MaxCoffeeAmount = 20

	DefaultSleepAmount  = 8.0
	DefaultCoffeeAmount = 1
)

// DefaultWakeTime is 07:00
var DefaultWakeTime = WakeTime{Hour: 7, Minute: 0}

// WakeTime is a time of day with minute precision
type WakeTime struct {
	Hour   int `json:"hour" validate:"gte=0,lte=23"`
	Minute int `json:"minute" validate:"gte=0,lte=59"`
}

// ParseWakeTime parses "HH:MM" (24-hour clock)
func ParseWakeTime(s string) (WakeTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return WakeTime{}, fmt.Errorf("invalid wake time %q (expected HH:MM)", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return WakeTime{}, fmt.Errorf("invalid wake hour %q: %w", parts[0], err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return WakeTime{}, fmt.Errorf("invalid wake minute %q: %w", parts[1], err)
	}

	w := WakeTime{Hour: hour, Minute: minute}
	if err := validate().Struct(w); err != nil {
		return WakeTime{}, fmt.Errorf("invalid wake time %q: %w", s, describe(err))
	}
	return w, nil
}

// Seconds returns the wake time as seconds since midnight
func (w WakeTime) Seconds() int {
	return w.Hour*3600 + w.Minute*60
}

// Shift moves the time by minutes, wrapping around midnight
func (w WakeTime) Shift(minutes int) WakeTime {
	const day = 24 * 60
	total := ((w.Hour*60+w.Minute+minutes)%day + day) % day
	return WakeTime{Hour: total / 60, Minute: total % 60}
}

// String renders the time as HH:MM
func (w WakeTime) String() string {
	return fmt.Sprintf("%02d:%02d", w.Hour, w.Minute)
}

// Inputs are the three values the form feeds to the predictor
type Inputs struct {
	Wake         WakeTime `json:"wake"`
	SleepAmount  float64  `json:"sleep_amount" validate:"gte=4,lte=8,sleepstep"`
	CoffeeAmount int      `json:"coffee_amount" validate:"gte=1,lte=20"`
}

// DefaultInputs returns 07:00, 8 hours and 1 cup
func DefaultInputs() Inputs {
	return Inputs{
		Wake:         DefaultWakeTime,
		SleepAmount:  DefaultSleepAmount,
		CoffeeAmount: DefaultCoffeeAmount,
	}
}

// Validate checks every input against its control's range
func (in Inputs) Validate() error {
	if err := validate().Struct(in); err != nil {
		return describe(err)
	}
	return nil
}

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

func validate() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("sleepstep", func(fl validator.FieldLevel) bool {
			return onSleepGrid(fl.Field().Float())
		})
		validatorInst = v
	})
	return validatorInst
}

// onSleepGrid reports whether hours is a whole number of stepper steps
func onSleepGrid(hours float64) bool {
	steps := hours / SleepAmountStep
	return math.Abs(steps-math.Round(steps)) < 1e-9
}

// describe turns validator errors into readable field messages
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describeField(fe validator.FieldError) string {
	name := fieldLabel(fe.StructNamespace())
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be at least %s (got %v)", name, fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be at most %s (got %v)", name, fe.Param(), fe.Value())
	case "sleepstep":
		return fmt.Sprintf("%s must be a multiple of %.2f hours (got %v)", name, SleepAmountStep, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", name, fe.Tag())
	}
}

func fieldLabel(namespace string) string {
	switch {
	case strings.HasSuffix(namespace, "Wake.Hour"), strings.HasSuffix(namespace, "WakeTime.Hour"):
		return "wake hour"
	case strings.HasSuffix(namespace, "Wake.Minute"), strings.HasSuffix(namespace, "WakeTime.Minute"):
		return "wake minute"
	case strings.HasSuffix(namespace, "SleepAmount"):
		return "sleep amount"
	case strings.HasSuffix(namespace, "CoffeeAmount"):
		return "coffee amount"
	default:
		return namespace
	}
}
