package bedtime

import (
	"fmt"
	"math"
	"strconv"
)

// Text shown by the form
const (
	WakePrompt   = "When do you want to wake up?"
	SleepPrompt  = "Desired amount of sleep"
	CoffeePrompt = "Daily coffee intake"

	SuccessTitle = "Your ideal bedtime is…"
	ErrorTitle   = "Error"
	ErrorMessage = "Sorry, there was a problem calculating your bedtime."
)

// SleepLabel renders the stepper value, e.g. "8 hours" or "7.25 hours"
func SleepLabel(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64) + " hours"
}

// DurationLabel renders hours as "7h 30m", rounded to the minute
func DurationLabel(hours float64) string {
	total := int(math.Round(hours * 60))
	h, m := total/60, total%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}

// CoffeeLabel renders the picker value, "1 cup" or "N cups"
func CoffeeLabel(cups int) string {
	if cups == 1 {
		return "1 cup"
	}
	return fmt.Sprintf("%d cups", cups)
}
