package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# BetterRest configuration
version: "1.0"

model:
  # Regression artifact (.yaml/.yml/.json). Empty uses the built-in model.
  path: ""
  # Re-validate the artifact whenever it changes (TUI status line)
  watch: false

defaults:
  # Values the form starts with
  wake_time: "07:00"    # HH:MM, 24-hour clock
  sleep_amount: 8       # hours, 4 to 8 in 0.25 steps
  coffee_amount: 1      # cups per day, 1 to 20

output:
  default_format: text  # text|json|markdown
  color_mode: auto      # auto|always|never
  time_format: "15:04"  # Go time layout, e.g. "3:04 PM"
  theme: default        # default|high-contrast|minimal
  no_emoji: false

log:
  verbose: false
  # Where the TUI writes log lines; empty discards them
  file: ""
`
}

// MinimalSampleConfig returns a compact configuration file
func MinimalSampleConfig() string {
	return `version: "1.0"
defaults:
  wake_time: "07:00"
  sleep_amount: 8
  coffee_amount: 1
output:
  time_format: "15:04"
`
}
