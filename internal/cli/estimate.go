package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yildizm/BetterRest/internal/bedtime"
	"github.com/yildizm/BetterRest/internal/formatter"
)

var (
	estimateWake   string
	estimateSleep  float64
	estimateCoffee int
)

// errCalculationFailed is returned after the failure alert has been printed
var errCalculationFailed = errors.New("bedtime calculation failed")

func newEstimateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Calculate a bedtime without the interactive form",
		Long: `Calculate the ideal bedtime for one set of inputs and print it.

Flags that are not given fall back to the defaults section of the
configuration file.

Examples:
  betterrest estimate
  betterrest estimate --wake 06:30 --sleep 7.5 --coffee 3
  betterrest estimate --wake 07:00 -o json`,
		Args: cobra.NoArgs,
		RunE: runEstimate,
	}

	cmd.Flags().StringVarP(&estimateWake, "wake", "w", "", "wake-up time (HH:MM)")
	cmd.Flags().Float64VarP(&estimateSleep, "sleep", "s", bedtime.DefaultSleepAmount, "desired hours of sleep (4-8, quarter hours)")
	cmd.Flags().IntVar(&estimateCoffee, "coffee", bedtime.DefaultCoffeeAmount, "daily cups of coffee (1-20)")

	return cmd
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	in, err := estimateInputs(cmd, cfg.Defaults.WakeTime, cfg.Defaults.SleepAmount, cfg.Defaults.CoffeeAmount)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	f, err := formatter.New(outputFormat(cfg), formatter.Options{
		Color:      colorEnabled(cfg, out),
		TimeLayout: cfg.Output.TimeFormat,
	})
	if err != nil {
		return err
	}

	log := newLogger(cfg, cmd.ErrOrStderr())
	form := bedtime.NewForm(newPredictor(cfg, log),
		bedtime.WithInputs(in),
		bedtime.WithTimeLayout(cfg.Output.TimeFormat),
		bedtime.WithLogger(log.WithComponent("form")),
	)
	res := form.Calculate()

	data, err := f.Format(res)
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if !res.OK() {
		return errCalculationFailed
	}
	return nil
}

// estimateInputs merges the flags that were set over the configured defaults
func estimateInputs(cmd *cobra.Command, wake string, sleep float64, coffee int) (bedtime.Inputs, error) {
	if cmd.Flags().Changed("wake") {
		wake = estimateWake
	}
	if cmd.Flags().Changed("sleep") {
		sleep = estimateSleep
	}
	if cmd.Flags().Changed("coffee") {
		coffee = estimateCoffee
	}

	w, err := bedtime.ParseWakeTime(wake)
	if err != nil {
		return bedtime.Inputs{}, fmt.Errorf("invalid --wake: %w", err)
	}
	in := bedtime.Inputs{Wake: w, SleepAmount: sleep, CoffeeAmount: coffee}
	if err := in.Validate(); err != nil {
		return bedtime.Inputs{}, fmt.Errorf("invalid inputs: %w", err)
	}
	return in, nil
}
