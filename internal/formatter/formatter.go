package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/BetterRest/internal/bedtime"
)

// Formatter renders the outcome of one calculation
type Formatter interface {
	Format(res bedtime.Result) ([]byte, error)
}

// Options control rendering details shared by every formatter
type Options struct {
	Color      bool
	TimeLayout string
}

// Formats lists the supported output formats
func Formats() []string {
	return []string{"text", "json", "markdown"}
}

// New returns the formatter for format
func New(format string, opts Options) (Formatter, error) {
	if opts.TimeLayout == "" {
		opts.TimeLayout = bedtime.DefaultTimeLayout
	}

	switch format {
	case "", "text":
		return NewTerminal(opts), nil
	case "json":
		return NewJSON(opts), nil
	case "markdown", "md":
		return NewMarkdown(opts), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (use %s)", format, strings.Join(Formats(), ", "))
	}
}

// bedtimeLine renders "23:30" or "23:30 (previous day)"
func bedtimeLine(est *bedtime.Estimate, layout string) string {
	line := est.Format(layout)
	if est.PreviousDay {
		line += " (previous day)"
	}
	return line
}
