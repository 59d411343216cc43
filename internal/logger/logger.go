package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// VerboseChecker reports whether debug and info lines should be written
type VerboseChecker interface {
	IsVerbose() bool
}

// Logger writes component-tagged lines; Debug and Info only in verbose mode
type Logger struct {
	component      string
	verboseChecker VerboseChecker
	writer         io.Writer
	now            func() time.Time
}

// Field is a key-value pair appended to a log line
type Field struct {
	Key   string
	Value interface{}
}

// New creates a logger writing to stderr
func New(component string, verboseChecker VerboseChecker) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: verboseChecker,
		writer:         os.Stderr,
		now:            time.Now,
	}
}

// NewWithCallback creates a logger whose verbosity is decided by verboseCheck
func NewWithCallback(component string, verboseCheck func() bool) *Logger {
	return New(component, &callbackChecker{callback: verboseCheck})
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return New("", nil).WithWriter(io.Discard)
}

// WithComponent returns a copy tagged with component
func (l *Logger) WithComponent(component string) *Logger {
	if l == nil {
		return nil
	}
	c := *l
	c.component = component
	return &c
}

// WithWriter returns a copy writing to w.
// The TUI uses this to keep log lines off the alt screen.
func (l *Logger) WithWriter(w io.Writer) *Logger {
	if l == nil {
		return nil
	}
	c := *l
	c.writer = w
	return &c
}

type callbackChecker struct {
	callback func() bool
}

func (c *callbackChecker) IsVerbose() bool {
	if c.callback == nil {
		return false
	}
	return c.callback()
}

func (l *Logger) verbose() bool {
	return l != nil && l.verboseChecker != nil && l.verboseChecker.IsVerbose()
}

// Debug logs only when verbose
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.verbose() {
		l.log("DEBUG", msg, nil, args...)
	}
}

// Info logs only when verbose
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.verbose() {
		l.log("INFO", msg, nil, args...)
	}
}

// Warn always logs
func (l *Logger) Warn(msg string, args ...interface{}) {
	if l != nil {
		l.log("WARN", msg, nil, args...)
	}
}

// Error always logs
func (l *Logger) Error(msg string, args ...interface{}) {
	if l != nil {
		l.log("ERROR", msg, nil, args...)
	}
}

// DebugWithFields logs msg and fields only when verbose
func (l *Logger) DebugWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.log("DEBUG", msg, fields, args...)
	}
}

// InfoWithFields logs msg and fields only when verbose
func (l *Logger) InfoWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.log("INFO", msg, fields, args...)
	}
}

// WarnWithFields always logs msg and fields
func (l *Logger) WarnWithFields(msg string, fields []Field, args ...interface{}) {
	if l != nil {
		l.log("WARN", msg, fields, args...)
	}
}

// log writes "[15:04:05.000] LEVEL [component] message [k=v ...]"
func (l *Logger) log(level, msg string, fields []Field, args ...interface{}) {
	component := l.component
	if component == "" {
		component = "main"
	}
	now := l.now
	if now == nil {
		now = time.Now
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s [%s] ", now().Format("15:04:05.000"), level, component)
	if len(args) > 0 {
		fmt.Fprintf(&b, msg, args...)
	} else {
		b.WriteString(msg)
	}

	if len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for _, field := range fields {
			parts = append(parts, fmt.Sprintf("%s=%v", field.Key, field.Value))
		}
		b.WriteString(" [" + strings.Join(parts, " ") + "]")
	}
	b.WriteByte('\n')

	// Nothing sensible to do if the log sink itself fails
	_, _ = io.WriteString(l.writer, b.String())
}

// F builds an arbitrary field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Hours formats a duration in hours with two decimals
func Hours(key string, hours float64) Field {
	return Field{Key: key, Value: fmt.Sprintf("%.2fh", hours)}
}

// Duration records how long something took
func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

// Error records an error
func Error(err error) Field {
	return Field{Key: "error", Value: err}
}
