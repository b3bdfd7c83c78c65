package render

import "fmt"

// DiagnosticLevel grades a diagnostic.
type DiagnosticLevel string

const (
	LevelWarning DiagnosticLevel = "warning"
	LevelError   DiagnosticLevel = "error"
)

// Diagnostic is one collected render problem. Diagnostics are returned with
// the render tree instead of logged through a side channel so callers and
// tests can assert on them.
type Diagnostic struct {
	Level     DiagnosticLevel
	ElementID string
	Message   string
}

// Diagnostics accumulates render problems. The zero value is ready to use.
// A nil receiver is valid and drops entries.
type Diagnostics struct {
	entries []Diagnostic
}

// Warnf records a warning for an element. elementID may be empty for
// document-level diagnostics.
func (d *Diagnostics) Warnf(elementID, format string, args ...any) {
	if d == nil {
		return
	}
	d.entries = append(d.entries, Diagnostic{
		Level:     LevelWarning,
		ElementID: elementID,
		Message:   fmt.Sprintf(format, args...),
	})
}

// Errorf records an error for an element.
func (d *Diagnostics) Errorf(elementID, format string, args ...any) {
	if d == nil {
		return
	}
	d.entries = append(d.entries, Diagnostic{
		Level:     LevelError,
		ElementID: elementID,
		Message:   fmt.Sprintf(format, args...),
	})
}

// Entries returns the collected diagnostics in order.
func (d *Diagnostics) Entries() []Diagnostic {
	if d == nil {
		return nil
	}
	return d.entries
}

// Logger provides logging hooks.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger is a no-op logger.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}
