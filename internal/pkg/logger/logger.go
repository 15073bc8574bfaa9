package logger

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
)

// StdLogger is a lightweight implementation backed by Go's log package.
// Debug and Info lines are written only when verbose; Warn and Error always.
type StdLogger struct {
	verbose bool
	out     *log.Logger
}

// NewStd creates a StdLogger writing to the standard logger.
func NewStd(verbose bool) *StdLogger {
	return &StdLogger{verbose: verbose, out: log.Default()}
}

// NewWriter creates a StdLogger writing to w.
func NewWriter(w io.Writer, verbose bool) *StdLogger {
	return &StdLogger{verbose: verbose, out: log.New(w, "", log.LstdFlags)}
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	if l.verbose {
		l.print("DEBUG", msg, fields)
	}
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	if l.verbose {
		l.print("INFO", msg, fields)
	}
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.print("WARN", msg, fields)
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	l.print("ERROR", msg, fields)
}

func (l *StdLogger) print(level, msg string, fields map[string]interface{}) {
	l.out.Printf("[%s] %s%s", level, msg, formatFields(fields))
}

// formatFields renders fields as " key=value" pairs in key order.
func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}

// Nop discards everything.
type Nop struct{}

func (Nop) Debug(string, map[string]interface{})        {}
func (Nop) Info(string, map[string]interface{})         {}
func (Nop) Warn(string, map[string]interface{})         {}
func (Nop) Error(string, error, map[string]interface{}) {}
