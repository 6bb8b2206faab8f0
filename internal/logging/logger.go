package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// LogLevel represents the severity of a log message
type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

var levelRank = map[LogLevel]int{
	LogLevelDebug: 0,
	LogLevelInfo:  1,
	LogLevelWarn:  2,
	LogLevelError: 3,
}

// Logger provides structured logging for one engine component.
type Logger struct {
	component string
	minLevel  LogLevel
	outputs   []io.Writer
	mu        sync.Mutex
}

// NewLogger creates a new logger for a specific component
func NewLogger(component string) *Logger {
	return &Logger{
		component: component,
		minLevel:  LogLevelInfo,
		outputs:   []io.Writer{os.Stdout},
	}
}

// SetMinLevel sets the minimum log level to output
func (l *Logger) SetMinLevel(level LogLevel) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = level
	return l
}

// AddOutput adds an output writer for logs
func (l *Logger) AddOutput(w io.Writer) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.outputs = append(l.outputs, w)
	return l
}

func (l *Logger) log(level LogLevel, message string, err error, context map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if levelRank[level] < levelRank[l.minLevel] {
		return
	}

	msg := fmt.Sprintf("[%s] %s [%s] %s",
		time.Now().Format("2006-01-02 15:04:05.000"), level, l.component, message)
	if err != nil {
		msg += fmt.Sprintf(" | error=%v", err)
	}
	for k, v := range context {
		msg += fmt.Sprintf(" %s=%v", k, v)
	}
	msg += "\n"

	for _, output := range l.outputs {
		output.Write([]byte(msg))
	}
}

// Debug logs a debug message
func (l *Logger) Debug(message string) {
	l.log(LogLevelDebug, message, nil, nil)
}

// DebugWithContext logs a debug message with context
func (l *Logger) DebugWithContext(message string, context map[string]interface{}) {
	l.log(LogLevelDebug, message, nil, context)
}

// Info logs an info message
func (l *Logger) Info(message string) {
	l.log(LogLevelInfo, message, nil, nil)
}

// InfoWithContext logs an info message with context
func (l *Logger) InfoWithContext(message string, context map[string]interface{}) {
	l.log(LogLevelInfo, message, nil, context)
}

// Warn logs a warning message
func (l *Logger) Warn(message string) {
	l.log(LogLevelWarn, message, nil, nil)
}

// WarnWithContext logs a warning message with context
func (l *Logger) WarnWithContext(message string, context map[string]interface{}) {
	l.log(LogLevelWarn, message, nil, context)
}

// Error logs an error message
func (l *Logger) Error(message string, err error) {
	l.log(LogLevelError, message, err, nil)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(message string, err error, context map[string]interface{}) {
	l.log(LogLevelError, message, err, context)
}
