// ABOUTME: LogEntry is one row of the append-only audit log
// ABOUTME: Rows are immutable once written and ordered by insertion id
package models

import (
	"errors"
	"strings"
	"time"
)

// LogLevel is the severity recorded with an audit row
type LogLevel string

const (
	LevelInfo    LogLevel = "INFO"
	LevelWarning LogLevel = "WARNING"
	LevelError   LogLevel = "ERROR"
)

// IsValid reports whether l is one of the known levels
func (l LogLevel) IsValid() bool {
	switch l {
	case LevelInfo, LevelWarning, LevelError:
		return true
	}
	return false
}

// LogEntry represents a stored audit log row
type LogEntry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
}

// NewLogEntry creates an entry stamped with the current UTC time
func NewLogEntry(level LogLevel, message string) (*LogEntry, error) {
	if !level.IsValid() {
		return nil, errors.New("unknown log level: " + string(level))
	}
	if strings.TrimSpace(message) == "" {
		return nil, errors.New("message cannot be empty")
	}
	return &LogEntry{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Message:   message,
	}, nil
}
