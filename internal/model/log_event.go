package model

import (
	"fmt"
	"time"
)

// LogTimeLayout is the timestamp layout used in rendered log lines
const LogTimeLayout = "15:04:05"

// Severity classifies a log event for presentation
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

// String returns the upper-case label shown in log lines
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeveritySuccess:
		return "SUCCESS"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LogEvent is a single timestamped progress message. Events are values and
// are never modified after creation.
type LogEvent struct {
	RunID    string
	Time     time.Time
	Severity Severity
	Message  string
}

// String renders the event as "[hh:mm:ss] LEVEL: message"
func (e LogEvent) String() string {
	return fmt.Sprintf("[%s] %s: %s", e.Time.Format(LogTimeLayout), e.Severity, e.Message)
}
