package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunConfig_Attempts(t *testing.T) {
	tests := []struct {
		retries  int
		expected int
	}{
		{0, 1},
		{2, 3},
		{5, 6},
		{-1, 1},
	}

	for _, test := range tests {
		cfg := RunConfig{MaxRetries: test.retries}
		assert.Equal(t, test.expected, cfg.Attempts(), "MaxRetries=%d", test.retries)
	}
}

func TestRunResult_Counts(t *testing.T) {
	result := RunResult{Total: 5, Succeeded: 2, Failed: 1, FailedURLs: []string{"https://a.test/3"}}

	assert.Equal(t, 3, result.Processed())
	assert.Equal(t, 2, result.Skipped())
}

func TestNewRunID(t *testing.T) {
	id1 := NewRunID()
	id2 := NewRunID()

	assert.NotEqual(t, id1, id2)
	assert.True(t, strings.HasPrefix(id1, "run-"))
	assert.Len(t, id1, len("run-")+36)
}

func TestLogEvent_String(t *testing.T) {
	event := LogEvent{
		Time:     time.Date(2025, 3, 1, 9, 5, 7, 0, time.UTC),
		Severity: SeverityWarning,
		Message:  "Download button not found: #dl",
	}

	assert.Equal(t, "[09:05:07] WARNING: Download button not found: #dl", event.String())
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		expected string
	}{
		{SeverityInfo, "INFO"},
		{SeveritySuccess, "SUCCESS"},
		{SeverityWarning, "WARNING"},
		{SeverityError, "ERROR"},
		{Severity(42), "UNKNOWN"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.severity.String())
	}
}

func TestEngineOptions(t *testing.T) {
	assert.Equal(t, []BrowserEngine{EngineChromium, EngineFirefox, EngineWebKit, EngineCustom}, EngineOptions())
	assert.Equal(t, []Driver{DriverPlaywright, DriverRod}, DriverOptions())
}
