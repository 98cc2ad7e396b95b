package progress

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ytget/page-downloader/internal/model"
)

// DefaultBufferSize is the capacity of the event channel
const DefaultBufferSize = 1024

// Reporter timestamps log messages and queues them for the presentation
// layer. All methods are safe for concurrent use.
type Reporter struct {
	events  chan model.LogEvent
	dropped atomic.Int64
	logger  *slog.Logger
	now     func() time.Time

	mu     sync.RWMutex
	runID  string
	closed bool
}

// Option configures a Reporter
type Option func(*Reporter)

// WithLogger mirrors every event to logger
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reporter) {
		r.logger = logger
	}
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) {
		r.now = now
	}
}

// NewReporter creates a reporter with a channel of the given capacity
func NewReporter(bufferSize int, opts ...Option) *Reporter {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	r := &Reporter{
		events: make(chan model.LogEvent, bufferSize),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Events returns the ordered event stream. It is closed by Close.
func (r *Reporter) Events() <-chan model.LogEvent {
	return r.events
}

// SetRunID tags subsequent events with runID
func (r *Reporter) SetRunID(runID string) {
	r.mu.Lock()
	r.runID = runID
	r.mu.Unlock()
}

// Emit queues message with a severity derived by Classify
func (r *Reporter) Emit(message string) {
	r.publish(Classify(message), message)
}

// Info queues an info event
func (r *Reporter) Info(format string, args ...any) {
	r.publish(model.SeverityInfo, fmt.Sprintf(format, args...))
}

// Success queues a success event
func (r *Reporter) Success(format string, args ...any) {
	r.publish(model.SeveritySuccess, fmt.Sprintf(format, args...))
}

// Warning queues a warning event
func (r *Reporter) Warning(format string, args ...any) {
	r.publish(model.SeverityWarning, fmt.Sprintf(format, args...))
}

// Error queues an error event
func (r *Reporter) Error(format string, args ...any) {
	r.publish(model.SeverityError, fmt.Sprintf(format, args...))
}

// Dropped returns and resets the number of events lost to a full buffer
func (r *Reporter) Dropped() int64 {
	return r.dropped.Swap(0)
}

// Close ends the event stream. Events emitted afterwards are discarded.
func (r *Reporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	close(r.events)
}

func (r *Reporter) publish(severity model.Severity, message string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event := model.LogEvent{
		RunID:    r.runID,
		Time:     r.now(),
		Severity: severity,
		Message:  message,
	}
	r.mirror(event)

	if r.closed {
		return
	}
	select {
	case r.events <- event:
	default:
		r.dropped.Add(1)
	}
}

func (r *Reporter) mirror(event model.LogEvent) {
	if r.logger == nil {
		return
	}
	level := slog.LevelInfo
	switch event.Severity {
	case model.SeverityWarning:
		level = slog.LevelWarn
	case model.SeverityError:
		level = slog.LevelError
	}
	attrs := []any{"severity", event.Severity.String()}
	if event.RunID != "" {
		attrs = append(attrs, "run_id", event.RunID)
	}
	r.logger.Log(context.Background(), level, event.Message, attrs...)
}
