package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/ytget/page-downloader/internal/model"
)

// DefaultRelayInterval is how often a Relay drains the reporter
const DefaultRelayInterval = 50 * time.Millisecond

// Sink receives batches of events in emission order. UI sinks are expected
// to marshal the batch onto their own event loop.
type Sink func(batch []model.LogEvent)

// Relay moves events from a Reporter to a Sink on a fixed tick
type Relay struct {
	reporter *Reporter
	interval time.Duration
	maxBatch int
}

// NewRelay creates a relay for reporter
func NewRelay(reporter *Reporter, interval time.Duration) *Relay {
	if interval <= 0 {
		interval = DefaultRelayInterval
	}
	return &Relay{
		reporter: reporter,
		interval: interval,
		maxBatch: cap(reporter.events),
	}
}

// Run delivers events until the reporter is closed or ctx is done. Events
// still buffered when the reporter closes are delivered before Run returns.
func (rl *Relay) Run(ctx context.Context, sink Sink) error {
	ticker := time.NewTicker(rl.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			rl.flush(sink)
			return ctx.Err()
		case <-ticker.C:
			if open := rl.flush(sink); !open {
				return nil
			}
		}
	}
}

// flush drains up to one buffer worth of events and reports whether the
// stream is still open
func (rl *Relay) flush(sink Sink) bool {
	batch := make([]model.LogEvent, 0, 16)
	open := true

drain:
	for len(batch) < rl.maxBatch {
		select {
		case event, ok := <-rl.reporter.events:
			if !ok {
				open = false
				break drain
			}
			batch = append(batch, event)
		default:
			break drain
		}
	}

	if n := rl.reporter.Dropped(); n > 0 {
		batch = append(batch, model.LogEvent{
			Time:     rl.reporter.now(),
			Severity: model.SeverityWarning,
			Message:  fmt.Sprintf("%d log messages were dropped", n),
		})
	}

	if len(batch) > 0 {
		sink(batch)
	}
	return open
}
