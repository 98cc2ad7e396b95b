package ui

import (
	"fmt"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"

	"github.com/ytget/page-downloader/internal/model"
)

func event(severity model.Severity, message string) model.LogEvent {
	return model.LogEvent{
		Time:     time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC),
		Severity: severity,
		Message:  message,
	}
}

func TestLogViewAppend(t *testing.T) {
	test.NewApp()
	view := NewLogView(10)

	view.Append([]model.LogEvent{
		event(model.SeverityInfo, "Processing URL 1/1"),
		event(model.SeverityError, "✗ Timeout: 30s"),
	})

	lines := view.Lines()
	assert.Equal(t, []string{"[15:04:05] INFO: Processing URL 1/1", "[15:04:05] ERROR: ✗ Timeout: 30s"}, lines)

	segment := view.text.Segments[1].(*widget.TextSegment)
	assert.Equal(t, ColorNameLogError, segment.Style.ColorName)
	assert.False(t, segment.Style.Inline)
}

func TestLogViewKeepsNewestLines(t *testing.T) {
	test.NewApp()
	view := NewLogView(3)

	batch := make([]model.LogEvent, 0, 5)
	for i := 1; i <= 5; i++ {
		batch = append(batch, event(model.SeverityInfo, fmt.Sprintf("line %d", i)))
	}
	view.Append(batch)

	lines := view.Lines()
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "line 3")
	assert.Contains(t, lines[2], "line 5")

	view.Clear()
	assert.Empty(t, view.Lines())
}
