package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/page-downloader/internal/model"
)

// LogView renders log events as coloured lines and keeps the newest maxLines.
// It must only be used from the UI goroutine.
type LogView struct {
	text     *widget.RichText
	scroll   *container.Scroll
	maxLines int
}

// NewLogView creates an empty log view
func NewLogView(maxLines int) *LogView {
	if maxLines <= 0 {
		maxLines = MaxLogLines
	}
	text := widget.NewRichText()
	text.Wrapping = fyne.TextWrapWord

	scroll := container.NewVScroll(text)
	scroll.SetMinSize(fyne.NewSize(0, LogMinHeight))

	return &LogView{text: text, scroll: scroll, maxLines: maxLines}
}

// Container returns the scrollable widget to place in a layout
func (v *LogView) Container() fyne.CanvasObject {
	return v.scroll
}

// Append adds events in order and scrolls to the newest line
func (v *LogView) Append(events []model.LogEvent) {
	if len(events) == 0 {
		return
	}

	for _, event := range events {
		v.text.Segments = append(v.text.Segments, newLogSegment(event))
	}
	if excess := len(v.text.Segments) - v.maxLines; excess > 0 {
		v.text.Segments = append([]widget.RichTextSegment(nil), v.text.Segments[excess:]...)
	}

	v.text.Refresh()
	v.scroll.ScrollToBottom()
}

// Clear removes every line
func (v *LogView) Clear() {
	v.text.Segments = nil
	v.text.Refresh()
}

// Lines returns the rendered text of each line
func (v *LogView) Lines() []string {
	lines := make([]string, 0, len(v.text.Segments))
	for _, segment := range v.text.Segments {
		lines = append(lines, segment.Textual())
	}
	return lines
}

func newLogSegment(event model.LogEvent) *widget.TextSegment {
	style := widget.RichTextStyleParagraph
	style.ColorName = SeverityColorName(event.Severity)
	if event.Severity == model.SeverityError || event.Severity == model.SeveritySuccess {
		style.TextStyle = fyne.TextStyle{Bold: true}
	}
	return &widget.TextSegment{Text: event.String(), Style: style}
}
