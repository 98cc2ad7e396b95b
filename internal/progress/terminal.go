package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/ytget/page-downloader/internal/model"
)

// TerminalSink prints events to a terminal with severity colours. Colours
// are dropped automatically when w is not a terminal.
type TerminalSink struct {
	mu        sync.Mutex
	w         io.Writer
	timestamp lipgloss.Style
	styles    map[model.Severity]lipgloss.Style
}

// NewTerminalSink creates a sink writing to w
func NewTerminalSink(w io.Writer) *TerminalSink {
	renderer := lipgloss.NewRenderer(w)
	return &TerminalSink{
		w:         w,
		timestamp: renderer.NewStyle().Faint(true),
		styles: map[model.Severity]lipgloss.Style{
			model.SeverityInfo:    renderer.NewStyle(),
			model.SeveritySuccess: renderer.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
			model.SeverityWarning: renderer.NewStyle().Foreground(lipgloss.Color("3")),
			model.SeverityError:   renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		},
	}
}

// Write prints a batch; it satisfies Sink
func (s *TerminalSink) Write(batch []model.LogEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, event := range batch {
		fmt.Fprintln(s.w, s.render(event))
	}
}

func (s *TerminalSink) render(event model.LogEvent) string {
	style, ok := s.styles[event.Severity]
	if !ok {
		style = s.styles[model.SeverityInfo]
	}
	stamp := s.timestamp.Render("[" + event.Time.Format(model.LogTimeLayout) + "]")
	return stamp + " " + style.Render(event.Severity.String()+": "+event.Message)
}
