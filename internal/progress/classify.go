package progress

import (
	"strings"

	"github.com/ytget/page-downloader/internal/model"
)

// Markers recognised by Classify
const (
	MarkSuccess = "✓"
	MarkFailure = "✗"
)

// Classify derives a severity from free text. It looks for "SUCCESS" or the
// success mark, then "ERROR" or the failure mark, then "WARNING", and
// defaults to info. Text that merely contains one of these words (a file
// named error.log, say) is misclassified, so structured emitters should be
// preferred for anything produced by this program.
func Classify(message string) model.Severity {
	switch {
	case strings.Contains(message, "SUCCESS") || strings.Contains(message, MarkSuccess):
		return model.SeveritySuccess
	case strings.Contains(message, "ERROR") || strings.Contains(message, MarkFailure):
		return model.SeverityError
	case strings.Contains(message, "WARNING"):
		return model.SeverityWarning
	default:
		return model.SeverityInfo
	}
}
