package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ytget/page-downloader/internal/model"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid settings")

var validate = validator.New(validator.WithRequiredStructEnabled())

var fieldLabels = map[string]string{
	"DownloadDir":     "download folder",
	"Selector":        "button selector",
	"MaxRetries":      "max retries",
	"Delay":           "delay",
	"PageTimeout":     "page timeout",
	"DownloadTimeout": "download timeout",
	"Engine":          "browser engine",
	"Driver":          "browser driver",
}

// Validate checks a run configuration and returns an error whose message can
// be shown to the operator as is.
func Validate(cfg model.RunConfig) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(messages, "; "))
}

func describe(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid (%s)", label, fe.Tag())
	}
}
