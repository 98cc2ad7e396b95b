package browser

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/xpath"
)

// SelectorKind tells which query language a selection expression uses
type SelectorKind int

const (
	SelectorCSS SelectorKind = iota
	SelectorXPath
	// SelectorPlaywright covers Playwright-only syntax such as text= or :has-text()
	SelectorPlaywright
)

// String returns a display name for the kind
func (k SelectorKind) String() string {
	switch k {
	case SelectorCSS:
		return "CSS"
	case SelectorXPath:
		return "XPath"
	case SelectorPlaywright:
		return "Playwright"
	default:
		return "Unknown"
	}
}

// Selector prefixes understood by Playwright
const (
	PrefixCSS   = "css="
	PrefixXPath = "xpath="
)

var playwrightEnginePrefixes = []string{
	"text=", "id=", "data-testid=", "data-test-id=", "data-test=", "role=", "internal:", "nth=",
}

var playwrightPseudoClasses = []string{
	":has-text(", ":text(", ":text-is(", ":text-matches(", ":visible", ":nth-match(", ":left-of(",
	":right-of(", ":above(", ":below(", ":near(",
}

// Selector is a parsed selection expression
type Selector struct {
	Raw  string
	Kind SelectorKind
	// Expr is Raw without an explicit engine prefix
	Expr string
}

// ParseSelector classifies raw and checks its syntax where a parser exists.
// CSS is checked with cascadia and XPath with antchfx/xpath; Playwright-only
// expressions are passed through unchecked.
func ParseSelector(raw string) (Selector, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Selector{}, ErrEmptySelector
	}

	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, PrefixXPath):
		return parseXPath(raw, raw[len(PrefixXPath):])
	case strings.HasPrefix(raw, "//"), strings.HasPrefix(raw, "(//"), strings.HasPrefix(raw, ".."):
		return parseXPath(raw, raw)
	case strings.HasPrefix(lower, PrefixCSS):
		return parseCSS(raw, raw[len(PrefixCSS):])
	case strings.Contains(raw, ">>"):
		return Selector{Raw: raw, Kind: SelectorPlaywright, Expr: raw}, nil
	}

	for _, prefix := range playwrightEnginePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return Selector{Raw: raw, Kind: SelectorPlaywright, Expr: raw}, nil
		}
	}
	for _, pseudo := range playwrightPseudoClasses {
		if strings.Contains(lower, pseudo) {
			return Selector{Raw: raw, Kind: SelectorPlaywright, Expr: raw}, nil
		}
	}

	return parseCSS(raw, raw)
}

func parseXPath(raw, expr string) (Selector, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return Selector{}, fmt.Errorf("%w: xpath %q: %v", ErrInvalidSelector, expr, err)
	}
	return Selector{Raw: raw, Kind: SelectorXPath, Expr: expr}, nil
}

func parseCSS(raw, expr string) (Selector, error) {
	if _, err := cascadia.Compile(expr); err != nil {
		return Selector{}, fmt.Errorf("%w: css %q: %v", ErrInvalidSelector, expr, err)
	}
	return Selector{Raw: raw, Kind: SelectorCSS, Expr: expr}, nil
}
