// Package flags provides helpers for binding constrained option flags to Cobra commands.
package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	choicePlaceholderPrefix    = "<"
	choicePlaceholderSuffix    = ">"
	choiceSeparatorLiteral     = "|"
	choiceUsageEmptyTemplate   = "`%s`"
	choiceUsageFullTemplate    = "`%s` %s"
	choiceTypeName             = "choice"
	unsupportedChoiceTemplate  = "unsupported value %q, expected one of %s"
	choiceListSeparatorLiteral = ", "
)

// FormatChoiceUsage builds a usage string where the default option is capitalized inside a placeholder.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	placeholder := choicePlaceholderPrefix + strings.Join(highlightDefaultChoice(defaultChoice, choices), choiceSeparatorLiteral) + choicePlaceholderSuffix
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

// ChoiceValue is a pflag.Value accepting one of a fixed set of case-insensitive options.
type ChoiceValue struct {
	selected string
	choices  []string
}

var _ pflag.Value = (*ChoiceValue)(nil)

// NewChoiceValue constructs a ChoiceValue defaulting to defaultChoice.
func NewChoiceValue(defaultChoice string, choices []string) *ChoiceValue {
	return &ChoiceValue{selected: normalizeChoice(defaultChoice), choices: uniqueChoices(choices)}
}

// String returns the selected option.
func (value *ChoiceValue) String() string {
	if value == nil {
		return ""
	}
	return value.selected
}

// Set validates and stores the option.
func (value *ChoiceValue) Set(candidate string) error {
	normalized := normalizeChoice(candidate)
	for _, choice := range value.choices {
		if choice == normalized {
			value.selected = normalized
			return nil
		}
	}
	return fmt.Errorf(unsupportedChoiceTemplate, candidate, strings.Join(value.choices, choiceListSeparatorLiteral))
}

// Type reports the flag type shown in help output.
func (value *ChoiceValue) Type() string {
	return choiceTypeName
}

func highlightDefaultChoice(defaultChoice string, choices []string) []string {
	normalizedDefault := normalizeChoice(defaultChoice)
	highlighted := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))

	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		normalizedChoice := strings.ToLower(trimmedChoice)
		if len(normalizedChoice) == 0 {
			continue
		}
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}
		seen[normalizedChoice] = struct{}{}

		if normalizedChoice == normalizedDefault {
			trimmedChoice = strings.ToUpper(trimmedChoice)
		}
		highlighted = append(highlighted, trimmedChoice)
	}

	return highlighted
}

func uniqueChoices(choices []string) []string {
	unique := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		normalized := normalizeChoice(choice)
		if len(normalized) == 0 {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		unique = append(unique, normalized)
	}
	return unique
}

func normalizeChoice(choice string) string {
	return strings.ToLower(strings.TrimSpace(choice))
}
