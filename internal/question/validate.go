package question

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in a question catalog.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question catalog validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// NormalizeCatalog trims whitespace and validates a question catalog.
// Condition targets are trimmed but deliberately not resolved against the
// catalog's ids: whether a dangling reference hides or shows its question
// is a progression-time decision, not a load-time one.
func NormalizeCatalog(catalog Catalog) (Catalog, error) {
	collector := &issueCollector{}
	if catalog.Version == 0 {
		collector.add("version", "is required")
	} else if catalog.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", catalog.Version))
	}
	if len(catalog.Questions) == 0 {
		collector.add("questions", "must include at least one entry")
	}

	seenIDs := map[string]struct{}{}
	for i, definition := range catalog.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		definition.ID = strings.TrimSpace(definition.ID)
		if definition.ID == "" {
			collector.add(prefix+".id", "is required")
		} else {
			if _, exists := seenIDs[definition.ID]; exists {
				collector.add(prefix+".id", fmt.Sprintf("duplicate id %q", definition.ID))
			} else {
				seenIDs[definition.ID] = struct{}{}
			}
		}

		definition.Prompt = strings.TrimSpace(definition.Prompt)
		if definition.Prompt == "" {
			collector.add(prefix+".prompt", "is required")
		}

		definition.Kind = strings.TrimSpace(definition.Kind)

		definition.Options = normalizeStringSlice(definition.Options)
		for optionIndex, option := range definition.Options {
			if option == "" {
				collector.add(fmt.Sprintf("%s.options[%d]", prefix, optionIndex), "is required")
			}
		}

		if definition.Condition != nil {
			condition := *definition.Condition
			condition.TargetID = strings.TrimSpace(condition.TargetID)
			condition.ExpectedValue = strings.TrimSpace(condition.ExpectedValue)
			definition.Condition = &condition
		}
		catalog.Questions[i] = definition
	}

	if err := collector.result(); err != nil {
		return Catalog{}, err
	}
	return catalog, nil
}

func normalizeStringSlice(values []string) []string {
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		normalized = append(normalized, strings.TrimSpace(value))
	}
	return normalized
}
