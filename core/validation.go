package core

import "fmt"

// ValidateAssessment checks that an assessment satisfies the catalog
// invariants: a non-empty display name and a non-negative duration.
// All other fields may legitimately be zero-valued.
func ValidateAssessment(a *Assessment) error {
	if a == nil {
		return ErrInvalidAssessment
	}
	if a.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAssessment, ErrEmptyName)
	}
	if a.DurationMinutes < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidAssessment, ErrNegativeDuration)
	}
	return nil
}
