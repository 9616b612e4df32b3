package tracker

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/theirongolddev/smokesense/internal/model"
)

// ValidationError collects every problem with a rejected input. Inputs are
// checked in full before any write.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid log input: " + strings.Join(e.Problems, "; ")
}

// validateEvent checks the fully-assembled event against the model's
// constraints plus the clock-skew rule.
func (s *Service) validateEvent(ev *model.LogEvent, now time.Time) error {
	var problems []string

	if ev.Timestamp <= 0 {
		problems = append(problems, "valid timestamp is required")
	} else if ev.Timestamp > now.Add(clockSkewTolerance).UnixMilli() {
		problems = append(problems, "timestamp cannot be in the future")
	}

	if err := s.validate.Struct(ev); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			problems = append(problems, problemFor(fe))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func problemFor(fe validator.FieldError) string {
	switch fe.Field() {
	case "Latitude":
		return "invalid latitude"
	case "Longitude":
		return "invalid longitude"
	case "Notes":
		return "notes cannot exceed 1000 characters"
	default:
		return "invalid " + strings.ToLower(fe.Field())
	}
}
