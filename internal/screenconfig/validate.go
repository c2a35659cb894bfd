package screenconfig

import (
	"fmt"
	"time"

	"github.com/wonny/screener/internal/scheduler"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all required constraints
// 실패 시 error 반환 (프로그램 중단)
func Validate(f *File) error {
	if f.Version != 1 {
		return ValidationError{"version", fmt.Sprintf("unsupported version %d", f.Version)}
	}

	if f.Timezone != "" {
		if _, err := time.LoadLocation(f.Timezone); err != nil {
			return ValidationError{"timezone", err.Error()}
		}
	}

	if len(f.Screens) == 0 {
		return ValidationError{"screens", "at least one screen required"}
	}

	seen := make(map[string]bool, len(f.Screens))
	for i, s := range f.Screens {
		field := fmt.Sprintf("screens[%d]", i)

		if s.Name == "" {
			return ValidationError{field + ".name", "required"}
		}
		if seen[s.Name] {
			return ValidationError{field + ".name", fmt.Sprintf("duplicate screen %q", s.Name)}
		}
		seen[s.Name] = true

		if _, err := scheduler.ParseSchedule(s.Schedule); err != nil {
			return ValidationError{field + ".schedule", err.Error()}
		}

		req, err := s.Request.ToRequest()
		if err != nil {
			return ValidationError{field + ".request", err.Error()}
		}
		if err := req.Validate(); err != nil {
			return ValidationError{field + ".request", err.Error()}
		}
	}

	return nil
}

// Location returns the configured timezone (local time when unset)
func (f *File) Location() *time.Location {
	if f.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(f.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
