package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/momentum-app/momentum/internal/dates"
	"github.com/momentum-app/momentum/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for enums and calendar days.
	// Registration failures are programmer errors.
	if err := Validate.RegisterValidation("task_kind", validateTaskKind); err != nil {
		panic(fmt.Sprintf("failed to register task_kind validator: %v", err))
	}
	if err := Validate.RegisterValidation("schedule_kind", validateScheduleKind); err != nil {
		panic(fmt.Sprintf("failed to register schedule_kind validator: %v", err))
	}
	if err := Validate.RegisterValidation("streak_type", validateStreakType); err != nil {
		panic(fmt.Sprintf("failed to register streak_type validator: %v", err))
	}
	if err := Validate.RegisterValidation("calendar_day", validateCalendarDay); err != nil {
		panic(fmt.Sprintf("failed to register calendar_day validator: %v", err))
	}
}

func validateTaskKind(fl validator.FieldLevel) bool {
	return models.TaskKind(fl.Field().String()).IsValid()
}

func validateScheduleKind(fl validator.FieldLevel) bool {
	return models.ScheduleKind(fl.Field().String()).IsValid()
}

func validateStreakType(fl validator.FieldLevel) bool {
	return models.StreakType(fl.Field().String()).IsValid()
}

func validateCalendarDay(fl validator.FieldLevel) bool {
	_, err := dates.Parse(fl.Field().String())
	return err == nil
}

// SanitizeText sanitizes text input by trimming whitespace and removing
// control characters
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidateTaskKind validates a TaskKind string value
func ValidateTaskKind(value string) error {
	if !models.TaskKind(value).IsValid() {
		return fmt.Errorf("invalid kind: %s (must be 'habit', 'chore', or 'custom')", value)
	}
	return nil
}

// ValidateStreakType validates a StreakType string value
func ValidateStreakType(value string) error {
	if !models.StreakType(value).IsValid() {
		return fmt.Errorf("invalid streak_type: %s (must be 'consistency' or 'perfect')", value)
	}
	return nil
}

// ValidateCalendarDay validates a YYYY-MM-DD day string
func ValidateCalendarDay(value string) error {
	if _, err := dates.Parse(value); err != nil {
		return fmt.Errorf("invalid date: %s (must be YYYY-MM-DD)", value)
	}
	return nil
}
