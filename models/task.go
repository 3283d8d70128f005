package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults applied when user-supplied numeric fields are missing or out of
// range. Forms are expected to validate; the core stays tolerant.
const (
	DefaultImportance = 3
	DefaultEffortMin  = 25
)

// Task is a unit of work the user wants to be nagged about.
type Task struct {
	ID         string     `json:"id" validate:"required,uuid4"`
	Title      string     `json:"title" validate:"required,min=1,max=255"`
	Importance int        `json:"importance" validate:"required,min=1,max=5"`
	EffortMin  int        `json:"effortMin" validate:"required,min=1"`
	DueAt      *time.Time `json:"dueAt,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"createdAt" validate:"required"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}

// NewTask builds a task with coerced numeric fields and a creation timestamp.
// The caller supplies the ID so stores stay free of ID policy.
func NewTask(id, title string, importance, effortMin int) Task {
	return Task{
		ID:         id,
		Title:      title,
		Importance: CoerceImportance(importance),
		EffortMin:  CoerceEffortMin(effortMin),
		CreatedAt:  time.Now(),
	}
}

// CoerceImportance clamps importance into 1-5, falling back to the default
// for zero or negative input.
func CoerceImportance(v int) int {
	if v <= 0 {
		return DefaultImportance
	}
	if v > 5 {
		return 5
	}
	return v
}

// CoerceEffortMin replaces non-positive effort estimates with the default.
func CoerceEffortMin(v int) int {
	if v <= 0 {
		return DefaultEffortMin
	}
	return v
}
