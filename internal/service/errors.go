package service

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports every problem found on a rejected input.
type ValidationError struct {
	Entity   string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(e.Problems, "; "))
}

type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// ReferentialIntegrityError is returned when deleting a record that other
// records still reference.
type ReferentialIntegrityError struct {
	Kind       string
	ID         string
	References int
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("cannot delete %s %q: referenced by %d calorie entries", e.Kind, e.ID, e.References)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsReferentialIntegrity(err error) bool {
	var target *ReferentialIntegrityError
	return errors.As(err, &target)
}
