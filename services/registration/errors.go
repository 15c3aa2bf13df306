package registration

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrSlotUnavailable is returned for disabled or past hour slots.
	ErrSlotUnavailable = errors.New("slot does not accept sign-ups")
	// ErrEmailMismatch is returned when a delete request proves no ownership.
	ErrEmailMismatch = errors.New("email does not match registration")
	ErrNotFound      = errors.New("registration not found")
)

// ValidationError lists the request fields that failed validation, by JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, fmt.Sprintf("%s (%s)", field, e.Fields[field]))
	}
	return "invalid request: " + strings.Join(parts, ", ")
}

func newValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fe.Namespace()] = fe.Tag()
	}
	return out
}
