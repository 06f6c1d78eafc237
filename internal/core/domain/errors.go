package domain

import "fmt"

// ValidationError reports a malformed brief. It is raised before any
// generative call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid brief: field %q %s", e.Field, e.Reason)
}

// GenerationError reports that the generative service failed for a section
// after the adapter's retry budget was exhausted.
type GenerationError struct {
	Kind SectionKind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed for section %s: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// SchemaError reports service output that could not be normalized into the
// required section shape.
type SchemaError struct {
	Kind   SectionKind
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("section %s failed validation: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("section %s failed validation: field %q %s", e.Kind, e.Field, e.Reason)
}
