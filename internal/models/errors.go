package models

import "fmt"

// ValidationError indicates malformed caller input. The caller can recover by
// correcting the request; it is never retried automatically.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return "validation failed: " + e.Message
}

// NewValidationError creates a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// SettingDecodeError indicates a stored setting value that cannot be coerced
// to its declared data type. This is a data-integrity problem and is surfaced,
// never papered over with a default.
type SettingDecodeError struct {
	Key      string
	DataType SettingDataType
	RawValue interface{}
}

func (e *SettingDecodeError) Error() string {
	return fmt.Sprintf("setting %q: cannot decode value %v (%T) as %s", e.Key, e.RawValue, e.RawValue, e.DataType)
}

// PricingConfigurationError indicates a required setting is absent for the
// requested scope. It names the unresolved key so an operator can add it.
type PricingConfigurationError struct {
	Key   string
	Scope SettingScope
}

func (e *PricingConfigurationError) Error() string {
	return fmt.Sprintf("pricing is not configured: no active setting for key %q matches the requested scope", e.Key)
}

// NotFoundError indicates the requested record does not exist
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
	}
	return e.Resource + " not found"
}

// NewNotFoundError creates a NotFoundError for a resource
func NewNotFoundError(resource, key string) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

// ConflictError indicates a uniqueness violation on creation
type ConflictError struct {
	Resource string
	Message  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Resource, e.Message)
}
