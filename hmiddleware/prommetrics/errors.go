package prommetrics

import (
	"fmt"
)

// ConfigError is returned by Pair when the builder holds a configuration
// that cannot produce valid series, e.g. an empty or unsorted bucket list.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("prommetrics: invalid %s: %s", e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// RegistrationError is returned by Pair when a series with the same fully
// qualified name already exists in the target registry. It usually means the
// builder ran twice against one registry without distinct namespaces.
type RegistrationError struct {
	Name string
	Err  error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("prommetrics: %s already registered: %v", e.Name, e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }

// EncodingError is returned when gathered series cannot be rendered in the
// text exposition format.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return "prommetrics: encoding metrics: " + e.Err.Error()
}

func (e *EncodingError) Unwrap() error { return e.Err }
