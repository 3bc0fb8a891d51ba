package model

import "fmt"

// DataQualityError reports an unparsable or incomplete input record.
type DataQualityError struct {
	Row    int    // 1-based row in the source, 0 if unknown
	Field  string
	Reason string
}

func (e *DataQualityError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("data quality: row %d field %q: %s", e.Row, e.Field, e.Reason)
	}
	return fmt.Sprintf("data quality: field %q: %s", e.Field, e.Reason)
}

// InsufficientHistoryError reports a series too short for seasonal fitting.
type InsufficientHistoryError struct {
	SeriesID string
	Periods  int
	Required int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient history for %s: %d periods, need at least %d",
		e.SeriesID, e.Periods, e.Required)
}

// ConfigurationError reports an invalid or missing configuration value.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// ComputationError reports a model fit or numeric failure for a series.
type ComputationError struct {
	SeriesID string
	Stage    string
	Cause    error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Stage, e.SeriesID, e.Cause)
}

func (e *ComputationError) Unwrap() error { return e.Cause }
