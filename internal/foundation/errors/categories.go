package errors

import "maps"

// ErrorCategory says what the user has to fix. Every category has its own exit code.
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation" // a flag or setting has a bad value
	CategoryConfig     ErrorCategory = "config"     // the configuration file cannot be used
	CategoryFileSystem ErrorCategory = "filesystem" // input or output is not accessible
	CategoryInternal   ErrorCategory = "internal"
)

const exitCodeUnclassified = 1

var exitCodes = map[ErrorCategory]int{
	CategoryValidation: 2,
	CategoryConfig:     7,
	CategoryInternal:   10,
	CategoryFileSystem: 11,
}

// ExitCode returns the process status used when an error of this category ends the run.
func (c ErrorCategory) ExitCode() int {
	if code, ok := exitCodes[c]; ok {
		return code
	}
	return exitCodeUnclassified
}

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal ErrorSeverity = "fatal" // ends the run
	SeverityError ErrorSeverity = "error" // fails one export; watch mode keeps going
)

// ErrorContext holds details such as the offending path or configuration field.
type ErrorContext map[string]any

// Set stores value under key, allocating the map when needed.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext, 1)
	}
	c[key] = value
	return c
}

func (c ErrorContext) Get(key string) (any, bool) {
	value, ok := c[key]
	return value, ok
}

// GetString returns the value for key when it is a string.
func (c ErrorContext) GetString(key string) (string, bool) {
	str, ok := c[key].(string)
	return str, ok
}

func (c ErrorContext) clone() ErrorContext {
	out := make(ErrorContext, len(c)+1)
	maps.Copy(out, c)
	return out
}
