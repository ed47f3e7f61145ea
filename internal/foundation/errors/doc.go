// Package errors provides the classified error type used across sitecfg.
//
// Errors carry a category (config, validation, build, filesystem, internal),
// a severity and structured context. A fluent builder creates them and the
// CLI adapter turns them into user-facing messages and exit codes.
//
// Example usage:
//
//	err := errors.ConfigError("unknown profile").
//		WithContext("profile", name).
//		Build()
package errors
