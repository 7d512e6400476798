// Package errors provides the classified error primitives used across agencysite.
//
// A ClassifiedError carries a category, severity, retry strategy and structured
// context. Errors are created through the fluent ErrorBuilder and presented by
// the HTTP and CLI adapters.
//
// Example usage:
//
//	err := errors.CMSError("wordpress request failed").
//		WithCause(originalErr).
//		WithContext("url", endpoint).
//		Build()
package errors
