// Package errors provides nil-safe wrapping helpers on top of
// cockroachdb/errors so call sites don't need their own nil guards.
package errors

import (
	"github.com/cockroachdb/errors"
)

// Wrap - Wrap an error with a context message. Returns nil if err is nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}

// Wrapf - Wrap an error with a formatted context message. Returns nil if err is nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}

// Mark - Tag err with a classification sentinel without changing its message.
// Returns nil if err is nil.
func Mark(err error, mark error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(err, mark)
}
