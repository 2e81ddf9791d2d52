// Package fault classifies boundary-call failures so a single retry policy
// can treat every external service uniformly: transient errors are retried
// with backoff, permanent errors fail the claim or item locally, fatal
// errors abort the whole run.
package fault

import (
	"errors"
	"fmt"
)

// Kind is the failure class of a boundary error
type Kind int

const (
	KindPermanent Kind = iota // Not retried; local skip/unverifiable outcome
	KindTransient             // Retried with exponential backoff up to a bound
	KindFatal                 // Aborts the entire run
)

type classified struct {
	kind Kind
	err  error
}

func (c *classified) Error() string { return c.err.Error() }
func (c *classified) Unwrap() error { return c.err }

// Transient wraps err as retryable
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &classified{kind: KindTransient, err: err}
}

// Transientf wraps a formatted error as retryable
func Transientf(format string, args ...interface{}) error {
	return Transient(fmt.Errorf(format, args...))
}

// Permanent wraps err as non-retryable
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &classified{kind: KindPermanent, err: err}
}

// Permanentf wraps a formatted error as non-retryable
func Permanentf(format string, args ...interface{}) error {
	return Permanent(fmt.Errorf(format, args...))
}

// Fatal wraps err as run-aborting
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &classified{kind: KindFatal, err: err}
}

// KindOf reports the failure class of err. Unclassified errors are
// permanent: nothing is retried unless a boundary explicitly said so.
func KindOf(err error) Kind {
	var c *classified
	if errors.As(err, &c) {
		return c.kind
	}
	return KindPermanent
}

// IsTransient reports whether err should be retried
func IsTransient(err error) bool { return err != nil && KindOf(err) == KindTransient }

// IsFatal reports whether err aborts the run
func IsFatal(err error) bool { return err != nil && KindOf(err) == KindFatal }
