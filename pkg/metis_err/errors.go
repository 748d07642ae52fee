// pkg/metis_err/errors.go
//
// Error taxonomy for Metis. Validation and not-found failures are expected
// user errors and get softer UX handling; authentication and orchestration
// failures abort the whole operation; remote-service failures are recovered
// locally by the aggregation and restore layers and reported as data.

package metis_err

import (
	"errors"

	cerr "github.com/cockroachdb/errors"
)

type errorKind int

const (
	kindValidation errorKind = iota
	kindNotFound
	kindAuthentication
	kindRemoteService
	kindOrchestration
)

type classified struct {
	kind  errorKind
	cause error
}

func (e *classified) Error() string { return e.cause.Error() }
func (e *classified) Unwrap() error { return e.cause }

// NewValidationError marks a caller-supplied precondition failure. Surfaced
// inline at the point of action, never logged as a system fault.
func NewValidationError(format string, args ...interface{}) error {
	return &classified{kind: kindValidation, cause: cerr.Newf(format, args...)}
}

// NewNotFoundError marks a reference to a missing resource (backup id etc).
func NewNotFoundError(format string, args ...interface{}) error {
	return &classified{kind: kindNotFound, cause: cerr.Newf(format, args...)}
}

// NewAuthenticationError marks a token that cannot be obtained or refreshed,
// or a 401-class response from the remote service.
func NewAuthenticationError(err error, hint string) error {
	return &classified{kind: kindAuthentication, cause: cerr.WithHint(err, hint)}
}

// WrapRemoteServiceError marks a per-domain fetch or per-policy create
// failure. Callers convert these into empty values or failed-detail records.
func WrapRemoteServiceError(err error, operation string) error {
	return &classified{kind: kindRemoteService, cause: cerr.Wrapf(err, "graph: %s", operation)}
}

// NewOrchestrationError marks a failure of the aggregation pipeline itself,
// the one class that aborts a whole fetch.
func NewOrchestrationError(err error, hint string) error {
	return &classified{kind: kindOrchestration, cause: cerr.WithHint(err, hint)}
}

func isKind(err error, k errorKind) bool {
	var c *classified
	if errors.As(err, &c) {
		return c.kind == k
	}
	return false
}

func IsValidationError(err error) bool     { return isKind(err, kindValidation) }
func IsNotFoundError(err error) bool       { return isKind(err, kindNotFound) }
func IsAuthenticationError(err error) bool { return isKind(err, kindAuthentication) }
func IsRemoteServiceError(err error) bool  { return isKind(err, kindRemoteService) }
func IsOrchestrationError(err error) bool  { return isKind(err, kindOrchestration) }

// IsExpectedUserError reports whether the error should be presented as a
// notice rather than a system failure.
func IsExpectedUserError(err error) bool {
	return IsValidationError(err) || IsNotFoundError(err)
}
