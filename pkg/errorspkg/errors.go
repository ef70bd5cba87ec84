// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates an unexpected storage or system failure.
//
// It is never retried; callers treat it as fatal for the current operation.
var ErrInternal = errors.New("internal")
