package core

import "fmt"

// AnalysisError reports a failed remote model call or an unusable model
// response. It is recoverable by the user resubmitting; the application never
// retries automatically.
type AnalysisError struct {
	Op  string
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis: %s: %v", e.Op, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// PersistenceError reports a storage failure. Persistence is best-effort and
// off the critical path: a failed save never hides analyzer output from the
// user.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
