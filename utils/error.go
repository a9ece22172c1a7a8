package utils

import "errors"

// ErrorRecordNotFound is the lookup sentinel for callers that need absence to
// be an error rather than a silent no-op (maintenance tooling, mostly); the
// engine's own read paths treat absence as "nothing to do".
var ErrorRecordNotFound = errors.New("record not found")

// ErrorPanic aborts on startup errors that leave the process unusable.
func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
