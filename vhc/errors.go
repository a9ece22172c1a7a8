package vhc

import (
	"errors"
	"fmt"

	mysqlDriver "github.com/go-sql-driver/mysql"
)

// FailureKind classifies which side of the store an engine step failed on.
type FailureKind string

const (
	FailureResolution FailureKind = "resolution"
	FailureStoreRead  FailureKind = "store-read"
	FailureStoreWrite FailureKind = "store-write"
)

// StepError names the sub-step that failed so callers can surface it as-is.
// Steps already committed before the failure are not rolled back; every step
// is idempotent, so retrying the whole call converges.
type StepError struct {
	Step string
	Kind FailureKind
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

func resolutionFailure(step string, err error) error {
	return &StepError{Step: step, Kind: FailureResolution, Err: err}
}

func readFailure(step string, err error) error {
	return &StepError{Step: step, Kind: FailureStoreRead, Err: err}
}

func writeFailure(step string, err error) error {
	return &StepError{Step: step, Kind: FailureStoreWrite, Err: err}
}

// IsDuplicateKeyErr reports a MySQL unique-key violation (error 1062).
// Defensive inserts treat it as "another writer already converged".
func IsDuplicateKeyErr(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
