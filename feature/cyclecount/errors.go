package cyclecount

import (
	"errors"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// The error taxonomy of the cycle count engine. Every operation returns
// either nil or an error wrapping exactly one of these sentinels; anything
// else is a persistence failure surfaced as-is. No failure path leaves
// partial state behind.
var (
	// ErrNotFound: the cycle, detail row, or product does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState: the operation targets a cycle whose status forbids
	// it, e.g. recording against or re-finalizing a Completed cycle.
	ErrInvalidState = errors.New("invalid cycle state")
	// ErrValidation: the input is malformed, e.g. a negative quantity or a
	// finalize attempt with unrecorded counts.
	ErrValidation = errors.New("validation failed")
	// ErrConflict: a concurrent writer won. Retryable after re-reading.
	ErrConflict = errors.New("concurrency conflict")
)

// isDuplicateKeyErr classifies unique-index violations across the MySQL
// driver (error 1062) and gorm's translated sentinel, which the sqlite test
// driver produces.
func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqlDriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
