package repository

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a calculation does not exist.
	ErrNotFound = errors.New("calculation not found")
	// ErrUnavailable marks failures caused by an unreachable database.
	ErrUnavailable = errors.New("storage unavailable")
)

// StorageError wraps every failure of the persistence layer so callers can
// tell it apart from validation problems.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	return &StorageError{Op: op, Err: classify(err)}
}

// classify tags connection level failures with ErrUnavailable.
func classify(err error) error {
	if errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 08 connection_exception, 57 operator_intervention (shutdowns)
		switch pqErr.Code.Class() {
		case "08", "57":
			return fmt.Errorf("%w: %s", ErrUnavailable, pqErr.Message)
		}
	}
	return err
}
