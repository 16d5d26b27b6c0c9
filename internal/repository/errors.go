package repository

import "errors"

var (
	// ErrStorageUnavailable means the backing file could not be opened or accessed.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrUniqueViolation means an insert collided with an existing primary key.
	ErrUniqueViolation = errors.New("unique constraint violation")

	// ErrBusy means another process holds a conflicting lock on the file.
	ErrBusy = errors.New("storage busy")
)

// IsRetryable reports whether err is a lock contention error worth retrying.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrBusy)
}
