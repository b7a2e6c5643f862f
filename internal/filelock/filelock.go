// Package filelock provides an advisory exclusive file lock used to
// serialize cache and config writes across processes. The lock is
// best-effort: a lost race only means one writer's output is replaced
// by another's.
package filelock

import (
	"fmt"
	"os"
)

const lockMode = 0o600

// Lock acquires an exclusive advisory lock on the file at path, creating
// it if necessary. It returns an unlock function that releases the lock
// and closes the file.
func Lock(path string) (func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockMode) //nolint:gosec // lock sentinel path from trusted source
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("acquiring lock: %w", err)
	}

	unlock := func() error {
		unlockErr := unlockFile(f)
		closeErr := f.Close()
		if unlockErr != nil {
			return fmt.Errorf("releasing lock: %w", unlockErr)
		}
		return closeErr
	}
	return unlock, nil
}
