package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// ErrLocked is returned when another run holds the lock for the same target.
var ErrLocked = errors.New("another stacks run is already organizing this directory")

// Lock is a held run lock.
type Lock struct {
	target string
	lock   *flock.Flock
}

// Path returns the lock file path for target inside stateDir.
func Path(stateDir, target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolve target: %w", err)
	}
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.Clean(abs)))
	return filepath.Join(stateDir, "run-"+id.String()+".lock"), nil
}

// Acquire takes the lock for target without blocking. It returns ErrLocked
// (wrapped with the lock path) if another process holds it.
func Acquire(stateDir, target string) (*Lock, error) {
	lockPath, err := Path(stateDir, target)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	fl := flock.New(lockPath)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, lockPath)
	}
	return &Lock{target: target, lock: fl}, nil
}

// Target returns the directory the lock protects.
func (l *Lock) Target() string { return l.target }

// Path returns the lock file path.
func (l *Lock) Path() string { return l.lock.Path() }

// Release unlocks. The lock file is left in place; removing it would race
// with a concurrent Acquire that already opened it.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
