package internal

import "github.com/pkg/errors"

// Threading errors through the sweep, the segment builder and the tree
// comparator would add a lot of noise for conditions that abort the whole
// computation anyway. Instead, we panic with a sweepError, and the entry
// points recover it into an ordinary error.

var (
	// ErrAllocation is returned when a computation would need more segments
	// than its budget allows. Nothing is emitted in that case.
	ErrAllocation = errors.New("segment budget exceeded")

	// ErrNonFinite is returned when an observer, target or obstacle has a NaN
	// or infinite coordinate.
	ErrNonFinite = errors.New("non-finite coordinate")

	ErrUnknownSortStrategy = errors.New("unknown sort strategy")
)

type sweepError struct {
	error
}

// Panic with a sweepError wrapping cause.
func throwf(cause error, format string, args ...interface{}) {
	panic(sweepError{errors.Wrapf(cause, format, args...)})
}

// Panic with a sweepError for a state the algorithm should never reach.
func fatalf(format string, args ...interface{}) {
	panic(sweepError{errors.Errorf(format, args...)})
}

// HandlePanicRecover converts a recovered sweepError back into an error. Any
// other panic is a real bug and is re-raised.
func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if err, ok := r.(sweepError); ok {
			return err.error
		}
		panic(r)
	}
	return nil
}
