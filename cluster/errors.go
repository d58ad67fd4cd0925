package cluster

import (
	"fmt"

	"github.com/projectdiscovery/utils/errkit"
)

var (
	// ErrEngineConsumed is returned when Run is called twice on the same engine
	ErrEngineConsumed = errkit.New("cluster engine already ran, create a new one per run")
	// ErrIndexMismatch is returned when the distance matrix references a
	// fingerprint the index does not know
	ErrIndexMismatch = errkit.New("distance matrix references fingerprints missing from the index")
)

// InsufficientDataError is returned when the distance matrix is empty when
// clustering starts, i.e. the input has fewer than two distinct fingerprints.
// It usually means the column holds a single repeated value.
type InsufficientDataError struct {
	Fingerprints int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: found %d distinct fingerprint(s), at least 2 are required to compute distances", e.Fingerprints)
}
