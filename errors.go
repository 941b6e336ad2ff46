package ringct

import (
	"errors"
	"fmt"
	"strings"
)

// Encoding errors.
var (
	ErrDecoding = errors.New("ringct: malformed encoding")
)

// Ring signature errors.
var (
	ErrInvalidSignature   = errors.New("ringct: invalid signature")
	ErrMalformedSignature = errors.New("ringct: malformed signature or parameters")
	ErrNotInRing          = errors.New("ringct: enote is not in ring")
	ErrUnsortedRing       = errors.New("ringct: ring is not sorted")
)

// Rangeproof errors.
var (
	ErrInvalidProof   = errors.New("ringct: invalid rangeproof")
	ErrMalformedProof = errors.New("ringct: malformed proof or parameters")
	ErrTooManyValues  = errors.New("ringct: too many aggregated values")
)

// Subaddress errors.
var (
	ErrUninitializedTable       = errors.New("ringct: uninitialized lookup table")
	ErrUninitializedCoordinates = errors.New("ringct: uninitialized coordinates")
	ErrKeyNotFound              = errors.New("ringct: no key in the lookup table matches")
)

// BatchError reports a failed batch verification. When the aggregate
// check fails the verifier re-runs each item individually; Items holds
// the per-item outcomes in submission order, nil for items that passed.
type BatchError struct {
	Items []error
}

func (e *BatchError) Error() string {
	var failed []string
	for i, err := range e.Items {
		if err != nil {
			failed = append(failed, fmt.Sprintf("item %d: %v", i, err))
		}
	}
	if len(failed) == 0 {
		return "ringct: batch verification failed"
	}
	return "ringct: batch verification failed: " + strings.Join(failed, "; ")
}
