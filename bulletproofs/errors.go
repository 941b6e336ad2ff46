package bulletproofs

import (
	"errors"

	"github.com/bwesterb/go-ristretto"
)

var (
	// ErrInvalid reports a proof that failed the verification equation.
	ErrInvalid = errors.New("bulletproofs: invalid proof")
	// ErrMalformed reports a proof or parameter set whose shape is wrong,
	// including a generator count that does not match the commitments.
	ErrMalformed = errors.New("bulletproofs: malformed proof or parameters")
)

func scalarFromBytes(data []byte) (*ristretto.Scalar, error) {
	if len(data) != 32 {
		return nil, ErrMalformed
	}
	var buf [32]byte
	copy(buf[:], data)
	var s ristretto.Scalar
	s.SetBytes(&buf)
	// SetBytes reduces mod the group order; a canonical encoding
	// round-trips unchanged.
	if !scalarBytesEqual(s.Bytes(), data) {
		return nil, ErrMalformed
	}
	return &s, nil
}

func scalarBytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var v byte
	for i := range a {
		v |= a[i] ^ b[i]
	}
	return v == 0
}

func pointFromBytes(data []byte) (*ristretto.Point, error) {
	if len(data) != 32 {
		return nil, ErrMalformed
	}
	var buf [32]byte
	copy(buf[:], data)
	var p ristretto.Point
	if !p.SetBytes(&buf) {
		return nil, ErrMalformed
	}
	return &p, nil
}
