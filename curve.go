package ringct

import (
	"crypto/subtle"
	"encoding/binary"

	"github.com/bwesterb/go-ristretto"
)

// All direct use of the curve backend is concentrated here, so the
// protocol files deal only in these helpers.

// RandomScalar returns a uniformly random scalar from the system
// CSPRNG.
func RandomScalar() *ristretto.Scalar {
	var s ristretto.Scalar
	return s.Rand()
}

// RandomPoint returns a random group element of unknown discrete log
// relation to any other point in use.
func RandomPoint() *ristretto.Point {
	var p ristretto.Point
	return p.ScalarMultBase(RandomScalar())
}

// ScalarFromUint64 interprets i as a little-endian scalar.
func ScalarFromUint64(i uint64) *ristretto.Scalar {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[:], i)
	var s ristretto.Scalar
	return s.SetBytes(&buf)
}

// ScalarFromBytes decodes a canonical 32-byte scalar encoding.
func ScalarFromBytes(data []byte) (*ristretto.Scalar, error) {
	if len(data) != 32 {
		return nil, ErrDecoding
	}
	var buf [32]byte
	copy(buf[:], data)
	var s ristretto.Scalar
	s.SetBytes(&buf)
	// SetBytes reduces mod l; a non-canonical input re-encodes
	// differently.
	if subtle.ConstantTimeCompare(s.Bytes(), data) != 1 {
		return nil, ErrDecoding
	}
	return &s, nil
}

// PointFromBytes decodes a canonical 32-byte point encoding.
func PointFromBytes(data []byte) (*ristretto.Point, error) {
	if len(data) != 32 {
		return nil, ErrDecoding
	}
	var buf [32]byte
	copy(buf[:], data)
	var p ristretto.Point
	if !p.SetBytes(&buf) {
		return nil, ErrDecoding
	}
	return &p, nil
}

// pointFromUniformBytes maps 64 uniform bytes to a group element with
// uniform distribution.
func pointFromUniformBytes(data *[64]byte) *ristretto.Point {
	var buf [32]byte
	var a, b ristretto.Point
	copy(buf[:], data[:32])
	a.SetElligator(&buf)
	copy(buf[:], data[32:])
	b.SetElligator(&buf)
	return a.Add(&a, &b)
}

// basePoint returns the group basepoint G.
func basePoint() *ristretto.Point {
	var p ristretto.Point
	return p.SetBase()
}

// multiscalarMul computes sum(scalars[i] * points[i]).
func multiscalarMul(scalars []*ristretto.Scalar, points []*ristretto.Point) *ristretto.Point {
	var sum ristretto.Point
	sum.SetZero()
	for i := range scalars {
		var t ristretto.Point
		t.ScalarMult(points[i], scalars[i])
		sum.Add(&sum, &t)
	}
	return &sum
}

// wipeScalar clears secret scalar material.
func wipeScalar(s *ristretto.Scalar) {
	s.SetZero()
}

// wipeBytes clears a secret byte buffer.
func wipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
