// Package vec3 is a three-component vector of floats with value semantics.
package vec3

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Vec3 is a point or direction in 3D space. It is small and copied on every
// call; none of its methods mutate the receiver.
type Vec3[T constraints.Float] struct {
	X, Y, Z T
}

// AddVec returns the field-wise sum of v and o.
func (v Vec3[T]) AddVec(o Vec3[T]) Vec3[T] {
	return Vec3[T]{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// AddScalar returns v with s added to every field.
func (v Vec3[T]) AddScalar(s T) Vec3[T] {
	return Vec3[T]{X: v.X + s, Y: v.Y + s, Z: v.Z + s}
}

// Go has no operator overloading; Add and Plus stand in for vector+vector
// and vector+scalar.

// Add is v + o.
func Add[T constraints.Float](v, o Vec3[T]) Vec3[T] { return v.AddVec(o) }

// Plus is v + s.
func Plus[T constraints.Float](v Vec3[T], s T) Vec3[T] { return v.AddScalar(s) }

// GoString renders the debug form, e.g. "Vec3 { x: 1.0, y: 2.0, z: 3.0 }".
// It is what %#v prints.
func (v Vec3[T]) GoString() string {
	var sb strings.Builder
	sb.WriteString("Vec3 { x: ")
	sb.WriteString(formatFloat(v.X))
	sb.WriteString(", y: ")
	sb.WriteString(formatFloat(v.Y))
	sb.WriteString(", z: ")
	sb.WriteString(formatFloat(v.Z))
	sb.WriteString(" }")
	return sb.String()
}

// formatFloat prints the shortest representation that round-trips at the
// width of T. Magnitudes below 1e-4 or from 1e16 up switch to exponent form
// ("1e20", "1.5e-7"); the rest keep a ".0" on integral values.
func formatFloat[T constraints.Float](f T) string {
	x := float64(f)
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}

	bits := bitSize(f)
	if a := T(math.Abs(x)); a != 0 && (a < T(1e-4) || a >= T(1e16)) {
		// FormatFloat writes "1e+20" and "1e-07"; drop the sign and padding.
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(x, 'e', -1, bits), "e")
		e, _ := strconv.Atoi(exp)
		return mantissa + "e" + strconv.Itoa(e)
	}

	s := strconv.FormatFloat(x, 'f', -1, bits)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// bitSize is 32 for float32 and 64 otherwise, including named float types.
func bitSize[T constraints.Float](f T) int {
	switch any(f).(type) {
	case float32:
		return 32
	default:
		return 64
	}
}
