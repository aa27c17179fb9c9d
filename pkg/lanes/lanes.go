// Package lanes provides a fixed-width numeric vector type used to test
// several objects against one ray at a time.
//
// Every operation is a plain per-lane loop over a Width-sized array. The loops
// have no cross-lane dependencies except the explicit horizontal reductions
// (Any, Count, MinIndex), so the compiler is free to vectorize them and the
// code runs unchanged on any architecture.
package lanes

import "github.com/chewxy/math32"

// Width is the number of lanes processed together.
const Width = 8

// Float holds one float32 per lane
type Float [Width]float32

// Index holds one int32 per lane, typically an object index
type Index [Width]int32

// Mask holds one boolean per lane, the result of a comparison
type Mask [Width]bool

// Broadcast returns a Float with every lane set to v
func Broadcast(v float32) Float {
	var f Float
	for i := range f {
		f[i] = v
	}
	return f
}

// BroadcastIndex returns an Index with every lane set to v
func BroadcastIndex(v int32) Index {
	var x Index
	for i := range x {
		x[i] = v
	}
	return x
}

// Iota returns base, base+1, ..., base+Width-1
func Iota(base int32) Index {
	var x Index
	for i := range x {
		x[i] = base + int32(i)
	}
	return x
}

// Add returns a + b per lane
func (a Float) Add(b Float) Float {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

// Sub returns a - b per lane
func (a Float) Sub(b Float) Float {
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

// Mul returns a * b per lane
func (a Float) Mul(b Float) Float {
	for i := range a {
		a[i] *= b[i]
	}
	return a
}

// Div returns a / b per lane
func (a Float) Div(b Float) Float {
	for i := range a {
		a[i] /= b[i]
	}
	return a
}

// Sqrt returns the per-lane square root. Negative lanes become NaN.
func (a Float) Sqrt() Float {
	for i := range a {
		a[i] = math32.Sqrt(a[i])
	}
	return a
}

// Less returns a < b per lane. Comparisons involving NaN are false.
func (a Float) Less(b Float) Mask {
	var m Mask
	for i := range a {
		m[i] = a[i] < b[i]
	}
	return m
}

// Greater returns a > b per lane. Comparisons involving NaN are false.
func (a Float) Greater(b Float) Mask {
	var m Mask
	for i := range a {
		m[i] = a[i] > b[i]
	}
	return m
}

// LessEq returns a <= b per lane. Comparisons involving NaN are false.
func (a Float) LessEq(b Float) Mask {
	var m Mask
	for i := range a {
		m[i] = a[i] <= b[i]
	}
	return m
}

// Abs returns the per-lane absolute value
func (a Float) Abs() Float {
	for i := range a {
		a[i] = math32.Abs(a[i])
	}
	return a
}

// Less returns a < b per lane
func (a Index) Less(b Index) Mask {
	var m Mask
	for i := range a {
		m[i] = a[i] < b[i]
	}
	return m
}

// Add returns a + b per lane
func (a Index) Add(b Index) Index {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

// And returns m && o per lane
func (m Mask) And(o Mask) Mask {
	for i := range m {
		m[i] = m[i] && o[i]
	}
	return m
}

// Or returns m || o per lane
func (m Mask) Or(o Mask) Mask {
	for i := range m {
		m[i] = m[i] || o[i]
	}
	return m
}

// AndNot returns m && !o per lane
func (m Mask) AndNot(o Mask) Mask {
	for i := range m {
		m[i] = m[i] && !o[i]
	}
	return m
}

// Not returns !m per lane
func (m Mask) Not() Mask {
	for i := range m {
		m[i] = !m[i]
	}
	return m
}

// Any reports whether at least one lane is set
func (m Mask) Any() bool {
	for _, set := range m {
		if set {
			return true
		}
	}
	return false
}

// Count returns the number of set lanes
func (m Mask) Count() int {
	n := 0
	for _, set := range m {
		if set {
			n++
		}
	}
	return n
}

// Select returns a where m is set and b elsewhere
func Select(m Mask, a, b Float) Float {
	for i := range m {
		if !m[i] {
			a[i] = b[i]
		}
	}
	return a
}

// SelectIndex returns a where m is set and b elsewhere
func SelectIndex(m Mask, a, b Index) Index {
	for i := range m {
		if !m[i] {
			a[i] = b[i]
		}
	}
	return a
}

// MinIndex returns the smallest value in v and the index paired with it.
// When several lanes hold the minimum the lowest index wins; indexes are
// compared as unsigned so a negative "no object" index never wins a tie
// against a real one. NaN lanes are ignored. The result does not depend on
// lane order.
func MinIndex(v Float, idx Index) (float32, int32) {
	best := math32.Inf(1)
	for _, x := range v {
		if x < best {
			best = x
		}
	}

	bestIdx := uint32(idx[0])
	found := false
	for i := range v {
		if v[i] != best {
			continue
		}
		if !found || uint32(idx[i]) < bestIdx {
			bestIdx = uint32(idx[i])
			found = true
		}
	}
	return best, int32(bestIdx)
}
