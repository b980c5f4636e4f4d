package core

// Fixed is a signed 8.8 fixed-point value: the high bits hold whole pixels,
// the low 8 bits are a fractional accumulator. All entity velocities and
// scroll speeds use this representation; there is no floating point anywhere
// in the simulation.
type Fixed int32

const (
	// FixedOne is 1.0 in 8.8 format.
	FixedOne Fixed = 256
	// FixedHalf is 0.5 in 8.8 format.
	FixedHalf Fixed = 128
	// FixedQuarter is 0.25 in 8.8 format.
	FixedQuarter Fixed = 64
)

// FixedFromInt converts whole pixels to 8.8.
func FixedFromInt(v int) Fixed {
	return Fixed(v) << 8
}

// Whole returns the integer pixel part, truncating toward negative infinity
// so that negative velocities accumulate symmetrically with positive ones.
func (f Fixed) Whole() int {
	return int(f >> 8)
}

// Frac returns the fractional low byte.
func (f Fixed) Frac() int {
	return int(f & 0xFF)
}

// Mul multiplies two 8.8 values, keeping 8.8 scale.
func (f Fixed) Mul(other Fixed) Fixed {
	return Fixed((int64(f) * int64(other)) >> 8)
}

// Abs returns the absolute value.
func (f Fixed) Abs() Fixed {
	if f < 0 {
		return -f
	}
	return f
}

// Accumulator carries a sub-pixel position. Adding a velocity each frame and
// reading WholeDelta yields drift-free integer movement: a velocity of 256
// moves exactly one pixel per frame, a velocity of 64 moves one pixel every
// fourth frame.
type Accumulator struct {
	fp Fixed
}

// Add advances the accumulator by v and returns the whole-pixel displacement
// produced this step. The fractional remainder stays in the accumulator.
func (a *Accumulator) Add(v Fixed) int {
	a.fp += v
	whole := a.fp >> 8
	a.fp -= whole << 8
	return int(whole)
}

// Reset clears the fractional remainder.
func (a *Accumulator) Reset() {
	a.fp = 0
}
