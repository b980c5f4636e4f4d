package core

import "testing"

func TestFixedWhole(t *testing.T) {
	tests := []struct {
		name string
		in   Fixed
		want int
	}{
		{"zero", 0, 0},
		{"one", FixedOne, 1},
		{"half truncates", FixedHalf, 0},
		{"two and a half", 0x280, 2},
		{"negative one", -FixedOne, -1},
		{"negative half floors", -FixedHalf, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Whole(); got != tt.want {
				t.Errorf("Whole(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestAccumulatorZeroVelocity(t *testing.T) {
	var a Accumulator
	total := 0
	for i := 0; i < 1000; i++ {
		total += a.Add(0)
	}
	if total != 0 {
		t.Errorf("zero velocity moved %d pixels over 1000 frames", total)
	}
}

func TestAccumulatorUnitVelocityNoDrift(t *testing.T) {
	var a Accumulator
	total := 0
	for i := 0; i < 1000; i++ {
		step := a.Add(FixedOne)
		if step != 1 {
			t.Fatalf("frame %d: step = %d, want exactly 1", i, step)
		}
		total += step
	}
	if total != 1000 {
		t.Errorf("total displacement = %d, want 1000", total)
	}
}

func TestAccumulatorFractionalVelocity(t *testing.T) {
	// 0.25 px/frame must produce exactly 1 pixel every 4 frames.
	var a Accumulator
	total := 0
	for i := 0; i < 400; i++ {
		total += a.Add(FixedQuarter)
	}
	if total != 100 {
		t.Errorf("0.25 px/frame over 400 frames moved %d, want 100", total)
	}
}

func TestAccumulatorNegativeVelocity(t *testing.T) {
	var a Accumulator
	total := 0
	for i := 0; i < 256; i++ {
		total += a.Add(-FixedHalf)
	}
	if total != -128 {
		t.Errorf("-0.5 px/frame over 256 frames moved %d, want -128", total)
	}
}

func TestFixedMul(t *testing.T) {
	if got := FixedOne.Mul(FixedHalf); got != FixedHalf {
		t.Errorf("1.0 * 0.5 = %d, want %d", got, FixedHalf)
	}
	if got := FixedFromInt(3).Mul(FixedFromInt(2)); got != FixedFromInt(6) {
		t.Errorf("3.0 * 2.0 = %d, want %d", got, FixedFromInt(6))
	}
}
