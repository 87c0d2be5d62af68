package wide

import (
	"math"
	"testing"
)

func TestSplatF32(t *testing.T) {
	tests := []struct {
		name  string
		value float32
	}{
		{"zero", 0.0},
		{"one", 1.0},
		{"negative", -1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SplatF32(tt.value)
			for i, v := range result {
				if v != tt.value {
					t.Errorf("lane %d = %f, want %f", i, v, tt.value)
				}
			}
		})
	}
}

func TestF32x4_Arithmetic(t *testing.T) {
	a := F32x4{1, 2, 3, 4}
	b := F32x4{4, 3, 2, 1}

	if got, want := a.Add(b), SplatF32(5); got != want {
		t.Errorf("Add = %v, want %v", got, want)
	}
	if got, want := a.Sub(b), (F32x4{-3, -1, 1, 3}); got != want {
		t.Errorf("Sub = %v, want %v", got, want)
	}
	if got, want := a.Mul(b), (F32x4{4, 6, 6, 4}); got != want {
		t.Errorf("Mul = %v, want %v", got, want)
	}
	if got, want := a.Div(b), (F32x4{0.25, 2.0 / 3.0, 1.5, 4}); got != want {
		t.Errorf("Div = %v, want %v", got, want)
	}
	if got, want := a.Scale(2), (F32x4{2, 4, 6, 8}); got != want {
		t.Errorf("Scale = %v, want %v", got, want)
	}
}

func TestF32x4_Copysign(t *testing.T) {
	v := F32x4{1, 1, 1, 1}
	sign := F32x4{2, -3, 0, float32(math.Copysign(0, -1))}
	got := v.Copysign(sign)
	want := F32x4{1, -1, 1, -1}
	if got != want {
		t.Errorf("Copysign = %v, want %v", got, want)
	}
}

func TestF32x4_Trunc(t *testing.T) {
	v := F32x4{1.9, -1.9, 0.2, 3}
	got := v.Trunc()
	want := I32x4{1, -1, 0, 3}
	if got != want {
		t.Errorf("Trunc = %v, want %v", got, want)
	}
}

func TestF32x4_Comparisons(t *testing.T) {
	a := F32x4{1, 2, 3, 4}
	b := F32x4{2, 2, 2, 2}

	if got, want := a.Lt(b), (B32x4{true, false, false, false}); got != want {
		t.Errorf("Lt = %v, want %v", got, want)
	}
	if got, want := a.Le(b), (B32x4{true, true, false, false}); got != want {
		t.Errorf("Le = %v, want %v", got, want)
	}
	if got, want := a.Gt(b), (B32x4{false, false, true, true}); got != want {
		t.Errorf("Gt = %v, want %v", got, want)
	}
	if got, want := a.Ge(b), (B32x4{false, true, true, true}); got != want {
		t.Errorf("Ge = %v, want %v", got, want)
	}
	if got, want := a.Eq(b), (B32x4{false, true, false, false}); got != want {
		t.Errorf("Eq = %v, want %v", got, want)
	}
}

func TestB32x4_Select(t *testing.T) {
	m := B32x4{true, false, true, false}
	a := SplatF32(1)
	b := SplatF32(2)
	if got, want := m.SelectF32(a, b), (F32x4{1, 2, 1, 2}); got != want {
		t.Errorf("SelectF32 = %v, want %v", got, want)
	}
	if got, want := m.SelectI32(SplatI32(1), SplatI32(2)), (I32x4{1, 2, 1, 2}); got != want {
		t.Errorf("SelectI32 = %v, want %v", got, want)
	}
	if got, want := m.ToF32(), (F32x4{1, 0, 1, 0}); got != want {
		t.Errorf("ToF32 = %v, want %v", got, want)
	}
}

func TestB32x4_Logic(t *testing.T) {
	a := B32x4{true, true, false, false}
	b := B32x4{true, false, true, false}

	if got, want := a.And(b), (B32x4{true, false, false, false}); got != want {
		t.Errorf("And = %v, want %v", got, want)
	}
	if got, want := a.Or(b), (B32x4{true, true, true, false}); got != want {
		t.Errorf("Or = %v, want %v", got, want)
	}
	if got, want := a.Not(), (B32x4{false, false, true, true}); got != want {
		t.Errorf("Not = %v, want %v", got, want)
	}
	if !a.Any() || a.All() {
		t.Errorf("Any/All on %v: got %v/%v", a, a.Any(), a.All())
	}
	if (B32x4{}).Any() {
		t.Error("empty mask reports Any")
	}
	if !(B32x4{true, true, true, true}).All() {
		t.Error("full mask does not report All")
	}
}

func TestSafeDiv(t *testing.T) {
	a := SplatF32(1)
	b := F32x4{2, 0, 4, 0}
	got := SafeDiv(a, b, SplatF32(1e6))
	want := F32x4{0.5, 1e6, 0.25, 1e6}
	if got != want {
		t.Errorf("SafeDiv = %v, want %v", got, want)
	}
}

func TestF32x4_PrefixSum(t *testing.T) {
	tests := []struct {
		name string
		v    F32x4
		want F32x4
	}{
		{"zeros", F32x4{}, F32x4{}},
		{"ones", SplatF32(1), F32x4{1, 2, 3, 4}},
		{"mixed", F32x4{1, -1, 2, -2}, F32x4{1, 0, 2, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.PrefixSum(); got != tt.want {
				t.Errorf("PrefixSum(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestI32x4_ReduceMax(t *testing.T) {
	if got := (I32x4{3, -7, 12, 5}).ReduceMax(); got != 12 {
		t.Errorf("ReduceMax = %d, want 12", got)
	}
	if got := SplatI32(-4).ReduceMax(); got != -4 {
		t.Errorf("ReduceMax = %d, want -4", got)
	}
}
