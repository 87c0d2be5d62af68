package wide

import "math"

// F32x4 represents 4 float32 values for SIMD-style operations.
// Designed for Go compiler auto-vectorization with fixed-size arrays.
type F32x4 [4]float32

// SplatF32 creates F32x4 with all lanes set to n.
func SplatF32(n float32) F32x4 {
	var result F32x4
	for i := range result {
		result[i] = n
	}
	return result
}

// IotaF32 returns the lane indices as floats: [0, 1, 2, 3].
// Useful for per-pixel offsets within a logical column.
func IotaF32() F32x4 {
	var result F32x4
	for i := range result {
		result[i] = float32(i)
	}
	return result
}

// Add performs element-wise addition.
func (v F32x4) Add(other F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Sub performs element-wise subtraction.
func (v F32x4) Sub(other F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

// Mul performs element-wise multiplication.
func (v F32x4) Mul(other F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = v[i] * other[i]
	}
	return result
}

// Div performs element-wise division.
// Division by zero follows IEEE 754 (Inf or NaN).
func (v F32x4) Div(other F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = v[i] / other[i]
	}
	return result
}

// Scale multiplies every lane by s.
func (v F32x4) Scale(s float32) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = v[i] * s
	}
	return result
}

// Neg negates every lane.
func (v F32x4) Neg() F32x4 {
	var result F32x4
	for i := range v {
		result[i] = -v[i]
	}
	return result
}

// Abs returns the element-wise absolute value.
func (v F32x4) Abs() F32x4 {
	var result F32x4
	for i := range v {
		result[i] = float32(math.Abs(float64(v[i])))
	}
	return result
}

// Copysign returns a value with the magnitude of v and the sign of sign,
// element-wise.
func (v F32x4) Copysign(sign F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = float32(math.Copysign(float64(v[i]), float64(sign[i])))
	}
	return result
}

// Sqrt computes the square root of each lane.
func (v F32x4) Sqrt() F32x4 {
	var result F32x4
	for i := range v {
		result[i] = float32(math.Sqrt(float64(v[i])))
	}
	return result
}

// Min performs element-wise minimum.
func (v F32x4) Min(other F32x4) F32x4 {
	var result F32x4
	for i := range v {
		if v[i] < other[i] {
			result[i] = v[i]
		} else {
			result[i] = other[i]
		}
	}
	return result
}

// Max performs element-wise maximum.
func (v F32x4) Max(other F32x4) F32x4 {
	var result F32x4
	for i := range v {
		if v[i] > other[i] {
			result[i] = v[i]
		} else {
			result[i] = other[i]
		}
	}
	return result
}

// Clamp clamps each lane to [minVal, maxVal].
func (v F32x4) Clamp(minVal, maxVal float32) F32x4 {
	var result F32x4
	for i := range v {
		switch {
		case v[i] < minVal:
			result[i] = minVal
		case v[i] > maxVal:
			result[i] = maxVal
		default:
			result[i] = v[i]
		}
	}
	return result
}

// Lerp performs linear interpolation: v + (other - v) * t, per lane.
func (v F32x4) Lerp(other F32x4, t F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = v[i] + (other[i]-v[i])*t[i]
	}
	return result
}

// Trunc converts each lane to int32, truncating toward zero.
func (v F32x4) Trunc() I32x4 {
	var result I32x4
	for i := range v {
		result[i] = int32(v[i])
	}
	return result
}

// Lt compares element-wise: v[i] < other[i].
func (v F32x4) Lt(other F32x4) B32x4 {
	var result B32x4
	for i := range v {
		result[i] = v[i] < other[i]
	}
	return result
}

// Le compares element-wise: v[i] <= other[i].
func (v F32x4) Le(other F32x4) B32x4 {
	var result B32x4
	for i := range v {
		result[i] = v[i] <= other[i]
	}
	return result
}

// Gt compares element-wise: v[i] > other[i].
func (v F32x4) Gt(other F32x4) B32x4 {
	var result B32x4
	for i := range v {
		result[i] = v[i] > other[i]
	}
	return result
}

// Ge compares element-wise: v[i] >= other[i].
func (v F32x4) Ge(other F32x4) B32x4 {
	var result B32x4
	for i := range v {
		result[i] = v[i] >= other[i]
	}
	return result
}

// Eq compares element-wise: v[i] == other[i].
func (v F32x4) Eq(other F32x4) B32x4 {
	var result B32x4
	for i := range v {
		result[i] = v[i] == other[i]
	}
	return result
}

// SafeDiv divides a by b element-wise, substituting def for lanes where
// b is zero. The rasterizer uses this to disable an axis instead of
// producing Inf.
func SafeDiv(a, b, def F32x4) F32x4 {
	var result F32x4
	for i := range a {
		if b[i] == 0 {
			result[i] = def[i]
		} else {
			result[i] = a[i] / b[i]
		}
	}
	return result
}

// PrefixSum returns the inclusive prefix sum of the lanes:
// [v0, v0+v1, v0+v1+v2, v0+v1+v2+v3].
// This is the 4-lane shifted-add variant used by coverage accumulation.
func (v F32x4) PrefixSum() F32x4 {
	// d += d << 1 lane; d += d << 2 lanes.
	d := v
	d = d.Add(F32x4{0, d[0], d[1], d[2]})
	d = d.Add(F32x4{0, 0, d[0], d[1]})
	return d
}
