package wide

// I32x4 represents 4 int32 values for SIMD-style operations.
type I32x4 [4]int32

// SplatI32 creates I32x4 with all lanes set to n.
func SplatI32(n int32) I32x4 {
	var result I32x4
	for i := range result {
		result[i] = n
	}
	return result
}

// Add performs element-wise addition.
func (v I32x4) Add(other I32x4) I32x4 {
	var result I32x4
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Sub performs element-wise subtraction.
func (v I32x4) Sub(other I32x4) I32x4 {
	var result I32x4
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

// ToF32 converts each lane to float32.
func (v I32x4) ToF32() F32x4 {
	var result F32x4
	for i := range v {
		result[i] = float32(v[i])
	}
	return result
}

// Gt compares element-wise: v[i] > other[i].
func (v I32x4) Gt(other I32x4) B32x4 {
	var result B32x4
	for i := range v {
		result[i] = v[i] > other[i]
	}
	return result
}

// Eq compares element-wise: v[i] == other[i].
func (v I32x4) Eq(other I32x4) B32x4 {
	var result B32x4
	for i := range v {
		result[i] = v[i] == other[i]
	}
	return result
}

// ReduceMax returns the maximum lane value.
func (v I32x4) ReduceMax() int32 {
	result := v[0]
	for _, n := range v[1:] {
		if n > result {
			result = n
		}
	}
	return result
}
