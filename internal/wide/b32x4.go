package wide

// B32x4 represents 4 boolean lanes, the result of wide comparisons.
type B32x4 [4]bool

// And combines two masks element-wise.
func (m B32x4) And(other B32x4) B32x4 {
	var result B32x4
	for i := range m {
		result[i] = m[i] && other[i]
	}
	return result
}

// Or combines two masks element-wise.
func (m B32x4) Or(other B32x4) B32x4 {
	var result B32x4
	for i := range m {
		result[i] = m[i] || other[i]
	}
	return result
}

// Not inverts every lane.
func (m B32x4) Not() B32x4 {
	var result B32x4
	for i := range m {
		result[i] = !m[i]
	}
	return result
}

// Any reports whether any lane is set.
func (m B32x4) Any() bool {
	for _, b := range m {
		if b {
			return true
		}
	}
	return false
}

// All reports whether every lane is set.
func (m B32x4) All() bool {
	for _, b := range m {
		if !b {
			return false
		}
	}
	return true
}

// SelectF32 returns a[i] where the lane is set, b[i] otherwise.
func (m B32x4) SelectF32(a, b F32x4) F32x4 {
	var result F32x4
	for i := range m {
		if m[i] {
			result[i] = a[i]
		} else {
			result[i] = b[i]
		}
	}
	return result
}

// SelectI32 returns a[i] where the lane is set, b[i] otherwise.
func (m B32x4) SelectI32(a, b I32x4) I32x4 {
	var result I32x4
	for i := range m {
		if m[i] {
			result[i] = a[i]
		} else {
			result[i] = b[i]
		}
	}
	return result
}

// ToF32 converts the mask to floats: 1 where set, 0 otherwise.
func (m B32x4) ToF32() F32x4 {
	var result F32x4
	for i := range m {
		if m[i] {
			result[i] = 1
		}
	}
	return result
}
