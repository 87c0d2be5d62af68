package softvg

import "github.com/gogpu/softvg/internal/wide"

// Colors cross the public API as packed 32-bit ARGB values:
//
//	A<<24 | R<<16 | G<<8 | B
//
// The renderer's internal buffers hold premultiplied float channels.
// Input colors are not premultiplied (that would lose information at 8
// bit depth, and gradient interpolation must run on straight alpha).

// ARGB packs four 8-bit channels into a color value.
func ARGB(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// argbUnpack expands a packed color to float channels [r, g, b, a] in [0, 1].
func argbUnpack(v uint32) [4]float32 {
	const scale = 1.0 / 255.0
	return [4]float32{
		float32(v>>16&0xff) * scale,
		float32(v>>8&0xff) * scale,
		float32(v&0xff) * scale,
		float32(v>>24&0xff) * scale,
	}
}

// argbUnpackPremultiply expands a packed color and multiplies the color
// channels by alpha.
func argbUnpackPremultiply(v uint32) [4]float32 {
	c := argbUnpack(v)
	a := c[3]
	return [4]float32{c[0] * a, c[1] * a, c[2] * a, a}
}

// abgrPack4 packs four premultiplied float pixels (channel-major lanes)
// into output pixel values with round-half-up and clamp to [0, 255].
// The packed order is A<<24 | B<<16 | G<<8 | R, so a little-endian read
// of the target bytes yields R, G, B, A.
func abgrPack4(c [4]wide.F32x4) [4]uint32 {
	r := packChannel(c[0])
	g := packChannel(c[1])
	b := packChannel(c[2])
	a := packChannel(c[3])

	var out [4]uint32
	for i := range out {
		out[i] = a[i]<<24 | b[i]<<16 | g[i]<<8 | r[i]
	}
	return out
}

func packChannel(v wide.F32x4) [4]uint32 {
	scaled := v.Scale(255).Add(wide.SplatF32(0.5)).Clamp(0, 255)
	var out [4]uint32
	for i := range out {
		out[i] = uint32(int32(scaled[i]))
	}
	return out
}
