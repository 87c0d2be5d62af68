package softvg

import (
	"testing"

	"github.com/gogpu/softvg/internal/wide"
)

func TestARGB(t *testing.T) {
	if got := ARGB(0xff, 0x11, 0x22, 0x33); got != 0xff112233 {
		t.Errorf("ARGB = %08x, want ff112233", got)
	}
}

func TestArgbUnpack(t *testing.T) {
	c := argbUnpack(0xff8040c0)
	want := [4]float32{128.0 / 255, 64.0 / 255, 192.0 / 255, 1}
	for i := range c {
		if !approxEq(c[i], want[i], 1e-6) {
			t.Errorf("channel %d = %f, want %f", i, c[i], want[i])
		}
	}
}

func TestArgbUnpackPremultiply(t *testing.T) {
	c := argbUnpackPremultiply(0x80ff0000)
	a := float32(128.0 / 255)
	if !approxEq(c[3], a, 1e-6) {
		t.Errorf("alpha = %f, want %f", c[3], a)
	}
	if !approxEq(c[0], a, 1e-6) {
		t.Errorf("premultiplied r = %f, want %f", c[0], a)
	}
	if c[1] != 0 || c[2] != 0 {
		t.Errorf("g/b = %f/%f, want 0", c[1], c[2])
	}
}

func TestAbgrPack4(t *testing.T) {
	// Opaque pure green in all four lanes.
	px := planarPixel{
		wide.SplatF32(0), // r
		wide.SplatF32(1), // g
		wide.SplatF32(0), // b
		wide.SplatF32(1), // a
	}
	out := abgrPack4(px)
	for i, v := range out {
		if v != 0xff00ff00 {
			t.Errorf("lane %d = %08x, want ff00ff00", i, v)
		}
	}
}

func TestAbgrPack4RoundHalfUp(t *testing.T) {
	// 0.5/255 rounds up to 1, just below rounds to 0.
	px := planarPixel{
		wide.F32x4{0.5 / 255, 0.49 / 255, 1.5 / 255, 0},
		wide.SplatF32(0),
		wide.SplatF32(0),
		wide.SplatF32(1),
	}
	out := abgrPack4(px)
	wantR := [4]uint32{1, 0, 2, 0}
	for i, v := range out {
		if v&0xff != wantR[i] {
			t.Errorf("lane %d r = %d, want %d", i, v&0xff, wantR[i])
		}
	}
}

func TestAbgrPack4Clamps(t *testing.T) {
	px := planarPixel{
		wide.SplatF32(2),  // overflows
		wide.SplatF32(-1), // underflows
		wide.SplatF32(0),
		wide.SplatF32(1),
	}
	out := abgrPack4(px)
	for _, v := range out {
		if v&0xff != 255 {
			t.Errorf("r = %d, want clamped 255", v&0xff)
		}
		if v>>8&0xff != 0 {
			t.Errorf("g = %d, want clamped 0", v>>8&0xff)
		}
	}
}
