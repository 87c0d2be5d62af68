package softvg

import (
	"testing"

	"github.com/gogpu/softvg/internal/wide"
)

func fullMask(w, h int) *AlphaImage {
	m := NewAlphaImage(w+2, h+1)
	for i := range m.Data() {
		m.Data()[i] = 1
	}
	m.Truncate(w, h)
	return m
}

func newPlanarTarget(wPix, h int, clear uint32) *planarImage {
	var p planarImage
	p.resizeAndClear((wPix+3)/4, h, splatClear(clear))
	return &p
}

func pixelAt(p *planarImage, x, y int) [4]float32 {
	col := p.pix[y*p.width+x/4]
	lane := x % 4
	return [4]float32{col[0][lane], col[1][lane], col[2][lane], col[3][lane]}
}

func TestFillMaskSolidOpaqueFastPath(t *testing.T) {
	target := newPlanarTarget(8, 4, 0xffffffff)
	fillMaskSolid(fullMask(8, 4), [2]int{0, 0}, argbUnpackPremultiply(0xff0000ff), target)

	got := pixelAt(target, 3, 2)
	want := [4]float32{0, 0, 1, 1}
	for i := range got {
		if !approxEq(got[i], want[i], 1e-6) {
			t.Fatalf("channel %d = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestFillMaskSolidSkipsEmptyColumns(t *testing.T) {
	target := newPlanarTarget(8, 2, 0xff000000)
	mask := NewAlphaImage(10, 3)
	mask.Truncate(8, 2) // all zero coverage

	fillMaskSolid(mask, [2]int{0, 0}, argbUnpackPremultiply(0xffffffff), target)

	if got := pixelAt(target, 0, 0); got[0] != 0 {
		t.Errorf("zero-coverage column was written: %v", got)
	}
}

func TestFillMaskSolidPartialCoverage(t *testing.T) {
	target := newPlanarTarget(4, 1, 0xffffffff)
	mask := NewAlphaImage(6, 2)
	mask.Truncate(4, 1)
	mask.Data()[0] = 0.5 // pixel 0 at half coverage

	fillMaskSolid(mask, [2]int{0, 0}, argbUnpackPremultiply(0xff000000), target)

	got := pixelAt(target, 0, 0)
	// 0.5 black over white: channels 0.5, alpha 1.
	if !approxEq(got[0], 0.5, 1e-5) || !approxEq(got[3], 1, 1e-5) {
		t.Errorf("pixel = %v, want half gray", got)
	}
	// Neighbor lane untouched by coverage 0.
	if got := pixelAt(target, 1, 0); !approxEq(got[0], 1, 1e-6) {
		t.Errorf("neighbor = %v, want white", got)
	}
}

func TestFillMaskBlitClipping(t *testing.T) {
	// A mask blitted partially past the bottom-right corner only
	// touches the overlapping region.
	target := newPlanarTarget(8, 4, 0xff000000)
	fillMaskSolid(fullMask(8, 4), [2]int{4, 2}, argbUnpackPremultiply(0xffffffff), target)

	if got := pixelAt(target, 2, 1); got[0] != 0 {
		t.Errorf("outside blit window written: %v", got)
	}
	if got := pixelAt(target, 5, 3); !approxEq(got[0], 1, 1e-6) {
		t.Errorf("inside blit window = %v, want white", got)
	}
}

func TestFillMaskBlitFullyOutside(t *testing.T) {
	target := newPlanarTarget(8, 4, 0xff000000)
	fillMaskSolid(fullMask(8, 4), [2]int{8, 0}, argbUnpackPremultiply(0xffffffff), target)
	fillMaskSolid(fullMask(8, 4), [2]int{0, 4}, argbUnpackPremultiply(0xffffffff), target)

	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			if got := pixelAt(target, x, y); got[0] != 0 {
				t.Fatalf("out-of-range blit wrote (%d,%d): %v", x, y, got)
			}
		}
	}
}

func TestBlendGradientNLaneDivergence(t *testing.T) {
	// Four lanes fall into four different regions: before the first
	// stop, two different intervals, and past the last stop.
	row := []planarPixel{{}}
	stops := []gradientStopF32{
		{offset: 0.25, color: [4]float32{1, 0, 0, 1}},
		{offset: 0.5, color: [4]float32{0, 1, 0, 1}},
		{offset: 0.75, color: [4]float32{0, 0, 1, 1}},
	}
	t4 := wide.F32x4{0.1, 0.375, 0.625, 0.9}

	blendGradientN(row, 0, t4, stops, wide.SplatF32(1), 1)

	px := row[0]
	// Lane 0: clamped to first stop (red).
	if !approxEq(px[0][0], 1, 1e-5) || px[1][0] != 0 {
		t.Errorf("lane 0 = r%f g%f, want red", px[0][0], px[1][0])
	}
	// Lane 1: halfway red->green.
	if !approxEq(px[0][1], 0.5, 1e-5) || !approxEq(px[1][1], 0.5, 1e-5) {
		t.Errorf("lane 1 = r%f g%f, want half red/green", px[0][1], px[1][1])
	}
	// Lane 2: halfway green->blue.
	if !approxEq(px[1][2], 0.5, 1e-5) || !approxEq(px[2][2], 0.5, 1e-5) {
		t.Errorf("lane 2 = g%f b%f, want half green/blue", px[1][2], px[2][2])
	}
	// Lane 3: clamped to last stop (blue).
	if !approxEq(px[2][3], 1, 1e-5) || px[1][3] != 0 {
		t.Errorf("lane 3 = g%f b%f, want blue", px[1][3], px[2][3])
	}
}

func TestBlendGradientNEqualOffsets(t *testing.T) {
	// Coincident stop offsets must not divide by zero; the huge
	// substitute slope snaps t to the right endpoint's color.
	row := []planarPixel{{}}
	stops := []gradientStopF32{
		{offset: 0, color: [4]float32{1, 0, 0, 1}},
		{offset: 0.5, color: [4]float32{0, 1, 0, 1}},
		{offset: 0.5, color: [4]float32{0, 0, 1, 1}},
		{offset: 1, color: [4]float32{1, 1, 1, 1}},
	}
	t4 := wide.SplatF32(0.5)

	blendGradientN(row, 0, t4, stops, wide.SplatF32(1), 1)

	px := row[0]
	// t = 0.5 skips past both degenerate boundaries and lands at the
	// start of the interval owned by the second coincident stop.
	if !approxEq(px[2][0], 1, 1e-5) {
		t.Errorf("lane 0 b = %f, want blue endpoint", px[2][0])
	}
}

func TestRadialTSimpleCase(t *testing.T) {
	// With the focus at the center and fr = 0, t reduces to
	// distance / cr.
	g := &RadialGradient{Cp: Pt(0, 0), Cr: 10, Fp: Pt(0, 0), Fr: 0, Tfx: Identity()}
	rp := newRadialParams(Pt(0, 0), Identity(), Identity(), g)

	px := wide.F32x4{3, 6, 10, 20}
	py := wide.SplatF32(0)
	got := rp.radialT(px, py)
	want := wide.F32x4{0.3, 0.6, 1.0, 2.0}
	for i := range got {
		if !approxEq(got[i], want[i], 1e-4) {
			t.Errorf("lane %d t = %f, want %f", i, got[i], want[i])
		}
	}
}
