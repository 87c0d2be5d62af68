// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package softvg

import "github.com/gogpu/softvg/internal/wide"

// Paint fillers composite a coverage mask into the planar render
// target. One logical target column holds four pixels, channel-major:
// a [4]wide.F32x4 is the r, g, b, a channels of four neighboring
// pixels. Channels are premultiplied; blending is Porter-Duff
// source-over:
//
//	out = src + (1 - src_a) * dst
//
// Gradient colors are sampled straight (non-premultiplied) and only
// multiplied by alpha*coverage*opacity at blend time, because stop
// interpolation must run on straight alpha.

// planarPixel is one logical column: four pixels with channel-major
// layout [r, g, b, a].
type planarPixel [4]wide.F32x4

// planarImage is the renderer's intermediate target: width is in
// logical columns (4 pixels each).
type planarImage struct {
	pix    []planarPixel
	width  int
	height int
}

func (p *planarImage) resizeAndClear(width, height int, clearTo planarPixel) {
	n := width * height
	if cap(p.pix) < n {
		p.pix = make([]planarPixel, n)
	} else {
		p.pix = p.pix[:n]
	}
	for i := range p.pix {
		p.pix[i] = clearTo
	}
	p.width = width
	p.height = height
}

func (p *planarImage) clearAll(clearTo planarPixel) {
	for i := range p.pix {
		p.pix[i] = clearTo
	}
}

// Per-column coverage fast-path thresholds, in coverage units.
const (
	coverageSkip   = 0.5 / 255.0   // all lanes below: nothing to blend
	coverageOpaque = 254.5 / 255.0 // all lanes above: full coverage
)

// blitBounds computes the iteration window of a mask blitted at offset
// into the target: pixel range [begin, end) and the logical column
// range [u0, u1). ok is false when the window is empty.
func blitBounds(mask *AlphaImage, offset [2]int, target *planarImage) (begin, end [2]int, u0, u1 int, ok bool) {
	sizeX := 4 * target.width
	sizeY := target.height

	begin = offset
	end = [2]int{
		min(offset[0]+mask.Width(), sizeX),
		min(offset[1]+mask.Height(), sizeY),
	}
	if begin[0] >= end[0] || begin[1] >= end[1] {
		return begin, end, 0, 0, false
	}

	// The raster rect is 4-aligned, so the blit window is too.
	u0 = begin[0] / 4
	u1 = end[0] / 4
	return begin, end, u0, u1, true
}

// fillMaskSolid composites a premultiplied solid color through the mask.
func fillMaskSolid(mask *AlphaImage, offset [2]int, color [4]float32, target *planarImage) {
	begin, end, u0, u1, ok := blitBounds(mask, offset, target)
	if !ok {
		return
	}

	one := wide.SplatF32(1)

	for y := begin[1]; y < end[1]; y++ {
		row := target.pix[y*target.width:]

		for u := u0; u < u1; u++ {
			maskX := u*4 - begin[0]
			maskY := y - begin[1]
			coverage := wide.F32x4(mask.Read4(maskX, maskY))

			if coverage.Lt(wide.SplatF32(coverageSkip)).All() {
				continue
			}
			if color[3] == 1 && coverage.Gt(wide.SplatF32(coverageOpaque)).All() {
				row[u] = planarPixel{
					wide.SplatF32(color[0]),
					wide.SplatF32(color[1]),
					wide.SplatF32(color[2]),
					one,
				}
				continue
			}

			sr := wide.SplatF32(color[0]).Mul(coverage)
			sg := wide.SplatF32(color[1]).Mul(coverage)
			sb := wide.SplatF32(color[2]).Mul(coverage)
			sa := wide.SplatF32(color[3]).Mul(coverage)

			t := row[u]
			inv := one.Sub(sa)
			row[u] = planarPixel{
				sr.Add(inv.Mul(t[0])),
				sg.Add(inv.Mul(t[1])),
				sb.Add(inv.Mul(t[2])),
				sa.Add(inv.Mul(t[3])),
			}
		}
	}
}

// gradientStopF32 is a gradient stop with unpacked straight-alpha color.
type gradientStopF32 struct {
	offset float32
	color  [4]float32
}

// fillMaskLinearGradient2 composites a two-stop linear gradient.
// p0 and p1 are the stop-biased axis endpoints in raster-local space.
func fillMaskLinearGradient2(p0, p1 Point, color0, color1 [4]float32, opacity float32,
	mask *AlphaImage, offset [2]int, target *planarImage) {

	begin, end, u0, u1, ok := blitBounds(mask, offset, target)
	if !ok {
		return
	}

	one := wide.SplatF32(1)
	d1 := p1.Sub(p0)
	d1x := wide.SplatF32(d1.X)
	d1y := wide.SplatF32(d1.Y)

	px0 := wide.IotaF32().Add(wide.SplatF32(0.5))
	py := wide.SplatF32(0.5)

	for y := begin[1]; y < end[1]; y++ {
		row := target.pix[y*target.width:]
		px := px0

		for u := u0; u < u1; u++ {
			maskX := u*4 - begin[0]
			maskY := y - begin[1]
			coverage := wide.F32x4(mask.Read4(maskX, maskY))

			if coverage.Lt(wide.SplatF32(coverageSkip)).All() {
				px = px.Add(wide.SplatF32(4))
				continue
			}

			// t = dot(p - p0, p1 - p0) / |p1 - p0|^2
			dpx := px.Sub(wide.SplatF32(p0.X))
			dpy := py.Sub(wide.SplatF32(p0.Y))
			t := dpx.Mul(d1x).Add(dpy.Mul(d1y)).Div(d1x.Mul(d1x).Add(d1y.Mul(d1y)))
			t = t.Clamp(0, 1)

			blendGradient(row, u, t, color0, color1, coverage, opacity)

			px = px.Add(wide.SplatF32(4))
		}

		py = py.Add(one)
	}
}

// fillMaskLinearGradientN composites a multi-stop linear gradient.
// p0 and p1 are the gradient axis endpoints in raster-local space;
// stops hold unpacked colors in non-decreasing offset order.
func fillMaskLinearGradientN(p0, p1 Point, stops []gradientStopF32, opacity float32,
	mask *AlphaImage, offset [2]int, target *planarImage) {

	begin, end, u0, u1, ok := blitBounds(mask, offset, target)
	if !ok {
		return
	}

	one := wide.SplatF32(1)
	d1 := p1.Sub(p0)
	d1x := wide.SplatF32(d1.X)
	d1y := wide.SplatF32(d1.Y)

	px0 := wide.IotaF32().Add(wide.SplatF32(0.5))
	py := wide.SplatF32(0.5)

	for y := begin[1]; y < end[1]; y++ {
		row := target.pix[y*target.width:]
		px := px0

		for u := u0; u < u1; u++ {
			maskX := u*4 - begin[0]
			maskY := y - begin[1]
			coverage := wide.F32x4(mask.Read4(maskX, maskY))

			if coverage.Lt(wide.SplatF32(coverageSkip)).All() {
				px = px.Add(wide.SplatF32(4))
				continue
			}

			dpx := px.Sub(wide.SplatF32(p0.X))
			dpy := py.Sub(wide.SplatF32(p0.Y))
			t := dpx.Mul(d1x).Add(dpy.Mul(d1y)).Div(d1x.Mul(d1x).Add(d1y.Mul(d1y)))

			blendGradientN(row, u, t, stops, coverage, opacity)

			px = px.Add(wide.SplatF32(4))
		}

		py = py.Add(one)
	}
}

// radialParams precomputes the per-pass state of the focal radial
// parameterization: the composite inverse transform applied to raster
// pixel centers and the per-axis increments for walking pixels.
type radialParams struct {
	start Point
	xHat  Point
	yHat  Point
	cp    Point
	cr    float32
	fp    Point
	fr    float32
}

func newRadialParams(rasterOrigin Point, invTfx, invGradTfx Transform, g *RadialGradient) radialParams {
	inv := invGradTfx.Mul(invTfx)
	return radialParams{
		start: inv.Apply(rasterOrigin.Add(Pt(0.5, 0.5))),
		xHat:  inv.ApplyVec(Pt(1, 0)),
		yHat:  inv.ApplyVec(Pt(0, 1)),
		cp:    g.Cp,
		cr:    g.Cr,
		fp:    g.Fp,
		fr:    g.Fr,
	}
}

// radialT computes the focal gradient parameter for four sample
// positions:
//
//	k = -(d1·d2)/(d1·d1) + sqrt(((d1·d2)/(d1·d1))² + (cr² - d2·d2)/(d1·d1))
//	t = (|d1| - fr) / (k·|d1| - fr)
//
// with d1 = p - fp, d2 = fp - cp. Negative discriminants clamp to zero.
func (rp *radialParams) radialT(px, py wide.F32x4) wide.F32x4 {
	d1x := px.Sub(wide.SplatF32(rp.fp.X))
	d1y := py.Sub(wide.SplatF32(rp.fp.Y))

	d2 := rp.fp.Sub(rp.cp)
	d2x := wide.SplatF32(d2.X)
	d2y := wide.SplatF32(d2.Y)

	d11 := d1x.Mul(d1x).Add(d1y.Mul(d1y))
	d12 := d1x.Mul(d2x).Add(d1y.Mul(d2y))
	d22 := d2x.Mul(d2x).Add(d2y.Mul(d2y))

	q := d12.Div(d11)
	discr := q.Mul(q).Add(wide.SplatF32(rp.cr * rp.cr).Sub(d22).Div(d11))
	discr = discr.Max(wide.SplatF32(0))
	k := q.Neg().Add(discr.Sqrt())

	l := d11.Sqrt()
	fr := wide.SplatF32(rp.fr)
	return l.Sub(fr).Div(k.Mul(l).Sub(fr))
}

// fillMaskRadialGradient2 composites a two-stop radial gradient.
func fillMaskRadialGradient2(rasterOrigin Point, invTfx, invGradTfx Transform, g *RadialGradient,
	stop0, stop1 gradientStopF32, opacity float32,
	mask *AlphaImage, offset [2]int, target *planarImage) {

	begin, end, u0, u1, ok := blitBounds(mask, offset, target)
	if !ok {
		return
	}

	rp := newRadialParams(rasterOrigin, invTfx, invGradTfx, g)
	stepScale := safeDiv32(1, stop1.offset-stop0.offset, 1e6)

	xOffX := wide.IotaF32().Scale(rp.xHat.X)
	xOffY := wide.IotaF32().Scale(rp.xHat.Y)

	pp := rp.start

	for y := begin[1]; y < end[1]; y++ {
		row := target.pix[y*target.width:]
		px := wide.SplatF32(pp.X).Add(xOffX)
		py := wide.SplatF32(pp.Y).Add(xOffY)

		for u := u0; u < u1; u++ {
			maskX := u*4 - begin[0]
			maskY := y - begin[1]
			coverage := wide.F32x4(mask.Read4(maskX, maskY))

			if coverage.Lt(wide.SplatF32(coverageSkip)).All() {
				px = px.Add(wide.SplatF32(4 * rp.xHat.X))
				py = py.Add(wide.SplatF32(4 * rp.xHat.Y))
				continue
			}

			t := rp.radialT(px, py)
			t = t.Sub(wide.SplatF32(stop0.offset)).Scale(stepScale)
			t = t.Clamp(0, 1)

			blendGradient(row, u, t, stop0.color, stop1.color, coverage, opacity)

			px = px.Add(wide.SplatF32(4 * rp.xHat.X))
			py = py.Add(wide.SplatF32(4 * rp.xHat.Y))
		}

		pp = pp.Add(rp.yHat)
	}
}

// fillMaskRadialGradientN composites a multi-stop radial gradient.
func fillMaskRadialGradientN(rasterOrigin Point, invTfx, invGradTfx Transform, g *RadialGradient,
	stops []gradientStopF32, opacity float32,
	mask *AlphaImage, offset [2]int, target *planarImage) {

	begin, end, u0, u1, ok := blitBounds(mask, offset, target)
	if !ok {
		return
	}

	rp := newRadialParams(rasterOrigin, invTfx, invGradTfx, g)

	xOffX := wide.IotaF32().Scale(rp.xHat.X)
	xOffY := wide.IotaF32().Scale(rp.xHat.Y)

	pp := rp.start

	for y := begin[1]; y < end[1]; y++ {
		row := target.pix[y*target.width:]
		px := wide.SplatF32(pp.X).Add(xOffX)
		py := wide.SplatF32(pp.Y).Add(xOffY)

		for u := u0; u < u1; u++ {
			maskX := u*4 - begin[0]
			maskY := y - begin[1]
			coverage := wide.F32x4(mask.Read4(maskX, maskY))

			if coverage.Lt(wide.SplatF32(coverageSkip)).All() {
				px = px.Add(wide.SplatF32(4 * rp.xHat.X))
				py = py.Add(wide.SplatF32(4 * rp.xHat.Y))
				continue
			}

			t := rp.radialT(px, py)

			blendGradientN(row, u, t, stops, coverage, opacity)

			px = px.Add(wide.SplatF32(4 * rp.xHat.X))
			py = py.Add(wide.SplatF32(4 * rp.xHat.Y))
		}

		pp = pp.Add(rp.yHat)
	}
}

// blendGradient lerps two straight-alpha colors at t (already clamped
// to [0, 1]) and source-over blends the result into column u.
func blendGradient(row []planarPixel, u int, t wide.F32x4, color0, color1 [4]float32,
	coverage wide.F32x4, opacity float32) {

	one := wide.SplatF32(1)
	omt := one.Sub(t)

	sr := omt.Scale(color0[0]).Add(t.Scale(color1[0]))
	sg := omt.Scale(color0[1]).Add(t.Scale(color1[1]))
	sb := omt.Scale(color0[2]).Add(t.Scale(color1[2]))
	sa := omt.Scale(color0[3]).Add(t.Scale(color1[3])).Mul(coverage).Scale(opacity)

	dst := row[u]
	inv := one.Sub(sa)
	row[u] = planarPixel{
		sa.Mul(sr).Add(inv.Mul(dst[0])),
		sa.Mul(sg).Add(inv.Mul(dst[1])),
		sa.Mul(sb).Add(inv.Mul(dst[2])),
		sa.Add(inv.Mul(dst[3])),
	}
}

// blendGradientN evaluates the piecewise-linear color function at t and
// source-over blends the result into column u. Lanes may fall into
// different stop intervals; intervals are walked in order, each lane
// taking its color from the first interval that contains it, tracked
// with a has-color mask.
func blendGradientN(row []planarPixel, u int, t wide.F32x4, stops []gradientStopF32,
	coverage wide.F32x4, opacity float32) {

	one := wide.SplatF32(1)
	stop0 := stops[0]
	stopN := stops[len(stops)-1]

	var sr, sg, sb, sa wide.F32x4

	le0 := t.Le(wide.SplatF32(stop0.offset))
	geN := t.Ge(wide.SplatF32(stopN.offset))

	switch {
	case le0.All():
		sr = wide.SplatF32(stop0.color[0])
		sg = wide.SplatF32(stop0.color[1])
		sb = wide.SplatF32(stop0.color[2])
		sa = wide.SplatF32(stop0.color[3])

	case geN.All():
		sr = wide.SplatF32(stopN.color[0])
		sg = wide.SplatF32(stopN.color[1])
		sb = wide.SplatF32(stopN.color[2])
		sa = wide.SplatF32(stopN.color[3])

	default:
		// Seed the lanes past the last stop, then fill the rest by
		// walking intervals.
		sr = wide.SplatF32(stopN.color[0])
		sg = wide.SplatF32(stopN.color[1])
		sb = wide.SplatF32(stopN.color[2])
		sa = wide.SplatF32(stopN.color[3])

		hasColor := geN

		for i := 0; i < len(stops)-1; i++ {
			curr := stops[i]
			next := stops[i+1]

			ltNext := t.Lt(wide.SplatF32(next.offset))
			wasNew := hasColor.Not().And(ltNext)

			if wasNew.Any() {
				scale := safeDiv32(1, next.offset-curr.offset, 1e6)

				lt := t.Sub(wide.SplatF32(curr.offset)).Scale(scale)
				lt = lt.Clamp(0, 1)
				omt := one.Sub(lt)

				r := omt.Scale(curr.color[0]).Add(lt.Scale(next.color[0]))
				g := omt.Scale(curr.color[1]).Add(lt.Scale(next.color[1]))
				b := omt.Scale(curr.color[2]).Add(lt.Scale(next.color[2]))
				a := omt.Scale(curr.color[3]).Add(lt.Scale(next.color[3]))

				sr = wasNew.SelectF32(r, sr)
				sg = wasNew.SelectF32(g, sg)
				sb = wasNew.SelectF32(b, sb)
				sa = wasNew.SelectF32(a, sa)

				hasColor = hasColor.Or(wasNew)
				if hasColor.All() {
					break
				}
			}
		}
	}

	sa = sa.Mul(coverage).Scale(opacity)

	dst := row[u]
	inv := one.Sub(sa)
	row[u] = planarPixel{
		sa.Mul(sr).Add(inv.Mul(dst[0])),
		sa.Mul(sg).Add(inv.Mul(dst[1])),
		sa.Mul(sb).Add(inv.Mul(dst[2])),
		sa.Add(inv.Mul(dst[3])),
	}
}
