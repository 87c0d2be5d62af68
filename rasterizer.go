// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package softvg

import (
	"math"

	"github.com/gogpu/softvg/internal/wide"
)

// FillRule selects how winding numbers map to coverage.
// Accumulation currently implements NonZero (|winding| clamped to 1);
// EvenOdd is reserved.
type FillRule uint8

const (
	FillRuleNonZero FillRule = iota
	FillRuleEvenOdd
)

// Tolerances are absolute, in pixel space.
const (
	// ZeroTolerance is the length below which geometry counts as degenerate.
	ZeroTolerance   = 0.001
	ZeroToleranceSq = ZeroTolerance * ZeroTolerance

	// FlattenToleranceSq bounds the squared deviation of emitted chords.
	FlattenToleranceSq = 0.1 * 0.1

	// FlattenRecursion is the default curve subdivision budget.
	FlattenRecursion = 16
)

const segmentBufferSize = 32

// Rasterizer accumulates signed per-pixel coverage deltas from line
// segments and curves, producing an alpha mask via Accumulate.
//
// The delta buffer is (width+2) x (height+1): two extra columns so the
// right-cell delta of the last pixel has a safe home, one extra row
// that never reaches the mask. Segments are buffered and flushed in
// batches of four through the wide lane types.
//
// Line segments must stay shorter than roughly 1000 pixels: the pixel
// stepper finds crossings by repeated addition, which accumulates
// rounding error on long segments. The renderer keeps segments short
// by never rasterizing outside an AABB-clipped raster rect; this is a
// practical bound, not a hard guarantee.
type Rasterizer struct {
	// FlattenToleranceSq and FlattenRecursion control curve flattening
	// for AddQuad and AddCubic.
	FlattenToleranceSq float32
	FlattenRecursion   int

	deltas   *AlphaImage
	size     Point
	safeSize Point
	buffer   [segmentBufferSize][2]Point
	buffered int
}

// NewRasterizer prepares a rasterizer over the given working image,
// resizing and clearing it to (width+2) x (height+1). The image is
// borrowed for the lifetime of the rasterization and handed back as
// the mask by Accumulate.
func NewRasterizer(image *AlphaImage, width, height int) *Rasterizer {
	image.Resize(width+2, height+1)
	size := Point{X: float32(width), Y: float32(height)}
	return &Rasterizer{
		FlattenToleranceSq: FlattenToleranceSq,
		FlattenRecursion:   FlattenRecursion,
		deltas:             image,
		size:               size,
		safeSize:           size.Add(Point{X: 0.9, Y: 0.9}),
	}
}

// Width returns the mask width.
func (r *Rasterizer) Width() int { return r.deltas.Width() - 2 }

// Height returns the mask height.
func (r *Rasterizer) Height() int { return r.deltas.Height() - 1 }

// isInvisible reports whether geometry with this AABB cannot contribute
// coverage: fully right of or below the raster, or fully above it.
// Geometry left of the raster still matters (it shifts winding).
func (r *Rasterizer) isInvisible(aabb Rect) bool {
	return aabb.Min.X >= r.size.X || aabb.Min.Y >= r.size.Y || aabb.Max.Y <= 0
}

// isBounded reports whether p lies within [0, size + 0.9], the region
// where the fast path may write deltas without clipping.
func (r *Rasterizer) isBounded(p Point) bool {
	return p.X >= 0 && p.X < r.safeSize.X && p.Y >= 0 && p.Y < r.safeSize.Y
}

// AddLine adds a line segment in raster coordinates.
func (r *Rasterizer) AddLine(l Line) {
	r.addLineP(l.P0, l.P1)
}

func (r *Rasterizer) addLineP(p0, p1 Point) {
	if r.isInvisible(RectFromPoints(p0, p1)) {
		return
	}
	if r.isBounded(p0) && r.isBounded(p1) {
		r.addLineBounded(p0, p1)
	} else {
		r.addLineSlow(p0, p1)
	}
}

// addLineBounded buffers a segment whose endpoints are both bounded.
func (r *Rasterizer) addLineBounded(p0, p1 Point) {
	if r.buffered >= len(r.buffer) {
		r.flush()
	}
	r.buffer[r.buffered] = [2]Point{p0, p1}
	r.buffered++
}

// addLineSlow clips a segment to the raster rect. The part clipped away
// at the left edge still contributes winding; it is routed to the
// left-edge column accumulator.
func (r *Rasterizer) addLineSlow(p0, p1 Point) {
	if p0.X <= ZeroTolerance && p1.X <= ZeroTolerance {
		r.addLeftDelta(p0.Y, p1.Y)
		return
	}

	d := p1.Sub(p0)
	dxOverDy := safeDiv32(d.X, d.Y, 0)
	dyOverDx := safeDiv32(d.Y, d.X, 0)

	c0 := r.clampToRaster(p0, dxOverDy, dyOverDx, true)
	c1 := r.clampToRaster(p1, dxOverDy, dyOverDx, false)

	r.addLineBounded(c0, c1)
}

func (r *Rasterizer) clampToRaster(p Point, dxOverDy, dyOverDx float32, isFirst bool) Point {
	w, h := r.size.X, r.size.Y
	x, y := p.X, p.Y

	if y < 0 {
		x += dxOverDy * (0 - y)
		y = 0
	} else if y > h {
		x += dxOverDy * (h - y)
		y = h
	}

	if x < 0 {
		y0 := y
		y = clamp32(y+dyOverDx*(0-x), 0, h)
		x = 0

		// The clipped-away part runs along the left edge; its sign is
		// reversed for the trailing endpoint.
		if isFirst {
			r.addLeftDeltaBounded(y0, y)
		} else {
			r.addLeftDeltaBounded(y, y0)
		}
	} else if x > w {
		y = clamp32(y+dyOverDx*(w-x), 0, h)
		x = w
	}

	return Point{X: x, Y: y}
}

// addLeftDelta adds winding along column zero for the y range,
// clamping to the raster height first.
func (r *Rasterizer) addLeftDelta(y0, y1 float32) {
	r.addLeftDeltaBounded(clamp32(y0, 0, r.size.Y), clamp32(y1, 0, r.size.Y))
}

func (r *Rasterizer) addLeftDeltaBounded(y0, y1 float32) {
	stride := float32(r.deltas.Stride())

	dy := y1 - y0
	yStep := copysign32(1, dy)
	var yNudge float32
	if dy < 0 {
		yNudge = 1
	}

	yI0 := floor32(y0)
	yI1 := floor32(y1)
	steps := int(abs32(yI1 - yI0))

	yPrev := y0
	yNext := yI0 + yStep + yNudge

	rowDelta := int(copysign32(stride, dy))
	rowBase := int(stride * yI0)

	data := r.deltas.Data()
	for i := 0; i < steps; i++ {
		data[rowBase] += yNext - yPrev
		yPrev = yNext
		yNext += yStep
		rowBase += rowDelta
	}
	data[rowBase] += y1 - yPrev
}

// AddQuad adds a quadratic curve, flattening it with the rasterizer's
// tolerance and recursion budget.
func (r *Rasterizer) AddQuad(q Quad) {
	r.addQuadTolRec(q, r.FlattenToleranceSq, r.FlattenRecursion)
}

func (r *Rasterizer) addQuadTolRec(q Quad, tolSq float32, maxRec int) {
	if r.isInvisible(q.AABB()) {
		return
	}
	if r.isBounded(q.P0) && r.isBounded(q.P1) && r.isBounded(q.P2) {
		q.Flatten(tolSq, maxRec, r.addLineBounded)
	} else {
		q.Flatten(tolSq, maxRec, r.addLineP)
	}
}

// AddCubic adds a cubic curve, flattening it with the rasterizer's
// tolerance and recursion budget.
func (r *Rasterizer) AddCubic(c Cubic) {
	if r.isInvisible(c.AABB()) {
		return
	}
	c.Flatten(r.FlattenToleranceSq, r.FlattenRecursion, r.addLineP)
}

// FillPath adds every curve of the path, transformed by tfx. Open
// subpaths are closed with an implicit segment from their last point
// back to their first; closed subpaths already end on their begin
// point by construction.
func (r *Rasterizer) FillPath(path *Path, tfx Transform) {
	var begin Point
	var open bool

	for ev := range path.Events() {
		switch ev.Kind {
		case EventBegin:
			if !ev.Closed {
				begin = ev.Point
				open = true
			}

		case EventLine:
			r.AddLine(tfx.ApplyLine(ev.Line))

		case EventQuad:
			r.AddQuad(tfx.ApplyQuad(ev.Quad))

		case EventCubic:
			r.AddCubic(tfx.ApplyCubic(ev.Cubic))

		case EventEnd:
			if open {
				r.AddLine(tfx.ApplyLine(Ln(ev.Point, begin)))
				open = false
			}
		}
	}
}

// Accumulate flushes pending segments, runs the per-row prefix sum over
// the deltas, clamps |coverage| to 1 and returns the working image
// truncated to width x height as the mask. The rasterizer must not be
// used afterwards.
func (r *Rasterizer) Accumulate() *AlphaImage {
	if r.buffered > 0 {
		r.flush()
	}

	w := r.Width()
	h := r.Height()
	stride := r.deltas.Stride()
	data := r.deltas.Data()

	one := wide.SplatF32(1)
	for y := 0; y < h; y++ {
		row := data[y*stride : y*stride+w]

		c := wide.SplatF32(0)
		alignedW := w / 4 * 4

		for x := 0; x < alignedW; x += 4 {
			d := wide.F32x4{row[x], row[x+1], row[x+2], row[x+3]}
			c = c.Add(d.PrefixSum())

			out := c.Abs().Min(one)
			row[x], row[x+1], row[x+2], row[x+3] = out[0], out[1], out[2], out[3]

			c = wide.SplatF32(c[3])
		}

		cs := c[3]
		for x := alignedW; x < w; x++ {
			cs += row[x]
			row[x] = min(abs32(cs), 1)
		}
	}

	r.deltas.Truncate(w, h)
	return r.deltas
}

// flush rasterizes the buffered segments four at a time. Each batch
// steps all four segments across pixel grid lines in lockstep, always
// crossing whichever of the next vertical or horizontal line has the
// smaller parametric t (ties toward x). Exhausted lanes keep stepping
// with zeroed contributions until the slowest lane finishes.
func (r *Rasterizer) flush() {
	batches := (r.buffered + 3) / 4

	// Zero the tail so spare lanes rasterize nothing.
	for i := r.buffered; i < batches*4; i++ {
		r.buffer[i] = [2]Point{}
	}

	zero := wide.SplatF32(0)
	one := wide.SplatF32(1)
	big := wide.SplatF32(1e6)
	zeroI := wide.SplatI32(0)
	oneI := wide.SplatI32(1)
	stride := wide.SplatF32(float32(r.deltas.Stride()))

	for batch := 0; batch < batches; batch++ {
		var x0, y0, x1, y1 wide.F32x4
		for lane := 0; lane < 4; lane++ {
			s := r.buffer[4*batch+lane]
			x0[lane], y0[lane] = s[0].X, s[0].Y
			x1[lane], y1[lane] = s[1].X, s[1].Y
		}

		dx := x1.Sub(x0)
		dy := y1.Sub(y0)
		dxInv := wide.SafeDiv(one, dx, big)
		dyInv := wide.SafeDiv(one, dy, big)

		xStep := one.Copysign(dx)
		yStep := one.Copysign(dy)
		xNudge := dx.Lt(zero).ToF32()
		yNudge := dy.Lt(zero).ToF32()

		xDt := dxInv.Abs()
		yDt := dyInv.Abs()

		xI0 := x0.Trunc().ToF32()
		yI0 := y0.Trunc().ToF32()
		xI1 := x1.Trunc().ToF32()
		yI1 := y1.Trunc().ToF32()

		xSteps := xI1.Sub(xI0).Abs().Trunc()
		ySteps := yI1.Sub(yI0).Abs().Trunc()
		maxSteps := xSteps.Add(ySteps).ReduceMax()

		xPrev := x0
		yPrev := y0
		xNext := xI0.Add(xStep).Add(xNudge)
		yNext := yI0.Add(yStep).Add(yNudge)
		xTNext := xNext.Sub(x0).Mul(dxInv)
		yTNext := yNext.Sub(y0).Mul(dyInv)
		xRem := xSteps
		yRem := ySteps

		rowDelta := stride.Copysign(dy).Trunc()
		rowBase := stride.Mul(yI0).Trunc()
		xI := xI0

		for step := int32(0); step < maxSteps; step++ {
			prevBase := rowBase
			prevXI := xI

			xLeft := xRem.Gt(zeroI)
			yLeft := yRem.Gt(zeroI)
			anyLeft := xLeft.Or(yLeft)
			isX := xTNext.Le(yTNext).And(xLeft).Or(yLeft.Not())
			isY := isX.Not()

			x := anyLeft.SelectF32(isX.SelectF32(xNext, x0.Add(yTNext.Mul(dx))), xPrev)
			y := anyLeft.SelectF32(isY.SelectF32(yNext, y0.Add(xTNext.Mul(dy))), yPrev)

			xNext = xNext.Add(isX.SelectF32(xStep, zero))
			yNext = yNext.Add(isY.SelectF32(yStep, zero))
			xTNext = xTNext.Add(isX.SelectF32(xDt, zero))
			yTNext = yTNext.Add(isY.SelectF32(yDt, zero))

			xI = xI.Add(isX.And(xLeft).SelectF32(xStep, zero))
			xRem = xRem.Sub(isX.SelectI32(oneI, zeroI))

			rowBase = rowBase.Add(isY.And(yLeft).SelectI32(rowDelta, zeroI))
			yRem = yRem.Sub(isY.SelectI32(oneI, zeroI))

			r.addDeltas(prevBase, prevXI, xPrev, yPrev, x, y)

			xPrev = x
			yPrev = y
		}

		r.addDeltas(rowBase, xI, xPrev, yPrev, x1, y1)
	}

	r.buffered = 0
}

// addDeltas splits each lane's y contribution between the pixel it
// crosses and its right neighbor by trapezoid area.
func (r *Rasterizer) addDeltas(rowBase wide.I32x4, xI, x0, y0, x1, y1 wide.F32x4) {
	delta := y1.Sub(y0)

	xMid := x0.Add(x1).Scale(0.5).Sub(xI)
	deltaRight := delta.Mul(xMid)
	deltaLeft := delta.Sub(deltaRight)

	x := xI.Trunc()
	data := r.deltas.Data()
	for i := 0; i < 4; i++ {
		o := rowBase[i] + x[i]
		data[o] += deltaLeft[i]
		data[o+1] += deltaRight[i]
	}
}

func safeDiv32(a, b, def float32) float32 {
	if b == 0 {
		return def
	}
	return a / b
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

func copysign32(v, sign float32) float32 {
	return float32(math.Copysign(float64(v), float64(sign)))
}
