package softvg

import "math"

// Point is a position or direction vector in 2D space.
// All geometry in this package is single-precision.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns the point scaled by s.
func (p Point) Scale(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Neg returns the negated point.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float32 {
	return p.X*q.X + p.Y*q.Y
}

// LengthSq returns the squared length of the vector.
func (p Point) LengthSq() float32 {
	return p.Dot(p)
}

// Length returns the length of the vector.
func (p Point) Length() float32 {
	return float32(math.Sqrt(float64(p.LengthSq())))
}

// Lerp performs linear interpolation between two points.
func (p Point) Lerp(q Point, t float32) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Min returns the component-wise minimum.
func (p Point) Min(q Point) Point {
	return Point{X: min(p.X, q.X), Y: min(p.Y, q.Y)}
}

// Max returns the component-wise maximum.
func (p Point) Max(q Point) Point {
	return Point{X: max(p.X, q.X), Y: max(p.Y, q.Y)}
}

// Clamp clamps both components to [lo, hi].
func (p Point) Clamp(lo, hi Point) Point {
	return p.Max(lo).Min(hi)
}

// normalized returns a unit vector in the same direction.
// The caller must ensure the vector is not degenerate.
func (p Point) normalized() Point {
	l := p.Length()
	return Point{X: p.X / l, Y: p.Y / l}
}

// rotatedACW rotates the vector 90 degrees counter-clockwise.
func (p Point) rotatedACW() Point {
	return Point{X: -p.Y, Y: p.X}
}

// leftNormalUnck returns the unit left normal without a degeneracy check.
func (p Point) leftNormalUnck() Point {
	return p.normalized().rotatedACW()
}

// leftNormal returns the unit left normal, or false if the vector is
// shorter than the tolerance.
func (p Point) leftNormal(tolSq float32) (Point, bool) {
	if p.LengthSq() > tolSq {
		return p.leftNormalUnck(), true
	}
	return Point{}, false
}

// Rect is an axis-aligned bounding box.
// A rect is valid iff Min <= Max component-wise.
type Rect struct {
	Min, Max Point
}

// RectEmpty returns the collecting rect (Min = +Inf, Max = -Inf).
// Including any point into it yields that point's bounding box.
func RectEmpty() Rect {
	inf := float32(math.Inf(1))
	return Rect{
		Min: Point{X: inf, Y: inf},
		Max: Point{X: -inf, Y: -inf},
	}
}

// RectFromPoints returns the bounding box of two points.
func RectFromPoints(p0, p1 Point) Rect {
	return Rect{Min: p0.Min(p1), Max: p0.Max(p1)}
}

// Valid reports whether Min <= Max component-wise.
func (r Rect) Valid() bool {
	return r.Min.X <= r.Max.X && r.Min.Y <= r.Max.Y
}

// Include grows the rect to contain p.
func (r *Rect) Include(p Point) {
	r.Min = r.Min.Min(p)
	r.Max = r.Max.Max(p)
}

// Contains reports whether p lies in the half-open rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X &&
		p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// ClampTo clamps both corners to the other rect.
func (r Rect) ClampTo(other Rect) Rect {
	return Rect{
		Min: r.Min.Clamp(other.Min, other.Max),
		Max: r.Max.Clamp(other.Min, other.Max),
	}
}

// RoundOut floors Min and ceils Max to integer coordinates.
func (r Rect) RoundOut() Rect {
	return Rect{
		Min: Point{X: floor32(r.Min.X), Y: floor32(r.Min.Y)},
		Max: Point{X: ceil32(r.Max.X), Y: ceil32(r.Max.Y)},
	}
}

// Size returns Max - Min.
func (r Rect) Size() Point {
	return r.Max.Sub(r.Min)
}

// Width returns the horizontal extent.
func (r Rect) Width() float32 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent.
func (r Rect) Height() float32 {
	return r.Max.Y - r.Min.Y
}

func floor32(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

func ceil32(x float32) float32 {
	return float32(math.Ceil(float64(x)))
}

// Line is a line segment.
type Line struct {
	P0, P1 Point
}

// Ln is shorthand for Line{P0: p0, P1: p1}.
func Ln(p0, p1 Point) Line {
	return Line{P0: p0, P1: p1}
}

// Normal returns the unit left normal of the segment, or false if the
// segment is shorter than the tolerance.
func (l Line) Normal(tolSq float32) (Point, bool) {
	return l.P1.Sub(l.P0).leftNormal(tolSq)
}

// Offset translates the segment along normal by distance.
func (l Line) Offset(normal Point, distance float32) Line {
	return l.Translate(normal.Scale(distance))
}

// Translate shifts both endpoints by v.
func (l Line) Translate(v Point) Line {
	return Ln(l.P0.Add(v), l.P1.Add(v))
}

// AABB returns the segment's bounding box.
func (l Line) AABB() Rect {
	return RectFromPoints(l.P0, l.P1)
}

// Rev returns the segment with swapped endpoints.
func (l Line) Rev() Line {
	return Ln(l.P1, l.P0)
}

// Quad is a quadratic Bezier curve.
type Quad struct {
	P0, P1, P2 Point
}

// Qd is shorthand for Quad{P0: p0, P1: p1, P2: p2}.
func Qd(p0, p1, p2 Point) Quad {
	return Quad{P0: p0, P1: p1, P2: p2}
}

// Eval returns the curve point at parameter t.
func (q Quad) Eval(t float32) Point {
	l10 := q.P0.Lerp(q.P1, t)
	l11 := q.P1.Lerp(q.P2, t)
	return l10.Lerp(l11, t)
}

// Split subdivides the curve at t using de Casteljau's algorithm.
func (q Quad) Split(t float32) (Quad, Quad) {
	l10 := q.P0.Lerp(q.P1, t)
	l11 := q.P1.Lerp(q.P2, t)
	l20 := l10.Lerp(l11, t)
	return Qd(q.P0, l10, l20), Qd(l20, l11, q.P2)
}

// Flatten approximates the curve with line segments.
// The curve's deviation from its chord is largest at t = 0.5, where it
// is |p1/2 - (p0 + p2)/4| = 1/4 * |2*p1 - (p0 + p2)|. The error measure
// compared against tolSq is twice that deviation:
//
//	err = 1/2 * |2*p1 - (p0 + p2)|
//
// emit receives consecutive chords; recursion stops when the squared
// error is below tolSq or the budget is exhausted.
func (q Quad) Flatten(tolSq float32, maxRec int, emit func(p0, p1 Point)) {
	errSq := 0.25 * q.P1.Scale(2).Sub(q.P0.Add(q.P2)).LengthSq()

	if maxRec == 0 || errSq < tolSq {
		emit(q.P0, q.P2)
		return
	}
	q1, q2 := q.Split(0.5)
	q1.Flatten(tolSq, maxRec-1, emit)
	q2.Flatten(tolSq, maxRec-1, emit)
}

// Normals returns the unit left normals of the two control legs.
func (q Quad) Normals(tolSq float32) (n0, n1 Point, ok0, ok1 bool) {
	n0, ok0 = q.P1.Sub(q.P0).leftNormal(tolSq)
	n1, ok1 = q.P2.Sub(q.P1).leftNormal(tolSq)
	return
}

// Offset emits an approximation of the curve offset by distance along
// its normals. n0 and n2 are the unit left normals at the endpoints.
// The approximation is validated against the true offset midpoint and
// subdivided while the squared deviation exceeds tolSq.
func (q Quad) Offset(n0, n2 Point, distance, tolSq float32, maxRec int, emit func(Quad)) {
	n1 := n0.Add(n2)
	n1 = n1.Scale(2 / n1.Dot(n1))

	approx := Qd(
		q.P0.Add(n0.Scale(distance)),
		q.P1.Add(n1.Scale(distance)),
		q.P2.Add(n2.Scale(distance)))

	if q.P2.Sub(q.P0).LengthSq() <= tolSq {
		emit(approx)
		return
	}

	mid := q.Eval(0.5)
	nMid := q.P2.Sub(q.P0).leftNormalUnck()

	expected := mid.Add(nMid.Scale(distance))
	actual := approx.Eval(0.5)

	if maxRec == 0 || actual.Sub(expected).LengthSq() <= tolSq {
		emit(approx)
		return
	}
	l, r := q.Split(0.5)
	l.Offset(n0, nMid, distance, tolSq, maxRec-1, emit)
	r.Offset(nMid, n2, distance, tolSq, maxRec-1, emit)
}

// AABB returns the control polygon's bounding box.
func (q Quad) AABB() Rect {
	return Rect{
		Min: q.P0.Min(q.P1).Min(q.P2),
		Max: q.P0.Max(q.P1).Max(q.P2),
	}
}

// Rev returns the curve with reversed orientation.
func (q Quad) Rev() Quad {
	return Qd(q.P2, q.P1, q.P0)
}

// Cubic is a cubic Bezier curve.
type Cubic struct {
	P0, P1, P2, P3 Point
}

// Cb is shorthand for Cubic{P0: p0, P1: p1, P2: p2, P3: p3}.
func Cb(p0, p1, p2, p3 Point) Cubic {
	return Cubic{P0: p0, P1: p1, P2: p2, P3: p3}
}

// Split subdivides the curve at t using de Casteljau's algorithm.
func (c Cubic) Split(t float32) (Cubic, Cubic) {
	l10 := c.P0.Lerp(c.P1, t)
	l11 := c.P1.Lerp(c.P2, t)
	l12 := c.P2.Lerp(c.P3, t)
	l20 := l10.Lerp(l11, t)
	l21 := l11.Lerp(l12, t)
	l30 := l20.Lerp(l21, t)
	return Cb(c.P0, l10, l20, l30), Cb(l30, l21, l12, c.P3)
}

// ApproxQuad returns the mid-point quadratic approximation
// (p0, ((3*p1 - p0) + (3*p2 - p3))/4, p3).
func (c Cubic) ApproxQuad() Quad {
	mid := c.P1.Scale(3).Sub(c.P0).Add(c.P2.Scale(3).Sub(c.P3)).Scale(0.25)
	return Qd(c.P0, mid, c.P3)
}

// cubicApproxErrScaleSq is (sqrt(3)/36)^2, the coefficient of the
// mid-point approximation's maximum error |3*(p1-p2) + (p3-p0)|.
const cubicApproxErrScaleSq = 0.0023148148148148148148148148

// Reduce approximates the cubic with quadratics. emit receives each
// quadratic along with the remaining recursion budget. When a single
// mid-point approximation is out of tolerance, the curve is split at
// the symmetric parameter s = (tolSq/errSq)^(1/6): for s < 1/2 into
// three parts (0,s), (s,1-s), (1-s,1) whose outer two are approximated
// directly, otherwise at the midpoint.
func (c Cubic) Reduce(tolSq float32, maxRec int, emit func(q Quad, recLeft int)) {
	d := c.P1.Sub(c.P2).Scale(3).Add(c.P3.Sub(c.P0))
	errSq := float32(cubicApproxErrScaleSq) * d.LengthSq()

	if maxRec == 0 || errSq < tolSq {
		emit(c.ApproxQuad(), maxRec)
		return
	}

	// solve s^3 * sqrt(errSq) = sqrt(tolSq)  =>  s^6 = tolSq/errSq
	split := float32(math.Pow(float64(tolSq/errSq), 1.0/6.0))

	if split < 0.5 {
		// Symmetry allows splitting twice:
		//
		//	0    s       1-s   1
		//	|----|--------|----|
		//	     |- 1-2s -|
		//	     |---- 1-s ----|
		split2 := (1 - 2*split) / (1 - split)

		l, r := c.Split(split)
		m, r := r.Split(split2)

		emit(l.ApproxQuad(), maxRec)
		m.Reduce(tolSq, maxRec-1, emit)
		emit(r.ApproxQuad(), maxRec)
	} else {
		l, r := c.Split(0.5)
		l.Reduce(tolSq, maxRec-1, emit)
		r.Reduce(tolSq, maxRec-1, emit)
	}
}

// Flatten approximates the cubic with line segments by reducing to
// quadratics and flattening those. Tolerance is halved and the budget
// split so the total error stays within the caller's tolerance.
func (c Cubic) Flatten(tolSq float32, maxRec int, emit func(p0, p1 Point)) {
	tolSq /= 4
	maxRec /= 2

	c.Reduce(tolSq, maxRec, func(q Quad, recLeft int) {
		q.Flatten(tolSq, maxRec+recLeft, emit)
	})
}

// AABB returns the control polygon's bounding box.
func (c Cubic) AABB() Rect {
	return Rect{
		Min: c.P0.Min(c.P1).Min(c.P2.Min(c.P3)),
		Max: c.P0.Max(c.P1).Max(c.P2.Max(c.P3)),
	}
}

// Rev returns the curve with reversed orientation.
func (c Cubic) Rev() Cubic {
	return Cb(c.P3, c.P2, c.P1, c.P0)
}

// Transform is a 2x3 affine matrix stored as three column vectors:
// two columns for the linear part and one for the translation.
//
//	x' = Cols[0].X*x + Cols[1].X*y + Cols[2].X
//	y' = Cols[0].Y*x + Cols[1].Y*y + Cols[2].Y
type Transform struct {
	Cols [3]Point
}

// Identity returns the identity transform.
func Identity() Transform {
	return Scale(1, 1)
}

// Translate creates a translation transform.
func Translate(x, y float32) Transform {
	t := Identity()
	t.Cols[2] = Point{X: x, Y: y}
	return t
}

// Scale creates a scaling transform.
func Scale(x, y float32) Transform {
	return Transform{Cols: [3]Point{
		{X: x, Y: 0},
		{X: 0, Y: y},
		{X: 0, Y: 0},
	}}
}

// Rotate creates a rotation transform (angle in radians).
func Rotate(angle float32) Transform {
	sin, cos := math.Sincos(float64(angle))
	s, c := float32(sin), float32(cos)
	return Transform{Cols: [3]Point{
		{X: c, Y: s},
		{X: -s, Y: c},
		{X: 0, Y: 0},
	}}
}

// Mul composes two transforms: (t.Mul(other)).Apply(p) == t.Apply(other.Apply(p)).
func (t Transform) Mul(other Transform) Transform {
	r0 := Point{X: t.Cols[0].X, Y: t.Cols[1].X}
	r1 := Point{X: t.Cols[0].Y, Y: t.Cols[1].Y}
	return Transform{Cols: [3]Point{
		{X: r0.Dot(other.Cols[0]), Y: r1.Dot(other.Cols[0])},
		{X: r0.Dot(other.Cols[1]), Y: r1.Dot(other.Cols[1])},
		{X: r0.Dot(other.Cols[2]) + t.Cols[2].X, Y: r1.Dot(other.Cols[2]) + t.Cols[2].Y},
	}}
}

// Apply transforms a point.
func (t Transform) Apply(p Point) Point {
	return t.Cols[0].Scale(p.X).Add(t.Cols[1].Scale(p.Y)).Add(t.Cols[2])
}

// ApplyVec transforms a direction vector (no translation).
func (t Transform) ApplyVec(v Point) Point {
	return t.Cols[0].Scale(v.X).Add(t.Cols[1].Scale(v.Y))
}

// ApplyRect returns the bounding box of the transformed rect corners.
func (t Transform) ApplyRect(r Rect) Rect {
	p0 := t.Apply(Point{X: r.Min.X, Y: r.Min.Y})
	p1 := t.Apply(Point{X: r.Min.X, Y: r.Max.Y})
	p2 := t.Apply(Point{X: r.Max.X, Y: r.Min.Y})
	p3 := t.Apply(Point{X: r.Max.X, Y: r.Max.Y})
	return Rect{
		Min: p0.Min(p1).Min(p2.Min(p3)),
		Max: p0.Max(p1).Max(p2.Max(p3)),
	}
}

// ApplyLine transforms both endpoints.
func (t Transform) ApplyLine(l Line) Line {
	return Ln(t.Apply(l.P0), t.Apply(l.P1))
}

// ApplyQuad transforms all control points.
func (t Transform) ApplyQuad(q Quad) Quad {
	return Qd(t.Apply(q.P0), t.Apply(q.P1), t.Apply(q.P2))
}

// ApplyCubic transforms all control points.
func (t Transform) ApplyCubic(c Cubic) Cubic {
	return Cb(t.Apply(c.P0), t.Apply(c.P1), t.Apply(c.P2), t.Apply(c.P3))
}

// Invert returns the inverse transform. The second result is false when
// the determinant is not above zeroTol.
func (t Transform) Invert(zeroTol float32) (Transform, bool) {
	a, c := t.Cols[0].X, t.Cols[0].Y
	b, d := t.Cols[1].X, t.Cols[1].Y

	det := a*d - b*c
	if det <= zeroTol {
		return Transform{}, false
	}

	imC0 := Point{X: d, Y: -c}.Scale(1 / det)
	imC1 := Point{X: -b, Y: a}.Scale(1 / det)

	// inv * (lin*v + tr) = v  =>  inv translation = -inv_lin * tr
	st := t.Cols[2]
	it := imC0.Scale(st.X).Add(imC1.Scale(st.Y)).Neg()

	return Transform{Cols: [3]Point{imC0, imC1, it}}, true
}
