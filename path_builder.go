package softvg

// PathBuilder incrementally constructs a Path.
//
// MoveTo starts a new subpath, implicitly ending any open one. Curve
// operations extend the current subpath and panic when no subpath is
// open; that is a programmer error, not a recoverable condition.
// ClosePath emits a closing line when the current point differs from
// the subpath's begin point, then marks the subpath closed.
type PathBuilder struct {
	verbs  []Verb
	points []Point
	aabb   Rect

	inPath     bool
	beginPoint Point
	beginVerb  int
}

// NewPathBuilder creates an empty path builder.
func NewPathBuilder() *PathBuilder {
	return &PathBuilder{
		aabb:      RectEmpty(),
		beginVerb: -1,
	}
}

// InPath reports whether a subpath is currently open.
func (b *PathBuilder) InPath() bool {
	return b.inPath
}

// LastPoint returns the current point. Panics if no subpath is open.
func (b *PathBuilder) LastPoint() Point {
	if !b.inPath {
		panic("softvg: PathBuilder.LastPoint outside a subpath")
	}
	return b.points[len(b.points)-1]
}

// MoveTo starts a new open subpath at p, ending any open subpath first.
func (b *PathBuilder) MoveTo(p Point) {
	if b.inPath {
		b.endPath()
	}
	b.verbs = append(b.verbs, VerbBeginOpen)
	b.points = append(b.points, p)
	b.aabb.Include(p)
	b.inPath = true
	b.beginPoint = p
	b.beginVerb = len(b.verbs) - 1
}

// LineTo extends the current subpath with a line segment.
func (b *PathBuilder) LineTo(p1 Point) {
	b.requireSubpath()
	b.verbs = append(b.verbs, VerbLine)
	b.points = append(b.points, p1)
	b.aabb.Include(p1)
}

// QuadTo extends the current subpath with a quadratic Bezier curve.
func (b *PathBuilder) QuadTo(p1, p2 Point) {
	b.requireSubpath()
	b.verbs = append(b.verbs, VerbQuad)
	b.points = append(b.points, p1, p2)
	b.aabb.Include(p1)
	b.aabb.Include(p2)
}

// CubicTo extends the current subpath with a cubic Bezier curve.
func (b *PathBuilder) CubicTo(p1, p2, p3 Point) {
	b.requireSubpath()
	b.verbs = append(b.verbs, VerbCubic)
	b.points = append(b.points, p1, p2, p3)
	b.aabb.Include(p1)
	b.aabb.Include(p2)
	b.aabb.Include(p3)
}

// ClosePath closes the current subpath exactly: if the current point
// differs from the begin point, a closing line is emitted first. The
// subpath's begin verb is rewritten to BeginClosed.
func (b *PathBuilder) ClosePath() {
	b.requireSubpath()
	if b.points[len(b.points)-1] != b.beginPoint {
		b.LineTo(b.beginPoint)
	}
	b.verbs[b.beginVerb] = VerbBeginClosed
	b.endPath()
}

// Clear resets the builder to empty, keeping allocated storage.
func (b *PathBuilder) Clear() {
	b.verbs = b.verbs[:0]
	b.points = b.points[:0]
	b.aabb = RectEmpty()
	b.inPath = false
	b.beginPoint = Point{}
	b.beginVerb = -1
}

// Build finalizes any open subpath and returns the built path.
// The builder keeps its contents; call Clear to reuse it.
func (b *PathBuilder) Build() *Path {
	if b.inPath {
		b.endPath()
	}

	aabb := b.aabb
	if len(b.verbs) == 0 {
		aabb = Rect{}
	}

	verbs := make([]Verb, len(b.verbs))
	copy(verbs, b.verbs)
	points := make([]Point, len(b.points))
	copy(points, b.points)

	return &Path{verbs: verbs, points: points, aabb: aabb}
}

func (b *PathBuilder) endPath() {
	b.verbs = append(b.verbs, VerbEnd)
	b.inPath = false
	b.beginVerb = -1
}

func (b *PathBuilder) requireSubpath() {
	if !b.inPath {
		panic("softvg: path operation without an open subpath (missing MoveTo)")
	}
}
