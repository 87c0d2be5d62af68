package softvg

// Stroke expansion: a stroked path becomes a fill path built from two
// offset contours. The left contour (offset +width/2) is walked
// forward, the right contour (offset -width/2) backward with point
// order swapped inside each curve. Joins are bevels: a straight line
// between successive offset endpoints wherever they differ. Caps are
// butt: the natural closing line between the two walks' endpoints.

const (
	strokeToleranceSq = 0.05 * 0.05
	strokeRecursion   = 16
)

// StrokePath expands a stroke of the given width around path into a
// new closed path whose filled area equals the stroked region.
func StrokePath(path *Path, width float32) *Path {
	s := stroker{
		left:   width / 2,
		right:  -width / 2,
		tolSq:  strokeToleranceSq,
		maxRec: strokeRecursion,
		pb:     NewPathBuilder(),
	}

	closed := false
	for ev := range path.Events() {
		switch ev.Kind {
		case EventBegin:
			closed = ev.Closed
		case EventLine:
			s.line(ev.Line)
		case EventQuad:
			s.quad(ev.Quad)
		case EventCubic:
			s.cubic(ev.Cubic)
		case EventEnd:
			s.buildStroke(closed)
		}
	}

	return s.pb.Build()
}

type stroker struct {
	left   float32 // offset distance of the left contour
	right  float32 // offset distance of the right contour (negative)
	tolSq  float32
	maxRec int

	pb       *PathBuilder
	pbl, pbr rawContour
}

// rawContour collects one side's offset curves as loose verbs and
// points; curves are stored with their start points so the contour can
// be emitted in either direction.
type rawContour struct {
	verbs  []Verb
	points []Point
}

func (c *rawContour) pushLine(l Line) {
	c.verbs = append(c.verbs, VerbLine)
	c.points = append(c.points, l.P0, l.P1)
}

func (c *rawContour) pushQuad(q Quad) {
	c.verbs = append(c.verbs, VerbQuad)
	c.points = append(c.points, q.P0, q.P1, q.P2)
}

func (c *rawContour) clear() {
	c.verbs = c.verbs[:0]
	c.points = c.points[:0]
}

func (s *stroker) pushLine(l Line, normal Point) {
	s.pbl.pushLine(l.Offset(normal, s.left))
	s.pbr.pushLine(l.Offset(normal, s.right))
}

func (s *stroker) line(l Line) {
	if normal, ok := l.Normal(ZeroToleranceSq); ok {
		s.pushLine(l, normal)
	}
}

func (s *stroker) quad(q Quad) {
	s.quadEx(q, s.tolSq, s.maxRec)
}

func (s *stroker) quadEx(q Quad, tolSq float32, maxRec int) {
	if q.P2.Sub(q.P0).LengthSq() <= ZeroToleranceSq {
		// Near-zero chord: treat as two (possibly degenerate) segments.
		s.line(Ln(q.P0, q.P1))
		s.line(Ln(q.P1, q.P2))
		return
	}

	n0, n1, ok0, ok1 := q.Normals(ZeroToleranceSq)
	switch {
	case ok0 && ok1:
		q.Offset(n0, n1, s.left, tolSq, maxRec, s.pbl.pushQuad)
		q.Offset(n0, n1, s.right, tolSq, maxRec, s.pbr.pushQuad)

	case ok0:
		s.pushLine(Ln(q.P0, q.P2), n0)

	case ok1:
		s.pushLine(Ln(q.P0, q.P2), n1)

		// Both normals undefined: both legs are shorter than
		// ZeroTolerance and the curve contributes nothing.
	}
}

func (s *stroker) cubic(c Cubic) {
	tolSq := s.tolSq / 4
	maxRec := s.maxRec / 2
	c.Reduce(tolSq, maxRec, func(q Quad, recLeft int) {
		s.quadEx(q, tolSq, maxRec+recLeft)
	})
}

// buildStroke emits the buffered contours as one closed outline: the
// left contour forward, a closing join for closed subpaths, then the
// right contour in reverse.
func (s *stroker) buildStroke(closed bool) {
	var prev Point
	hasPrev := false

	emit := func(verbs []Verb, points []Point, reverse bool) {
		walk := func(verb Verb, pts []Point) {
			p0 := pts[0]
			if hasPrev {
				if p0 != prev {
					// bevel join
					s.pb.LineTo(p0)
				}
			} else {
				s.pb.MoveTo(p0)
			}
			switch verb {
			case VerbLine:
				s.pb.LineTo(pts[1])
				prev = pts[1]
			case VerbQuad:
				s.pb.QuadTo(pts[1], pts[2])
				prev = pts[2]
			}
			hasPrev = true
		}

		if !reverse {
			p := 0
			for _, verb := range verbs {
				n := verb.PointCount() + 1
				walk(verb, points[p:p+n])
				p += n
			}
			return
		}

		p := len(points)
		for i := len(verbs) - 1; i >= 0; i-- {
			verb := verbs[i]
			n := verb.PointCount() + 1
			p -= n
			switch verb {
			case VerbLine:
				walk(verb, []Point{points[p+1], points[p]})
			case VerbQuad:
				walk(verb, []Point{points[p+2], points[p+1], points[p]})
			}
		}
	}

	emit(s.pbl.verbs, s.pbl.points, false)

	if closed {
		if s.pb.InPath() {
			s.pb.ClosePath()
		}
		hasPrev = false
	}

	emit(s.pbr.verbs, s.pbr.points, true)

	if (len(s.pbl.verbs) > 0 || len(s.pbr.verbs) > 0) && s.pb.InPath() {
		s.pb.ClosePath()
	}

	s.pbl.clear()
	s.pbr.clear()
}
