package softvg

import "iter"

// Verb directs the interpretation of the points that follow it.
//
// Path syntax:
//
//	Path    ::= SubPath*
//	SubPath ::= (BeginOpen | BeginClosed) Curve* End
//	Curve   ::= Line | Quad | Cubic
//
// Number of points per verb: Begin* 1, Line 1, Quad 2, Cubic 3, End 0.
// The first point of any curve is the last point of the previous verb.
// Closed subpaths have equal start and end points; the builder injects
// a closing line when needed.
type Verb uint8

const (
	VerbBeginOpen Verb = iota
	VerbBeginClosed
	VerbLine
	VerbQuad
	VerbCubic
	VerbEnd
)

// PointCount returns the number of points the verb consumes.
func (v Verb) PointCount() int {
	switch v {
	case VerbBeginOpen, VerbBeginClosed, VerbLine:
		return 1
	case VerbQuad:
		return 2
	case VerbCubic:
		return 3
	default:
		return 0
	}
}

// Path is an immutable sequence of verbs and points with a cached
// bounding box. Paths are safe for concurrent readers and may be shared
// freely between command buffers; nothing mutates a built path.
type Path struct {
	verbs  []Verb
	points []Point
	aabb   Rect
}

// Verbs returns the verb sequence. Callers must not modify it.
func (p *Path) Verbs() []Verb {
	return p.verbs
}

// Points returns the flat point sequence. Callers must not modify it.
func (p *Path) Points() []Point {
	return p.points
}

// AABB returns the cached bounding box covering every point of the path.
func (p *Path) AABB() Rect {
	return p.aabb
}

// IsEmpty reports whether the path has no subpaths.
func (p *Path) IsEmpty() bool {
	return len(p.verbs) == 0
}

// EventKind discriminates path iteration events.
type EventKind uint8

const (
	EventBegin EventKind = iota
	EventLine
	EventQuad
	EventCubic
	EventEnd
)

// Event is one step of path iteration. Begin carries the subpath's
// first point and whether the subpath is closed; curve events carry the
// fully resolved curve including its start point; End carries the
// subpath's last point.
type Event struct {
	Kind   EventKind
	Closed bool  // Begin only
	Point  Point // Begin: first point; End: last point
	Line   Line
	Quad   Quad
	Cubic  Cubic
}

// Events iterates the path as resolved events.
func (p *Path) Events() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		pi := 0
		var p0 Point
		for _, verb := range p.verbs {
			var ev Event
			switch verb {
			case VerbBeginOpen, VerbBeginClosed:
				p0 = p.points[pi]
				pi++
				ev = Event{Kind: EventBegin, Closed: verb == VerbBeginClosed, Point: p0}

			case VerbLine:
				p1 := p.points[pi]
				pi++
				ev = Event{Kind: EventLine, Line: Ln(p0, p1)}
				p0 = p1

			case VerbQuad:
				p1, p2 := p.points[pi], p.points[pi+1]
				pi += 2
				ev = Event{Kind: EventQuad, Quad: Qd(p0, p1, p2)}
				p0 = p2

			case VerbCubic:
				p1, p2, p3 := p.points[pi], p.points[pi+1], p.points[pi+2]
				pi += 3
				ev = Event{Kind: EventCubic, Cubic: Cb(p0, p1, p2, p3)}
				p0 = p3

			case VerbEnd:
				ev = Event{Kind: EventEnd, Point: p0}
			}
			if !yield(ev) {
				return
			}
		}
	}
}
