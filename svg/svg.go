// Package svg builds softvg command buffers from a minimal subset of SVG.
//
// The recognized surface is the one the renderer's inputs actually use:
// the elements <svg>, <defs>, <g>, <path>, <linearGradient>,
// <radialGradient> and <stop>; path data commands M, L, Q, C, Z in
// absolute form; paint values "none", named colors, #rgb/#rrggbb hex,
// and url(#id) references to gradient definitions.
//
// Unknown elements and attributes are silently ignored. A path whose
// data uses unsupported commands (relative forms, arcs, shorthands) is
// discarded with a debug log entry rather than failing the parse.
package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/gogpu/softvg"
)

// Parse reads an SVG document and builds a command buffer from it.
func Parse(r io.Reader) (*softvg.CmdBuf, error) {
	var err error
	cb := softvg.BuildCmdBuf(func(b *softvg.CmdBufBuilder) {
		p := &parser{
			dec:     xml.NewDecoder(r),
			b:       b,
			linears: map[string]softvg.LinearGradientID{},
			radials: map[string]softvg.RadialGradientID{},
		}
		err = p.run()
	})
	if err != nil {
		return nil, err
	}
	return cb, nil
}

// ParseString is Parse over an in-memory document.
func ParseString(s string) (*softvg.CmdBuf, error) {
	return Parse(strings.NewReader(s))
}

type parser struct {
	dec     *xml.Decoder
	b       *softvg.CmdBufBuilder
	linears map[string]softvg.LinearGradientID
	radials map[string]softvg.RadialGradientID
}

func (p *parser) run() error {
	// Find the root <svg>.
	for {
		tok, err := p.dec.Token()
		if err != nil {
			if err == io.EOF {
				return fmt.Errorf("svg: missing <svg> root element")
			}
			return fmt.Errorf("svg: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			if start.Name.Local != "svg" {
				return fmt.Errorf("svg: unexpected root element %q", start.Name.Local)
			}
			break
		}
	}
	return p.walkChildren(p.element)
}

// walkChildren dispatches every direct child start element to handle
// until the enclosing element ends.
func (p *parser) walkChildren(handle func(xml.StartElement) error) error {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("svg: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := handle(t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (p *parser) element(start xml.StartElement) error {
	switch start.Name.Local {
	case "defs", "g":
		return p.walkChildren(p.element)

	case "path":
		return p.path(start)

	case "linearGradient":
		return p.linearGradient(start)

	case "radialGradient":
		return p.radialGradient(start)

	default:
		softvg.Logger().Debug("svg: skipping element", "element", start.Name.Local)
		return p.dec.Skip()
	}
}

func (p *parser) path(start xml.StartElement) error {
	var (
		data          string
		fill          = "black" // SVG default paint
		stroke        = "none"
		fillOpacity   = float32(1)
		strokeOpacity = float32(1)
		strokeWidth   = float32(1)
	)

	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "d":
			data = attr.Value
		case "fill":
			fill = attr.Value
		case "stroke":
			stroke = attr.Value
		case "fill-opacity":
			fillOpacity = parseNumber(attr.Value, 1)
		case "stroke-opacity":
			strokeOpacity = parseNumber(attr.Value, 1)
		case "stroke-width":
			strokeWidth = parseNumber(attr.Value, 1)
		}
	}

	if err := p.dec.Skip(); err != nil {
		return fmt.Errorf("svg: %w", err)
	}

	segs, ok := parsePathData(data)
	if !ok {
		softvg.Logger().Debug("svg: discarding path with unsupported data", "d", data)
		return nil
	}
	if len(segs) == 0 {
		return nil
	}

	path := p.b.BuildPath(func(pb *softvg.PathBuilder) {
		for _, s := range segs {
			switch s.op {
			case 'M':
				pb.MoveTo(s.p[0])
			case 'L':
				pb.LineTo(s.p[0])
			case 'Q':
				pb.QuadTo(s.p[0], s.p[1])
			case 'C':
				pb.CubicTo(s.p[0], s.p[1], s.p[2])
			case 'Z':
				pb.ClosePath()
			}
		}
	})

	p.pushPaint(path, fill, fillOpacity, false, 0)
	p.pushPaint(path, stroke, strokeOpacity, true, strokeWidth)
	return nil
}

// pushPaint emits the fill or stroke command for one resolved paint.
func (p *parser) pushPaint(path *softvg.Path, paint string, opacity float32, isStroke bool, width float32) {
	paint = strings.TrimSpace(paint)
	if paint == "" || paint == "none" {
		return
	}

	if id, ok := strings.CutPrefix(paint, "url(#"); ok {
		id = strings.TrimSuffix(id, ")")
		if isStroke {
			softvg.Logger().Warn("svg: gradient strokes are not supported", "ref", id)
			return
		}
		if gid, ok := p.linears[id]; ok {
			p.b.Push(softvg.FillPathLinearGradient{Path: path, Gradient: gid, Opacity: opacity})
			return
		}
		if gid, ok := p.radials[id]; ok {
			p.b.Push(softvg.FillPathRadialGradient{Path: path, Gradient: gid, Opacity: opacity})
			return
		}
		softvg.Logger().Warn("svg: unresolved paint reference", "ref", id)
		return
	}

	color, ok := parseColor(paint, opacity)
	if !ok {
		softvg.Logger().Warn("svg: unsupported paint value", "paint", paint)
		return
	}
	if isStroke {
		p.b.Push(softvg.StrokePathSolid{Path: path, Color: color, Width: width})
	} else {
		p.b.Push(softvg.FillPathSolid{Path: path, Color: color})
	}
}

func (p *parser) linearGradient(start xml.StartElement) error {
	g := softvg.LinearGradient{
		P1:  softvg.Pt(1, 0), // SVG default axis: (0,0) -> (100%, 0)
		Tfx: softvg.Identity(),
	}
	var id string

	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "id":
			id = attr.Value
		case "x1":
			g.P0.X = parseNumber(attr.Value, 0)
		case "y1":
			g.P0.Y = parseNumber(attr.Value, 0)
		case "x2":
			g.P1.X = parseNumber(attr.Value, 1)
		case "y2":
			g.P1.Y = parseNumber(attr.Value, 0)
		case "spreadMethod":
			g.Spread = parseSpread(attr.Value)
		case "gradientUnits":
			g.Units = parseUnits(attr.Value)
		case "gradientTransform":
			g.Tfx = parseTransform(attr.Value)
		}
	}

	stops, err := p.stops()
	if err != nil {
		return err
	}
	g.Stops = stops

	if id != "" {
		p.linears[id] = p.b.PushLinearGradient(g)
	}
	return nil
}

func (p *parser) radialGradient(start xml.StartElement) error {
	g := softvg.RadialGradient{
		Cp:  softvg.Pt(0.5, 0.5),
		Cr:  0.5,
		Tfx: softvg.Identity(),
	}
	var id string
	focusSet := false

	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "id":
			id = attr.Value
		case "cx":
			g.Cp.X = parseNumber(attr.Value, 0.5)
		case "cy":
			g.Cp.Y = parseNumber(attr.Value, 0.5)
		case "r":
			g.Cr = parseNumber(attr.Value, 0.5)
		case "fx":
			g.Fp.X = parseNumber(attr.Value, 0)
			focusSet = true
		case "fy":
			g.Fp.Y = parseNumber(attr.Value, 0)
			focusSet = true
		case "fr":
			g.Fr = parseNumber(attr.Value, 0)
		case "spreadMethod":
			g.Spread = parseSpread(attr.Value)
		case "gradientUnits":
			g.Units = parseUnits(attr.Value)
		case "gradientTransform":
			g.Tfx = parseTransform(attr.Value)
		}
	}
	if !focusSet {
		g.Fp = g.Cp
	}

	stops, err := p.stops()
	if err != nil {
		return err
	}
	g.Stops = stops

	if id != "" {
		p.radials[id] = p.b.PushRadialGradient(g)
	}
	return nil
}

func (p *parser) stops() ([]softvg.GradientStop, error) {
	var stops []softvg.GradientStop
	err := p.walkChildren(func(start xml.StartElement) error {
		if start.Name.Local != "stop" {
			return p.dec.Skip()
		}

		offset := float32(0)
		stopColor := "black"
		opacity := float32(1)
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "offset":
				offset = parseOffset(attr.Value)
			case "stop-color":
				stopColor = attr.Value
			case "stop-opacity":
				opacity = parseNumber(attr.Value, 1)
			}
		}

		if color, ok := parseColor(stopColor, opacity); ok {
			stops = append(stops, softvg.GradientStop{Offset: offset, Color: color})
		}
		return p.dec.Skip()
	})
	return stops, err
}

// pathSeg is one parsed path data command with its absolute points.
type pathSeg struct {
	op byte
	p  [3]softvg.Point
}

// parsePathData parses absolute M, L, Q, C and Z commands. ok is false
// when the data uses anything else (relative commands, arcs,
// shorthands) or is malformed; such paths are discarded.
func parsePathData(data string) ([]pathSeg, bool) {
	var segs []pathSeg
	t := tokenizer{s: data}

	op := byte(0)
	for {
		t.skipSeparators()
		if t.done() {
			return segs, true
		}

		hadLetter := false
		if c := t.peek(); c >= 'A' && c <= 'z' && !isNumberStart(c) {
			op = c
			t.advance()
			hadLetter = true
		}
		// A repeated coordinate pair after M behaves like L.
		if !hadLetter && op == 'M' {
			op = 'L'
		}

		switch op {
		case 'M', 'L':
			p0, ok := t.point()
			if !ok {
				return nil, false
			}
			segs = append(segs, pathSeg{op: op, p: [3]softvg.Point{p0}})

		case 'Q':
			p0, ok0 := t.point()
			p1, ok1 := t.point()
			if !ok0 || !ok1 {
				return nil, false
			}
			segs = append(segs, pathSeg{op: op, p: [3]softvg.Point{p0, p1}})

		case 'C':
			p0, ok0 := t.point()
			p1, ok1 := t.point()
			p2, ok2 := t.point()
			if !ok0 || !ok1 || !ok2 {
				return nil, false
			}
			segs = append(segs, pathSeg{op: op, p: [3]softvg.Point{p0, p1, p2}})

		case 'Z':
			// Z consumes no numbers; anything following must be a
			// command letter.
			if !hadLetter {
				return nil, false
			}
			segs = append(segs, pathSeg{op: 'Z'})

		default:
			return nil, false
		}
	}
}

type tokenizer struct {
	s string
	i int
}

func (t *tokenizer) done() bool {
	return t.i >= len(t.s)
}

func (t *tokenizer) peek() byte {
	return t.s[t.i]
}

func (t *tokenizer) advance() {
	t.i++
}

func (t *tokenizer) skipSeparators() {
	for !t.done() {
		switch t.s[t.i] {
		case ' ', '\t', '\n', '\r', ',':
			t.i++
		default:
			return
		}
	}
}

func (t *tokenizer) peekIsNumber() bool {
	return !t.done() && isNumberStart(t.s[t.i])
}

func isNumberStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '-' || c == '+' || c == '.'
}

func (t *tokenizer) number() (float32, bool) {
	t.skipSeparators()
	start := t.i
	if !t.done() && (t.s[t.i] == '-' || t.s[t.i] == '+') {
		t.i++
	}
	dot := false
	for !t.done() {
		c := t.s[t.i]
		if c >= '0' && c <= '9' {
			t.i++
		} else if c == '.' && !dot {
			dot = true
			t.i++
		} else if (c == 'e' || c == 'E') && t.i > start {
			t.i++
			if !t.done() && (t.s[t.i] == '-' || t.s[t.i] == '+') {
				t.i++
			}
		} else {
			break
		}
	}
	if t.i == start {
		return 0, false
	}
	v, err := strconv.ParseFloat(t.s[start:t.i], 32)
	if err != nil {
		return 0, false
	}
	return float32(v), true
}

func (t *tokenizer) point() (softvg.Point, bool) {
	x, ok0 := t.number()
	y, ok1 := t.number()
	return softvg.Pt(x, y), ok0 && ok1
}

func parseNumber(s string, def float32) float32 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return def
	}
	return float32(v)
}

func parseOffset(s string) float32 {
	s = strings.TrimSpace(s)
	if v, ok := strings.CutSuffix(s, "%"); ok {
		return parseNumber(v, 0) / 100
	}
	return parseNumber(s, 0)
}

func parseSpread(s string) softvg.SpreadMethod {
	switch s {
	case "reflect":
		return softvg.SpreadReflect
	case "repeat":
		return softvg.SpreadRepeat
	default:
		return softvg.SpreadPad
	}
}

func parseUnits(s string) softvg.GradientUnits {
	if s == "objectBoundingBox" {
		return softvg.UnitsRelative
	}
	return softvg.UnitsAbsolute
}

// parseTransform parses matrix/translate/scale transform lists.
// Anything else yields the identity.
func parseTransform(s string) softvg.Transform {
	tfx := softvg.Identity()
	t := tokenizer{s: s}

	for {
		t.skipSeparators()
		if t.done() {
			return tfx
		}

		start := t.i
		for !t.done() && t.peek() != '(' {
			t.advance()
		}
		if t.done() {
			return tfx
		}
		name := strings.TrimSpace(t.s[start:t.i])
		t.advance() // '('

		var args []float32
		for {
			t.skipSeparators()
			if t.done() {
				return tfx
			}
			if t.peek() == ')' {
				t.advance()
				break
			}
			v, ok := t.number()
			if !ok {
				return tfx
			}
			args = append(args, v)
		}

		switch {
		case name == "matrix" && len(args) == 6:
			m := softvg.Transform{Cols: [3]softvg.Point{
				{X: args[0], Y: args[1]},
				{X: args[2], Y: args[3]},
				{X: args[4], Y: args[5]},
			}}
			tfx = tfx.Mul(m)
		case name == "translate" && len(args) >= 1:
			y := float32(0)
			if len(args) > 1 {
				y = args[1]
			}
			tfx = tfx.Mul(softvg.Translate(args[0], y))
		case name == "scale" && len(args) >= 1:
			y := args[0]
			if len(args) > 1 {
				y = args[1]
			}
			tfx = tfx.Mul(softvg.Scale(args[0], y))
		default:
			softvg.Logger().Debug("svg: ignoring transform", "transform", name)
		}
	}
}

// parseColor resolves "none", named colors and hex colors to a packed
// ARGB value with the given opacity folded into the alpha channel.
// ok is false for "none" and unrecognized values.
func parseColor(s string, opacity float32) (uint32, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return 0, false
	}

	a := uint8(clamp01(opacity)*255 + 0.5)

	if rest, ok := strings.CutPrefix(s, "#"); ok {
		var r, g, b uint8
		switch len(rest) {
		case 3:
			r = hexNibble(rest[0]) * 17
			g = hexNibble(rest[1]) * 17
			b = hexNibble(rest[2]) * 17
		case 6:
			r = hexNibble(rest[0])<<4 | hexNibble(rest[1])
			g = hexNibble(rest[2])<<4 | hexNibble(rest[3])
			b = hexNibble(rest[4])<<4 | hexNibble(rest[5])
		default:
			return 0, false
		}
		return softvg.ARGB(a, r, g, b), true
	}

	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return softvg.ARGB(a, c.R, c.G, c.B), true
	}
	return 0, false
}

func hexNibble(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
