package svg

import (
	"testing"

	"github.com/gogpu/softvg"
)

func TestParseSolidFill(t *testing.T) {
	cb, err := ParseString(`<svg>
		<path d="M 10 10 L 90 10 L 50 80 Z" fill="#ff0000"/>
		<path d="M 0 0 L 5 0 L 5 5 Z" fill="lime" fill-opacity="0.5"/>
	</svg>`)
	if err != nil {
		t.Fatal(err)
	}

	if cb.NumCmds() != 2 {
		t.Fatalf("NumCmds = %d, want 2", cb.NumCmds())
	}

	c0, ok := cb.Cmd(0).(softvg.FillPathSolid)
	if !ok {
		t.Fatalf("cmd 0 = %#v", cb.Cmd(0))
	}
	if c0.Color != 0xffff0000 {
		t.Errorf("color = %08x, want ffff0000", c0.Color)
	}
	verbs := c0.Path.Verbs()
	if verbs[0] != softvg.VerbBeginClosed {
		t.Errorf("begin verb = %v, want BeginClosed", verbs[0])
	}
	if c0.Path.Points()[0] != softvg.Pt(10, 10) {
		t.Errorf("start = %v", c0.Path.Points()[0])
	}

	c1 := cb.Cmd(1).(softvg.FillPathSolid)
	// lime = #00ff00, 50% opacity in the alpha byte.
	if c1.Color != 0x8000ff00 {
		t.Errorf("color = %08x, want 8000ff00", c1.Color)
	}
}

func TestParseDefaultFillIsBlack(t *testing.T) {
	cb, err := ParseString(`<svg><path d="M 0 0 L 1 0 L 1 1 Z"/></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	if cb.NumCmds() != 1 {
		t.Fatalf("NumCmds = %d, want 1", cb.NumCmds())
	}
	if c := cb.Cmd(0).(softvg.FillPathSolid); c.Color != 0xff000000 {
		t.Errorf("color = %08x, want ff000000", c.Color)
	}
}

func TestParseFillNone(t *testing.T) {
	cb, err := ParseString(`<svg><path d="M 0 0 L 1 0 L 1 1 Z" fill="none"/></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	if cb.NumCmds() != 0 {
		t.Errorf("NumCmds = %d, want 0", cb.NumCmds())
	}
}

func TestParseStroke(t *testing.T) {
	cb, err := ParseString(`<svg>
		<path d="M 0 0 L 10 10" fill="none" stroke="navy" stroke-width="2.5"/>
	</svg>`)
	if err != nil {
		t.Fatal(err)
	}
	if cb.NumCmds() != 1 {
		t.Fatalf("NumCmds = %d, want 1", cb.NumCmds())
	}
	s, ok := cb.Cmd(0).(softvg.StrokePathSolid)
	if !ok {
		t.Fatalf("cmd = %#v", cb.Cmd(0))
	}
	if s.Width != 2.5 {
		t.Errorf("width = %f, want 2.5", s.Width)
	}
	// navy = #000080
	if s.Color != 0xff000080 {
		t.Errorf("color = %08x, want ff000080", s.Color)
	}
}

func TestParseLinearGradientRef(t *testing.T) {
	cb, err := ParseString(`<svg>
		<defs>
			<linearGradient id="grad" x1="0" y1="0" x2="100" y2="0" spreadMethod="reflect">
				<stop offset="0" stop-color="#ff0000"/>
				<stop offset="50%" stop-color="green" stop-opacity="0.5"/>
				<stop offset="1" stop-color="#0000ff"/>
			</linearGradient>
		</defs>
		<path d="M 0 0 L 100 0 L 100 100 L 0 100 Z" fill="url(#grad)" fill-opacity="0.75"/>
	</svg>`)
	if err != nil {
		t.Fatal(err)
	}

	if cb.NumCmds() != 1 {
		t.Fatalf("NumCmds = %d, want 1", cb.NumCmds())
	}
	c, ok := cb.Cmd(0).(softvg.FillPathLinearGradient)
	if !ok {
		t.Fatalf("cmd = %#v", cb.Cmd(0))
	}
	if c.Opacity != 0.75 {
		t.Errorf("opacity = %f, want 0.75", c.Opacity)
	}

	g := cb.LinearGradient(c.Gradient)
	if g.P0 != softvg.Pt(0, 0) || g.P1 != softvg.Pt(100, 0) {
		t.Errorf("axis = %v -> %v", g.P0, g.P1)
	}
	if g.Spread != softvg.SpreadReflect {
		t.Errorf("spread = %v, want reflect", g.Spread)
	}
	if len(g.Stops) != 3 {
		t.Fatalf("stops = %d, want 3", len(g.Stops))
	}
	if g.Stops[1].Offset != 0.5 {
		t.Errorf("stop 1 offset = %f, want 0.5", g.Stops[1].Offset)
	}
	// green = #008000 with 50% stop-opacity.
	if g.Stops[1].Color != 0x80008000 {
		t.Errorf("stop 1 color = %08x, want 80008000", g.Stops[1].Color)
	}
}

func TestParseRadialGradientRef(t *testing.T) {
	cb, err := ParseString(`<svg>
		<defs>
			<radialGradient id="r" cx="50" cy="60" r="40" fx="45" fy="55" gradientUnits="userSpaceOnUse">
				<stop offset="0" stop-color="white"/>
				<stop offset="1" stop-color="black"/>
			</radialGradient>
		</defs>
		<path d="M 0 0 L 100 0 L 100 100 Z" fill="url(#r)"/>
	</svg>`)
	if err != nil {
		t.Fatal(err)
	}

	c, ok := cb.Cmd(0).(softvg.FillPathRadialGradient)
	if !ok {
		t.Fatalf("cmd = %#v", cb.Cmd(0))
	}
	g := cb.RadialGradient(c.Gradient)
	if g.Cp != softvg.Pt(50, 60) || g.Cr != 40 {
		t.Errorf("center = %v r=%f", g.Cp, g.Cr)
	}
	if g.Fp != softvg.Pt(45, 55) {
		t.Errorf("focus = %v, want (45,55)", g.Fp)
	}
	if g.Units != softvg.UnitsAbsolute {
		t.Errorf("units = %v, want absolute", g.Units)
	}
}

func TestParseObjectBoundingBoxUnits(t *testing.T) {
	cb, err := ParseString(`<svg>
		<linearGradient id="g" gradientUnits="objectBoundingBox">
			<stop offset="0" stop-color="red"/>
			<stop offset="1" stop-color="blue"/>
		</linearGradient>
		<path d="M 0 0 L 1 0 L 1 1 Z" fill="url(#g)"/>
	</svg>`)
	if err != nil {
		t.Fatal(err)
	}
	c := cb.Cmd(0).(softvg.FillPathLinearGradient)
	if g := cb.LinearGradient(c.Gradient); g.Units != softvg.UnitsRelative {
		t.Errorf("units = %v, want relative", g.Units)
	}
}

func TestParseGradientTransform(t *testing.T) {
	cb, err := ParseString(`<svg>
		<linearGradient id="g" gradientTransform="translate(10 20) scale(2)">
			<stop offset="0" stop-color="red"/>
			<stop offset="1" stop-color="blue"/>
		</linearGradient>
		<path d="M 0 0 L 1 0 L 1 1 Z" fill="url(#g)"/>
	</svg>`)
	if err != nil {
		t.Fatal(err)
	}
	c := cb.Cmd(0).(softvg.FillPathLinearGradient)
	g := cb.LinearGradient(c.Gradient)
	got := g.Tfx.Apply(softvg.Pt(1, 1))
	if got != softvg.Pt(12, 22) {
		t.Errorf("transform applies to (12,22), got %v", got)
	}
}

func TestParseDiscardsRelativeCommands(t *testing.T) {
	cb, err := ParseString(`<svg>
		<path d="m 0 0 l 10 10" fill="red"/>
		<path d="M 0 0 A 5 5 0 0 1 10 10" fill="red"/>
		<path d="M 0 0 L 10 0 L 10 10 Z" fill="red"/>
	</svg>`)
	if err != nil {
		t.Fatal(err)
	}
	if cb.NumCmds() != 1 {
		t.Errorf("NumCmds = %d, want 1 (unsupported paths discarded)", cb.NumCmds())
	}
}

func TestParseImplicitLineAfterMove(t *testing.T) {
	cb, err := ParseString(`<svg><path d="M 0 0 10 0 10 10 Z" fill="red"/></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	if cb.NumCmds() != 1 {
		t.Fatalf("NumCmds = %d, want 1", cb.NumCmds())
	}
	p := cb.Cmd(0).(softvg.FillPathSolid).Path
	want := []softvg.Verb{softvg.VerbBeginClosed, softvg.VerbLine, softvg.VerbLine, softvg.VerbLine, softvg.VerbEnd}
	got := p.Verbs()
	if len(got) != len(want) {
		t.Fatalf("verbs = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("verb %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseUnknownElementsIgnored(t *testing.T) {
	cb, err := ParseString(`<svg>
		<title>ignored</title>
		<g>
			<circle cx="5" cy="5" r="2"/>
			<path d="M 0 0 L 1 0 L 1 1 Z" fill="red" unknown-attr="x"/>
		</g>
	</svg>`)
	if err != nil {
		t.Fatal(err)
	}
	if cb.NumCmds() != 1 {
		t.Errorf("NumCmds = %d, want 1", cb.NumCmds())
	}
}

func TestParseUnresolvedRef(t *testing.T) {
	cb, err := ParseString(`<svg><path d="M 0 0 L 1 0 L 1 1 Z" fill="url(#missing)"/></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	if cb.NumCmds() != 0 {
		t.Errorf("NumCmds = %d, want 0", cb.NumCmds())
	}
}

func TestParseMissingRoot(t *testing.T) {
	if _, err := ParseString(`<notsvg/>`); err == nil {
		t.Error("expected error for non-svg root")
	}
	if _, err := ParseString(``); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestParseRendersEndToEnd(t *testing.T) {
	cb, err := ParseString(`<svg>
		<path d="M 0 0 L 16 0 L 16 16 L 0 16 Z" fill="#00ff00"/>
	</svg>`)
	if err != nil {
		t.Fatal(err)
	}
	img := softvg.NewImage(16, 16)
	softvg.Render(cb, &softvg.RenderParams{Clear: 0xffffffff, Tfx: softvg.Identity()}, img)
	if v := img.Row(8)[8]; v != 0xff00ff00 {
		t.Errorf("pixel = %08x, want ff00ff00", v)
	}
}
