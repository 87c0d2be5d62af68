package softvg

// GradientStop is a color at a position along a gradient.
// Stops inside a gradient must be in non-decreasing offset order; the
// renderer does not re-sort them.
type GradientStop struct {
	Offset float32 // position in [0, 1]
	Color  uint32  // packed ARGB
}

// SpreadMethod selects gradient behavior outside the [0, 1] parameter
// range. Only Pad is honored by the current fillers; Reflect and Repeat
// are reserved in the data model.
type SpreadMethod uint8

const (
	SpreadPad SpreadMethod = iota
	SpreadReflect
	SpreadRepeat
)

// GradientUnits selects the coordinate space of gradient geometry.
// Only Absolute is honored by the current fillers; Relative
// (objectBoundingBox in SVG terms) is reserved in the data model.
type GradientUnits uint8

const (
	UnitsAbsolute GradientUnits = iota
	UnitsRelative
)

// LinearGradient is a color transition along the axis P0 -> P1.
type LinearGradient struct {
	P0, P1 Point
	Spread SpreadMethod
	Units  GradientUnits
	Tfx    Transform
	Stops  []GradientStop
}

// RadialGradient is a focal-form radial color transition: colors
// radiate from the focal point (Fp, Fr) toward the center circle
// (Cp, Cr).
type RadialGradient struct {
	Cp     Point   // center point
	Cr     float32 // center radius
	Fp     Point   // focal point
	Fr     float32 // focal radius
	Spread SpreadMethod
	Units  GradientUnits
	Tfx    Transform
	Stops  []GradientStop
}

// LinearGradientID indexes a command buffer's linear gradient table.
type LinearGradientID int

// RadialGradientID indexes a command buffer's radial gradient table.
type RadialGradientID int

// Cmd is one drawing command. Commands are composited strictly in push
// order; source-over is not commutative.
type Cmd interface {
	isCmd()
}

// FillPathSolid fills a path with a solid ARGB color.
type FillPathSolid struct {
	Path  *Path
	Color uint32
}

func (FillPathSolid) isCmd() {}

// FillPathLinearGradient fills a path with a linear gradient.
type FillPathLinearGradient struct {
	Path     *Path
	Gradient LinearGradientID
	Opacity  float32
}

func (FillPathLinearGradient) isCmd() {}

// FillPathRadialGradient fills a path with a radial gradient.
type FillPathRadialGradient struct {
	Path     *Path
	Gradient RadialGradientID
	Opacity  float32
}

func (FillPathRadialGradient) isCmd() {}

// StrokePathSolid strokes a path with a solid color and the given
// width. The stroke is expanded lazily at render time.
type StrokePathSolid struct {
	Path  *Path
	Color uint32
	Width float32
}

func (StrokePathSolid) isCmd() {}

// CmdBuf is a frozen, ordered sequence of commands plus the gradient
// tables they reference. Build one with BuildCmdBuf, then render it as
// many times as needed. The buffer owns every path and stop slice its
// commands reference for as long as the buffer lives.
type CmdBuf struct {
	cmds            []Cmd
	linearGradients []LinearGradient
	radialGradients []RadialGradient
}

// NumCmds returns the number of commands.
func (cb *CmdBuf) NumCmds() int {
	return len(cb.cmds)
}

// Cmd returns the i-th command.
func (cb *CmdBuf) Cmd(i int) Cmd {
	return cb.cmds[i]
}

// LinearGradient returns the gradient for an id.
func (cb *CmdBuf) LinearGradient(id LinearGradientID) *LinearGradient {
	return &cb.linearGradients[id]
}

// RadialGradient returns the gradient for an id.
func (cb *CmdBuf) RadialGradient(id RadialGradientID) *RadialGradient {
	return &cb.radialGradients[id]
}

// BuildCmdBuf runs f against a builder and freezes the result.
func BuildCmdBuf(f func(*CmdBufBuilder)) *CmdBuf {
	b := CmdBufBuilder{
		pathBuilder: NewPathBuilder(),
	}
	f(&b)
	return &CmdBuf{
		cmds:            b.cmds,
		linearGradients: b.linearGradients,
		radialGradients: b.radialGradients,
	}
}

// CmdBufBuilder collects paths, gradients and commands during
// BuildCmdBuf. It is only valid inside the build callback.
type CmdBufBuilder struct {
	pathBuilder *PathBuilder

	cmds            []Cmd
	linearGradients []LinearGradient
	radialGradients []RadialGradient
}

// BuildPath runs f against a shared path builder and returns the built
// path. The path is owned by the command buffer.
func (b *CmdBufBuilder) BuildPath(f func(*PathBuilder)) *Path {
	b.pathBuilder.Clear()
	f(b.pathBuilder)
	return b.pathBuilder.Build()
}

// BuildGradientStops collects gradient stops through f and returns the
// frozen slice.
func (b *CmdBufBuilder) BuildGradientStops(f func(add func(offset float32, color uint32))) []GradientStop {
	var stops []GradientStop
	f(func(offset float32, color uint32) {
		stops = append(stops, GradientStop{Offset: offset, Color: color})
	})
	return stops
}

// PushLinearGradient registers a gradient and returns its id.
func (b *CmdBufBuilder) PushLinearGradient(g LinearGradient) LinearGradientID {
	b.linearGradients = append(b.linearGradients, g)
	return LinearGradientID(len(b.linearGradients) - 1)
}

// PushRadialGradient registers a gradient and returns its id.
func (b *CmdBufBuilder) PushRadialGradient(g RadialGradient) RadialGradientID {
	b.radialGradients = append(b.radialGradients, g)
	return RadialGradientID(len(b.radialGradients) - 1)
}

// Push appends a command.
func (b *CmdBufBuilder) Push(cmd Cmd) {
	b.cmds = append(b.cmds, cmd)
}
