package softvg

import (
	"math"

	"github.com/gogpu/softvg/internal/wide"
)

// RenderParams configures a render pass.
type RenderParams struct {
	// Clear is the packed ARGB background color the target starts from.
	Clear uint32

	// Tfx is the view transform applied to all path geometry.
	Tfx Transform
}

// invertTolerance is the determinant threshold below which a transform
// counts as degenerate for gradient inversion.
const invertTolerance = 0.00001

// Render executes a command buffer against the target image.
//
// The pass renders into an internal planar premultiplied float buffer
// cleared to params.Clear, composites every command in push order, and
// packs the result into target. Commands are processed sequentially on
// the caller's goroutine; nothing blocks or yields. The target's prior
// pixels are never read.
func Render(cmdBuf *CmdBuf, params *RenderParams, target *Image) {
	tr := tracer()
	tr.Begin("render")
	defer tr.End()

	clear := splatClear(params.Clear)

	var renderImage planarImage
	renderImage.resizeAndClear((target.Width()+3)/4, target.Height(), clear)

	rasterImage := NewAlphaImage(0, 0)
	clip := Rect{Max: Point{X: float32(target.Width()), Y: float32(target.Height())}}

	var stopBuffer []gradientStopF32

	for i := 0; i < cmdBuf.NumCmds(); i++ {
		switch cmd := cmdBuf.Cmd(i).(type) {
		case FillPathSolid:
			mask, _, _, blit, ok := rasterizeMask(cmd.Path, params.Tfx, clip, rasterImage)
			if !ok {
				continue
			}
			fillMaskSolid(mask, blit, argbUnpackPremultiply(cmd.Color), &renderImage)

		case StrokePathSolid:
			tr.Begin("stroke")
			outline := StrokePath(cmd.Path, cmd.Width)
			tr.End()

			mask, _, _, blit, ok := rasterizeMask(outline, params.Tfx, clip, rasterImage)
			if !ok {
				continue
			}
			fillMaskSolid(mask, blit, argbUnpackPremultiply(cmd.Color), &renderImage)

		case FillPathLinearGradient:
			mask, tfx, _, blit, ok := rasterizeMask(cmd.Path, params.Tfx, clip, rasterImage)
			if !ok {
				continue
			}

			g := cmdBuf.LinearGradient(cmd.Gradient)
			stops := g.Stops

			gradTfx := tfx.Mul(g.Tfx)
			p0 := gradTfx.Apply(g.P0)
			p1 := gradTfx.Apply(g.P1)

			if len(stops) == 2 {
				s0, s1 := stops[0], stops[1]
				fillMaskLinearGradient2(
					p0.Lerp(p1, s0.Offset), p0.Lerp(p1, s1.Offset),
					argbUnpack(s0.Color), argbUnpack(s1.Color), cmd.Opacity,
					mask, blit, &renderImage)
			} else if len(stops) > 0 {
				stopBuffer = unpackStops(stopBuffer, stops)
				fillMaskLinearGradientN(p0, p1, stopBuffer, cmd.Opacity, mask, blit, &renderImage)
			}

		case FillPathRadialGradient:
			invTfx, invertible := params.Tfx.Invert(invertTolerance)
			if !invertible {
				continue
			}

			mask, _, origin, blit, ok := rasterizeMask(cmd.Path, params.Tfx, clip, rasterImage)
			if !ok {
				continue
			}

			g := cmdBuf.RadialGradient(cmd.Gradient)
			stops := g.Stops

			invGradTfx, invertible := g.Tfx.Invert(invertTolerance)
			if !invertible {
				// degenerate gradient transform
				continue
			}

			if len(stops) == 2 {
				s0, s1 := stops[0], stops[1]
				fillMaskRadialGradient2(origin, invTfx, invGradTfx, g,
					gradientStopF32{offset: s0.Offset, color: argbUnpack(s0.Color)},
					gradientStopF32{offset: s1.Offset, color: argbUnpack(s1.Color)},
					cmd.Opacity, mask, blit, &renderImage)
			} else if len(stops) > 0 {
				stopBuffer = unpackStops(stopBuffer, stops)
				fillMaskRadialGradientN(origin, invTfx, invGradTfx, g,
					stopBuffer, cmd.Opacity, mask, blit, &renderImage)
			}
		}
	}

	writePlanar(&renderImage, target)
}

// rasterRectFor computes the pixel-rounded, alignment-padded raster
// rect of an AABB inside the clip rect.
//
// clip must be a valid integer rect with clip.Min >= zero; align is the
// horizontal alignment in pixels (the SIMD column width). It returns
// the raster size, the global position of the raster origin, and the
// integer offset from clip to the raster origin.
func rasterRectFor(rect Rect, clip Rect, align int) (rasterSize [2]int, rasterOrigin Point, blitOffset [2]int) {
	rasterRect := rect.ClampTo(clip).RoundOut()

	alignF := float32(align)
	x0 := floor32(rasterRect.Min.X/alignF) * alignF
	x1 := ceil32(rasterRect.Max.X/alignF) * alignF

	rasterSize = [2]int{int(x1 - x0), int(rasterRect.Height())}
	rasterOrigin = Point{X: x0, Y: rasterRect.Min.Y}
	blitOffset = [2]int{int(rasterOrigin.X - clip.Min.X), int(rasterOrigin.Y - clip.Min.Y)}
	return
}

// rasterizeMask fills the path into a freshly sized mask. It returns
// the mask, the raster-local view transform (tfx shifted by the raster
// origin), the raster origin, and the blit offset. ok is false when the
// clipped raster rect is empty.
func rasterizeMask(path *Path, tfx Transform, clip Rect, work *AlphaImage) (
	mask *AlphaImage, localTfx Transform, origin Point, blit [2]int, ok bool) {

	aabb := tfx.ApplyRect(path.AABB())

	size, rasterOrigin, _ := rasterRectFor(aabb, clip, 4)
	if size[0] == 0 || size[1] == 0 {
		return nil, Transform{}, Point{}, [2]int{}, false
	}

	localTfx = tfx
	localTfx.Cols[2] = localTfx.Cols[2].Sub(rasterOrigin)

	// The target's origin is global zero, so the blit offset is the
	// raster origin itself. Its x stays 4-aligned by construction.
	blit = [2]int{int(rasterOrigin.X), int(rasterOrigin.Y)}

	r := NewRasterizer(work, size[0], size[1])
	r.FillPath(path, localTfx)
	return r.Accumulate(), localTfx, rasterOrigin, blit, true
}

func unpackStops(buf []gradientStopF32, stops []GradientStop) []gradientStopF32 {
	buf = buf[:0]
	for _, s := range stops {
		buf = append(buf, gradientStopF32{offset: s.Offset, color: argbUnpack(s.Color)})
	}
	return buf
}

func splatClear(clear uint32) planarPixel {
	c := argbUnpackPremultiply(clear)
	return planarPixel{
		wide.SplatF32(c[0]),
		wide.SplatF32(c[1]),
		wide.SplatF32(c[2]),
		wide.SplatF32(c[3]),
	}
}

// writePlanar packs the planar float buffer into the caller's image,
// truncating the last partial column.
func writePlanar(src *planarImage, dst *Image) {
	for y := 0; y < dst.Height(); y++ {
		row := dst.Row(y)
		for u := 0; u < src.width; u++ {
			packed := abgrPack4(src.pix[y*src.width+u])
			x := u * 4
			for i := 0; i < 4 && x+i < len(row); i++ {
				row[x+i] = packed[i]
			}
		}
	}
}

// RenderTarget is a reusable retained surface for callers that draw
// incrementally instead of replaying command buffers. It owns the
// planar intermediate image and the rasterizer's working image, so
// repeated fills reuse their allocations.
type RenderTarget struct {
	size        [2]int
	image       planarImage
	tfx         Transform
	userClip    Rect
	netClip     Rect // userClip clipped to the image
	rasterCache *AlphaImage
}

// NewRenderTarget creates an empty target; call Resize before drawing.
func NewRenderTarget() *RenderTarget {
	inf := float32(math.Inf(1))
	return &RenderTarget{
		tfx: Identity(),
		// The default user clip is unbounded; the net clip narrows it
		// to the surface on Resize/SetClip.
		userClip:    Rect{Min: Point{X: -inf, Y: -inf}, Max: Point{X: inf, Y: inf}},
		rasterCache: NewAlphaImage(0, 0),
	}
}

// Size returns the current pixel size.
func (rt *RenderTarget) Size() (int, int) {
	return rt.size[0], rt.size[1]
}

// Resize sets the surface size and clears it to the packed ARGB clear
// color. Resizing to the current size is a no-op; use Clear to repaint.
func (rt *RenderTarget) Resize(width, height int, clear uint32) {
	if rt.size == [2]int{width, height} {
		return
	}
	rt.size = [2]int{width, height}
	rt.image.resizeAndClear((width+3)/4, height, splatClear(clear))
	rt.netClip = rt.userClip.ClampTo(rt.imageClip())
}

// Clear repaints the whole surface with the packed ARGB clear color.
func (rt *RenderTarget) Clear(clear uint32) {
	rt.image.clearAll(splatClear(clear))
}

// Transform returns the current view transform.
func (rt *RenderTarget) Transform() Transform {
	return rt.tfx
}

// SetTransform replaces the view transform and returns the old one.
func (rt *RenderTarget) SetTransform(tfx Transform) Transform {
	old := rt.tfx
	rt.tfx = tfx
	return old
}

// Clip returns the user clip rect.
func (rt *RenderTarget) Clip() Rect {
	return rt.userClip
}

// SetClip replaces the user clip rect and returns the old one.
func (rt *RenderTarget) SetClip(clip Rect) Rect {
	old := rt.userClip
	rt.userClip = clip
	rt.netClip = clip.ClampTo(rt.imageClip())
	return old
}

func (rt *RenderTarget) imageClip() Rect {
	return Rect{Max: Point{X: float32(rt.size[0]), Y: float32(rt.size[1])}}
}

// FillPath fills a path with a solid packed ARGB color.
func (rt *RenderTarget) FillPath(path *Path, color uint32) {
	mask, _, _, blit, ok := rasterizeMask(path, rt.tfx, rt.netClip, rt.rasterCache)
	if !ok {
		return
	}
	fillMaskSolid(mask, blit, argbUnpackPremultiply(color), &rt.image)
}

// StrokePath strokes a path with a solid packed ARGB color.
func (rt *RenderTarget) StrokePath(path *Path, width float32, color uint32) {
	rt.FillPath(StrokePath(path, width), color)
}

// WriteTo packs the surface into the destination image.
func (rt *RenderTarget) WriteTo(dst *Image) {
	writePlanar(&rt.image, dst)
}
