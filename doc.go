// Package softvg is a CPU renderer for 2D vector graphics.
//
// The engine consumes a command buffer of filled and stroked paths with
// solid or gradient paints and composites them into a premultiplied RGBA
// raster image. The pipeline has three stages:
//
//  1. Path flattening and stroke expansion: quadratic and cubic Bezier
//     curves are reduced to line segments with bounded error, and stroked
//     paths are expanded to filled outlines (bevel joins, butt caps).
//  2. Analytic coverage rasterization: line segments accumulate signed
//     partial coverage per pixel in a delta buffer, stepped four segments
//     at a time through the wide lane types, producing an alpha mask.
//  3. Mask composition: the mask is blended into a planar-SIMD RGBA
//     target with solid colors or two-stop/multi-stop linear and radial
//     gradients, then packed to the caller's 32-bit image.
//
// Build a command buffer once with BuildCmdBuf, then call Render as many
// times as needed:
//
//	cb := softvg.BuildCmdBuf(func(b *softvg.CmdBufBuilder) {
//	    p := b.BuildPath(func(pb *softvg.PathBuilder) {
//	        pb.MoveTo(softvg.Pt(10, 10))
//	        pb.LineTo(softvg.Pt(90, 10))
//	        pb.LineTo(softvg.Pt(50, 80))
//	        pb.ClosePath()
//	    })
//	    b.Push(softvg.FillPathSolid{Path: p, Color: 0xff2266cc})
//	})
//
//	img := softvg.NewImage(100, 100)
//	softvg.Render(cb, &softvg.RenderParams{Clear: 0xffffffff, Tfx: softvg.Identity()}, img)
//
// Colors are packed 32-bit ARGB (A<<24 | R<<16 | G<<8 | B). Output pixels
// are packed so that a little-endian read of the target bytes yields
// R, G, B, A order.
//
// The package is a library: it keeps no persistent state, reads no
// environment, and logs nothing by default (see SetLogger and SetTracer).
package softvg
