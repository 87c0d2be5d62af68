// Package wide provides SIMD-friendly 4-lane types for batch pixel processing.
//
// This package implements wide types (F32x4, I32x4, B32x4) that are designed
// to enable Go compiler auto-vectorization. By using fixed-size arrays and
// simple loops, these types allow the compiler to generate SIMD instructions
// on supported architectures (SSE, NEON).
//
// # Wide Types
//
// F32x4: 4 float32 lanes for coordinate stepping, coverage and color math.
// I32x4: 4 int32 lanes for pixel offsets and step counters.
// B32x4: 4 boolean lanes produced by comparisons and consumed by selects.
//
// The lane count matches the rasterizer's segment batch width and the
// planar pixel layout of the render target: one logical target column
// holds 4 pixels, one channel per F32x4.
//
// # Design Philosophy
//
//   - Use simple loops over fixed-size arrays for auto-vectorization
//   - Avoid unsafe and assembly - rely on compiler optimization
//   - Keep functions small and inlineable
//   - Branchless lane logic: comparisons produce masks, masks drive selects
package wide
