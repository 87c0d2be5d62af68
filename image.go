package softvg

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Compile-time interface check.
var _ image.Image = (*Image)(nil)

// Image is a 32-bit-per-pixel target buffer with row stride in pixels.
// The renderer writes packed output pixels A<<24 | B<<16 | G<<8 | R, so
// a little-endian read of the bytes yields R, G, B, A (see ARGB for the
// input packing); it never reads them.
type Image struct {
	width  int
	height int
	stride int
	pix    []uint32
}

// NewImage creates an image with stride == width.
func NewImage(width, height int) *Image {
	return NewImageStride(width, height, width)
}

// NewImageStride creates an image with an explicit row stride.
// The stride must be at least the width; it is fixed at construction.
func NewImageStride(width, height, stride int) *Image {
	if stride < width {
		panic("softvg: image stride below width")
	}
	return &Image{
		width:  width,
		height: height,
		stride: stride,
		pix:    make([]uint32, stride*height),
	}
}

// Width returns the width in pixels.
func (im *Image) Width() int { return im.width }

// Height returns the height in pixels.
func (im *Image) Height() int { return im.height }

// Stride returns the row stride in pixels.
func (im *Image) Stride() int { return im.stride }

// Pix returns the raw pixel storage, including stride padding.
func (im *Image) Pix() []uint32 { return im.pix }

// Row returns the visible pixels of row y.
func (im *Image) Row(y int) []uint32 {
	off := y * im.stride
	return im.pix[off : off+im.width]
}

// At implements the image.Image interface.
func (im *Image) At(x, y int) color.Color {
	if x < 0 || x >= im.width || y < 0 || y >= im.height {
		return color.RGBA{}
	}
	v := im.pix[y*im.stride+x]
	return color.RGBA{
		R: uint8(v),
		G: uint8(v >> 8),
		B: uint8(v >> 16),
		A: uint8(v >> 24),
	}
}

// Bounds implements the image.Image interface.
func (im *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, im.width, im.height)
}

// ColorModel implements the image.Image interface.
func (im *Image) ColorModel() color.Model {
	return color.RGBAModel
}

// ToRGBA copies the image into a standard premultiplied image.RGBA.
func (im *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, im.width, im.height))
	for y := 0; y < im.height; y++ {
		row := im.Row(y)
		for x, v := range row {
			i := y*out.Stride + x*4
			out.Pix[i+0] = uint8(v)
			out.Pix[i+1] = uint8(v >> 8)
			out.Pix[i+2] = uint8(v >> 16)
			out.Pix[i+3] = uint8(v >> 24)
		}
	}
	return out
}

// SavePNG writes the image to a PNG file.
func (im *Image) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, im.ToRGBA())
}

// AlphaImage is a dense float32 buffer used as the rasterizer's delta
// accumulator and, after accumulation, as the coverage mask. The stride
// is fixed when the buffer is (re)sized; Truncate narrows the visible
// size without touching the storage.
type AlphaImage struct {
	data   []float32
	width  int
	height int
	stride int
}

// NewAlphaImage creates a zeroed buffer.
func NewAlphaImage(width, height int) *AlphaImage {
	a := &AlphaImage{}
	a.Resize(width, height)
	return a
}

// Resize sets the buffer to width x height and clears it to zero,
// reusing storage when possible.
func (a *AlphaImage) Resize(width, height int) {
	n := width * height
	if cap(a.data) < n {
		a.data = make([]float32, n)
	} else {
		a.data = a.data[:n]
		clear(a.data)
	}
	a.width = width
	a.height = height
	a.stride = width
}

// Width returns the visible width.
func (a *AlphaImage) Width() int { return a.width }

// Height returns the visible height.
func (a *AlphaImage) Height() int { return a.height }

// Stride returns the row stride in elements.
func (a *AlphaImage) Stride() int { return a.stride }

// Data returns the raw storage, including rows and columns hidden by
// Truncate.
func (a *AlphaImage) Data() []float32 { return a.data }

// At returns the element at (x, y).
func (a *AlphaImage) At(x, y int) float32 {
	return a.data[y*a.stride+x]
}

// Truncate narrows the visible size. The stride is unchanged.
func (a *AlphaImage) Truncate(width, height int) {
	if width > a.width || height > a.height {
		panic("softvg: AlphaImage.Truncate grows the image")
	}
	a.width = width
	a.height = height
}

// Read4 returns four consecutive elements of row y starting at x.
func (a *AlphaImage) Read4(x, y int) [4]float32 {
	i := y*a.stride + x
	return [4]float32{a.data[i], a.data[i+1], a.data[i+2], a.data[i+3]}
}
