package filter

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/mat"
)

// Buffer is a single-channel 8-bit image stored row-major: pixel (x, y) lives
// at Pix[y*W+x]. (0,0) is the top-left corner, X increases rightward and Y
// increases downward.
//
// Buffers are owned by their creator. Filter functions never write to an
// input Buffer; each returns a freshly allocated output.
type Buffer struct {
	W, H int
	Pix  []uint8
}

// NewBuffer allocates a zeroed w by h buffer.
func NewBuffer(w, h int) *Buffer {
	return &Buffer{W: w, H: h, Pix: make([]uint8, w*h)}
}

// At returns the intensity at (x, y). No bounds checking beyond the slice's own.
func (b *Buffer) At(x, y int) uint8 { return b.Pix[y*b.W+x] }

// Set stores an intensity at (x, y).
func (b *Buffer) Set(x, y int, v uint8) { b.Pix[y*b.W+x] = v }

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := NewBuffer(b.W, b.H)
	copy(out.Pix, b.Pix)
	return out
}

// FromGray copies an image.Gray into a Buffer, discarding any bounds offset.
func FromGray(img *image.Gray) *Buffer {
	bounds := img.Bounds()
	out := NewBuffer(bounds.Dx(), bounds.Dy())
	for y := 0; y < out.H; y++ {
		src := img.Pix[(y+bounds.Min.Y-img.Rect.Min.Y)*img.Stride:]
		copy(out.Pix[y*out.W:(y+1)*out.W], src[bounds.Min.X-img.Rect.Min.X:])
	}
	return out
}

// ToGray converts the buffer to an image.Gray anchored at the origin.
func (b *Buffer) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.W, b.H))
	for y := 0; y < b.H; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+b.W], b.Pix[y*b.W:(y+1)*b.W])
	}
	return img
}

// String reports dimensions only, keeping log output compact.
func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer(%dx%d)", b.W, b.H)
}

// toDense converts the buffer to a float64 matrix for numeric work.
func (b *Buffer) toDense() *mat.Dense {
	data := make([]float64, len(b.Pix))
	for i, v := range b.Pix {
		data[i] = float64(v)
	}
	return mat.NewDense(b.H, b.W, data)
}

// clipToBuffer casts a float matrix back to 8 bits, clamping to [0, 255].
func clipToBuffer(m *mat.Dense) *Buffer {
	h, w := m.Dims()
	out := NewBuffer(w, h)
	raw := m.RawMatrix()
	for y := 0; y < h; y++ {
		row := raw.Data[y*raw.Stride : y*raw.Stride+w]
		for x, v := range row {
			switch {
			case v < 0:
				out.Pix[y*w+x] = 0
			case v > 255:
				out.Pix[y*w+x] = 255
			default:
				out.Pix[y*w+x] = uint8(v)
			}
		}
	}
	return out
}

// normalizeToBuffer min-max scales a float matrix to [0, 255] and casts to
// 8 bits. A uniform matrix (max == min) yields an all-zero buffer instead of
// dividing by zero.
func normalizeToBuffer(m *mat.Dense) *Buffer {
	h, w := m.Dims()
	out := NewBuffer(w, h)
	raw := m.RawMatrix()

	lo, hi := raw.Data[0], raw.Data[0]
	for y := 0; y < h; y++ {
		for _, v := range raw.Data[y*raw.Stride : y*raw.Stride+w] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if hi-lo <= 0 {
		return out
	}

	// Divide before scaling so the maximum lands on exactly 255.0: folding
	// the division into a premultiplied factor can truncate it to 254.
	span := hi - lo
	for y := 0; y < h; y++ {
		row := raw.Data[y*raw.Stride : y*raw.Stride+w]
		for x, v := range row {
			out.Pix[y*w+x] = uint8((v - lo) / span * 255)
		}
	}
	return out
}
