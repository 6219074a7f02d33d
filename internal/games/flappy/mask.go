package flappy

import (
	"image"

	"github.com/vovakirdan/flappy-evo/internal/core"
)

// alphaThreshold is the minimum 8-bit alpha of an opaque pixel.
const alphaThreshold = 127

// Mask is a per-pixel opacity bitmap of a sprite frame.
type Mask struct {
	w, h int
	bits []uint64
}

// NewMask creates an empty mask of the given size.
func NewMask(w, h int) *Mask {
	return &Mask{w: w, h: h, bits: make([]uint64, (w*h+63)/64)}
}

// MaskFromImage marks every pixel whose alpha exceeds the threshold.
func MaskFromImage(img image.Image) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if a>>8 > alphaThreshold {
				m.Set(x, y)
			}
		}
	}
	return m
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int { return m.w }

// Height returns the mask height in pixels.
func (m *Mask) Height() int { return m.h }

// Set marks a pixel as opaque. Out-of-range pixels are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return
	}
	i := y*m.w + x
	m.bits[i/64] |= 1 << uint(i%64)
}

// Get reports whether a pixel is opaque. Out-of-range pixels are transparent.
func (m *Mask) Get(x, y int) bool {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return false
	}
	i := y*m.w + x
	return m.bits[i/64]&(1<<uint(i%64)) != 0
}

// Count returns the number of opaque pixels.
func (m *Mask) Count() int {
	n := 0
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if m.Get(x, y) {
				n++
			}
		}
	}
	return n
}

// Overlap tests m against other placed at offset (dx, dy) in m's
// coordinates. It returns the first overlapping pixel in row-major order.
func (m *Mask) Overlap(other *Mask, dx, dy int) (x, y int, ok bool) {
	region := core.NewRect(0, 0, m.w, m.h).Intersect(core.NewRect(dx, dy, other.w, other.h))
	if region.Empty() {
		return 0, 0, false
	}
	for y := region.Y; y < region.Bottom(); y++ {
		for x := region.X; x < region.Right(); x++ {
			if m.Get(x, y) && other.Get(x-dx, y-dy) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}
