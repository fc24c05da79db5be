// Package icon renders fallback icon shapes and carries resolved icons.
package icon

import (
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"math"
	"strings"

	"golang.org/x/image/draw"
)

// Shape is the fallback mask applied when a pack has no icon for an app.
type Shape int

const (
	Circle Shape = iota
	RoundedSquare
	Square
	Squircle
)

var shapeNames = map[Shape]string{
	Circle:        "circle",
	RoundedSquare: "rounded_square",
	Square:        "square",
	Squircle:      "squircle",
}

// Shapes lists every shape in declaration order.
func Shapes() []Shape {
	return []Shape{Circle, RoundedSquare, Square, Squircle}
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// ParseShape maps a stored shape name to a Shape. Unknown names give
// Circle, which is also the store default.
func ParseShape(name string) Shape {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range shapeNames {
		if n == name {
			return s
		}
	}
	return Circle
}

// cornerRadius returns the rounded-corner radius for size, or 0 for shapes
// without corners.
func (s Shape) cornerRadius(size int) float64 {
	switch s {
	case RoundedSquare:
		return 0.20 * float64(size)
	case Squircle:
		return 0.28 * float64(size)
	}
	return 0
}

// ApplyFallbackShape scales src to size×size and clears every pixel
// outside shape. Pixels inside are left as they are, so applying the same
// shape twice gives the same image. The source is never modified.
func ApplyFallbackShape(src image.Image, shape Shape, size int) *image.NRGBA {
	if size < 1 {
		size = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	if src != nil {
		b := src.Bounds()
		if b.Dx() == size && b.Dy() == size {
			copyExact(dst, src)
		} else if !b.Empty() {
			draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
		}
	}

	if shape == Square {
		return dst
	}
	transparent := color.NRGBA{}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if !shape.contains(x, y, size) {
				dst.SetNRGBA(x, y, transparent)
			}
		}
	}
	return dst
}

// contains tests the pixel centre of (x, y) against the shape.
func (s Shape) contains(x, y, size int) bool {
	px := float64(x) + 0.5
	py := float64(y) + 0.5
	full := float64(size)

	switch s {
	case Square:
		return true
	case Circle:
		r := full / 2
		dx, dy := px-r, py-r
		return dx*dx+dy*dy <= r*r
	}

	r := s.cornerRadius(size)
	// Distance into the nearest corner box, zero along the straight edges.
	dx := math.Max(0, math.Max(r-px, px-(full-r)))
	dy := math.Max(0, math.Max(r-py, py-(full-r)))
	return dx*dx+dy*dy <= r*r
}

// copyExact copies a same-size raster. NRGBA sources are copied byte for
// byte so repeated application never drifts through premultiplication.
func copyExact(dst *image.NRGBA, src image.Image) {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			row := n.Pix[n.PixOffset(b.Min.X, b.Min.Y+y):]
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+4*b.Dx()], row[:4*b.Dx()])
		}
		return
	}
	stddraw.Draw(dst, dst.Bounds(), src, b.Min, stddraw.Src)
}
