package drawing

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
)

// Maximum surface dimensions; requested sizes are capped, not rejected.
const (
	MaxWidth  = 800
	MaxHeight = 600
)

const (
	penRadius   = 1 // 3px pen: centre pixel plus one on each side
	jpegQuality = 90
)

// Point is one sampled input position on the surface.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Canvas is a freehand raster surface. It starts blank (white) and records
// strokes as connected line segments between consecutive sampled positions.
// There is no undo history beyond a full clear.
type Canvas struct {
	img *image.RGBA
	pen color.Color
}

// NewCanvas builds a blank canvas. Dimensions are clamped to the maximums
// and floored at one pixel.
func NewCanvas(width, height int) *Canvas {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	if width > MaxWidth {
		width = MaxWidth
	}
	if height > MaxHeight {
		height = MaxHeight
	}

	c := &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		pen: color.Black,
	}
	c.Clear()
	return c
}

// Bounds returns the surface dimensions.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// At reports the colour at the given position.
func (c *Canvas) At(x, y int) color.Color {
	return c.img.At(x, y)
}

// Clear resets the surface to a blank white background.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
}

// Stroke draws connected line segments between consecutive points. A single
// point produces a dot. Points outside the surface are clipped.
func (c *Canvas) Stroke(points []Point) {
	if len(points) == 0 {
		return
	}

	if len(points) == 1 {
		c.stamp(points[0].X, points[0].Y)
		return
	}

	for i := 1; i < len(points); i++ {
		c.segment(points[i-1], points[i])
	}
}

// segment rasterises one line segment by stamping the pen along the line.
func (c *Canvas) segment(from, to Point) {
	dx := abs(to.X - from.X)
	dy := abs(to.Y - from.Y)
	steps := dx
	if dy > steps {
		steps = dy
	}
	if steps == 0 {
		c.stamp(from.X, from.Y)
		return
	}

	for i := 0; i <= steps; i++ {
		x := from.X + (to.X-from.X)*i/steps
		y := from.Y + (to.Y-from.Y)*i/steps
		c.stamp(x, y)
	}
}

func (c *Canvas) stamp(x, y int) {
	bounds := c.img.Bounds()
	for ox := -penRadius; ox <= penRadius; ox++ {
		for oy := -penRadius; oy <= penRadius; oy++ {
			px, py := x+ox, y+oy
			if image.Pt(px, py).In(bounds) {
				c.img.Set(px, py, c.pen)
			}
		}
	}
}

// ExportJPEG encodes the surface as a JPEG data URL suitable for upload.
func (c *Canvas) ExportJPEG() (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, c.img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode drawing: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
