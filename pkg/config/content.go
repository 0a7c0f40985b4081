package config

import (
	"fmt"
	"image"
	"image/color"

	"github.com/decker502/smokefx/internal/particle"
)

// ContentKind discriminates the Content variants.
type ContentKind int

const (
	ContentShape ContentKind = iota
	ContentImage
	ContentGlyph
)

func (k ContentKind) String() string {
	switch k {
	case ContentShape:
		return "shape"
	case ContentImage:
		return "image"
	case ContentGlyph:
		return "glyph"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// ShapeKind 形状类型
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeTriangle
	ShapeSquare
	ShapeCustom
)

var shapeNames = []string{"circle", "triangle", "square", "custom"}

func (s ShapeKind) String() string { return enumName(shapeNames, int(s)) }

// ParseShapeKind parses "circle", "triangle", "square" or "custom".
func ParseShapeKind(s string) (ShapeKind, error) {
	v, err := parseEnum("shape", shapeNames, s)
	return ShapeKind(v), err
}

// Path returns the outline of s inside a w×h rect. Custom shapes carry their
// own path, so ShapeCustom returns nil here.
func (s ShapeKind) Path(w, h float32) particle.Path {
	switch s {
	case ShapeCircle:
		return particle.EllipsePath(w, h)
	case ShapeTriangle:
		return particle.TrianglePath(w, h)
	case ShapeSquare:
		return particle.RectPath(w, h)
	}
	return nil
}

// Content is one visual source for an emitter: a shape, an image or a glyph.
// Build it with ShapeContent, CustomShapeContent, ImageContent or
// GlyphContent; the zero value is a white circle at scale 0.
type Content struct {
	kind  ContentKind
	shape ShapeKind
	path  particle.Path
	img   image.Image
	glyph rune
	tint  color.Color
	scale float64
}

// ShapeContent returns a built-in shape. tint may be nil (white).
func ShapeContent(kind ShapeKind, tint color.Color, scale float64) Content {
	return Content{kind: ContentShape, shape: kind, tint: tint, scale: scale}
}

// CustomShapeContent returns a shape drawn from a caller-supplied path in
// 12×12 canvas units. The path is used as given.
func CustomShapeContent(p particle.Path, tint color.Color, scale float64) Content {
	return Content{kind: ContentShape, shape: ShapeCustom, path: p, tint: tint, scale: scale}
}

// ImageContent returns a bitmap source. A nil img means the built-in spark.
func ImageContent(img image.Image, tint color.Color, scale float64) Content {
	return Content{kind: ContentImage, img: img, tint: tint, scale: scale}
}

// GlyphContent returns a single character rendered as text.
func GlyphContent(r rune, scale float64) Content {
	return Content{kind: ContentGlyph, glyph: r, scale: scale}
}

func (c Content) Kind() ContentKind { return c.kind }
func (c Content) Shape() ShapeKind  { return c.shape }
func (c Content) Glyph() rune       { return c.glyph }

// Image returns the bitmap of an image content, falling back to the spark.
func (c Content) Image() image.Image {
	if c.kind != ContentImage {
		return nil
	}
	if c.img == nil {
		return particle.SparkTexture()
	}
	return c.img
}

// Path returns the outline of a shape content in the 12×12 canvas.
func (c Content) Path() particle.Path {
	if c.kind != ContentShape {
		return nil
	}
	if c.shape == ShapeCustom {
		return c.path
	}
	const side = particle.ShapeCanvasSize
	return c.shape.Path(side, side)
}

// TintColor returns the per-item colour override. Glyphs never carry one.
func (c Content) TintColor() (color.Color, bool) {
	if c.kind == ContentGlyph || c.tint == nil {
		return nil, false
	}
	return c.tint, true
}

// Scale returns the particle scale multiplier, never negative.
func (c Content) Scale() float64 {
	if c.scale < 0 {
		return 0
	}
	return c.scale
}

// Texture rasterizes the content:
//   - shape: 12×12 canvas filled with the tint, white when unset
//   - image: the bitmap unchanged, tint ignored
//   - glyph: the character at 16pt in its natural box
//
// It never fails; unrenderable content gives a blank texture.
func (c Content) Texture() *image.RGBA {
	switch c.kind {
	case ContentShape:
		tint, ok := c.TintColor()
		if !ok {
			tint = color.White
		}
		return particle.RasterizeShape(c.Path(), tint)
	case ContentImage:
		return particle.RasterizeImage(c.Image())
	case ContentGlyph:
		return particle.RasterizeGlyph(c.glyph)
	}
	return particle.BlankTexture()
}

// CacheKey identifies contents that rasterize to the same texture. Custom
// paths and caller images are not comparable, so those return ok=false.
func (c Content) CacheKey() (key string, ok bool) {
	switch c.kind {
	case ContentShape:
		if c.shape == ShapeCustom {
			return "", false
		}
		return fmt.Sprintf("shape:%s:%s", c.shape, colorKey(c.tint)), true
	case ContentImage:
		if c.img != nil {
			return "", false
		}
		return "image:spark", true
	case ContentGlyph:
		return fmt.Sprintf("glyph:%U", c.glyph), true
	}
	return "", false
}

func colorKey(c color.Color) string {
	if c == nil {
		return "none"
	}
	r, g, b, a := c.RGBA()
	return fmt.Sprintf("%04x%04x%04x%04x", r, g, b, a)
}
