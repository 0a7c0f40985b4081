package particle

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Texture sizes (纹理尺寸)
const (
	// ShapeCanvasSize is the side of the square canvas shapes are drawn into.
	ShapeCanvasSize = 12
	// GlyphFontSize is the point size glyphs are rendered at (72 DPI).
	GlyphFontSize = 16.0
	// SparkSize is the side of the procedural spark texture.
	SparkSize = 32
)

var (
	glyphOnce sync.Once
	glyphFace font.Face
	glyphErr  error
	// opentype faces keep internal caches and are not safe for concurrent use
	glyphMu sync.Mutex

	sparkOnce sync.Once
	sparkImg  *image.RGBA
)

// GlyphFace returns the shared Go Regular face used for glyph content.
func GlyphFace() (font.Face, error) {
	glyphOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			glyphErr = err
			return
		}
		glyphFace, glyphErr = opentype.NewFace(f, &opentype.FaceOptions{
			Size:    GlyphFontSize,
			DPI:     72,
			Hinting: font.HintingNone,
		})
	})
	return glyphFace, glyphErr
}

// BlankTexture returns a fresh 1×1 fully transparent texture. Rasterization
// falls back to it instead of failing.
func BlankTexture() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, 1, 1))
}

// RasterizeShape fills p into a ShapeCanvasSize square canvas. A nil fill
// colour means white.
func RasterizeShape(p Path, fill color.Color) *image.RGBA {
	return RasterizePath(p, ShapeCanvasSize, ShapeCanvasSize, fill)
}

// RasterizePath fills p into a w×h canvas with an anti-aliased non-zero fill.
func RasterizePath(p Path, w, h int, fill color.Color) *image.RGBA {
	if w <= 0 || h <= 0 {
		return BlankTexture()
	}
	if fill == nil {
		fill = color.White
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if len(p) == 0 {
		return dst
	}

	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Over
	for _, op := range p {
		switch op.Verb {
		case VerbMoveTo:
			z.MoveTo(op.Pts[0].X, op.Pts[0].Y)
		case VerbLineTo:
			z.LineTo(op.Pts[0].X, op.Pts[0].Y)
		case VerbQuadTo:
			z.QuadTo(op.Pts[0].X, op.Pts[0].Y, op.Pts[1].X, op.Pts[1].Y)
		case VerbCubeTo:
			z.CubeTo(op.Pts[0].X, op.Pts[0].Y, op.Pts[1].X, op.Pts[1].Y, op.Pts[2].X, op.Pts[2].Y)
		case VerbClose:
			z.ClosePath()
		}
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(fill), image.Point{})
	return dst
}

// RasterizeImage copies src into a new RGBA texture with its origin at 0,0.
// A nil or empty src yields a blank texture.
func RasterizeImage(src image.Image) *image.RGBA {
	if src == nil || src.Bounds().Empty() {
		return BlankTexture()
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// RasterizeGlyph renders r in white with the glyph face. The canvas is the
// glyph's natural box: its advance wide and ascent+descent tall, with the
// baseline at the ascent. A rune the face does not cover, or missing font
// data, gives a blank texture instead of the font's missing-glyph box.
func RasterizeGlyph(r rune) *image.RGBA {
	face, err := GlyphFace()
	if err != nil {
		log.Printf("[Particle] glyph face unavailable: %v", err)
		return BlankTexture()
	}

	glyphMu.Lock()
	defer glyphMu.Unlock()

	w, h, ascent := glyphBox(face, r)
	if w <= 0 || h <= 0 {
		return BlankTexture()
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: ascent},
	}
	d.DrawString(string(r))
	return dst
}

// GlyphSize reports the texture size RasterizeGlyph produces for r. Runes
// that fall back to a blank texture report 1×1.
func GlyphSize(r rune) (w, h int) {
	face, err := GlyphFace()
	if err != nil {
		return 1, 1
	}
	glyphMu.Lock()
	defer glyphMu.Unlock()
	w, h, _ = glyphBox(face, r)
	if w <= 0 || h <= 0 {
		return 1, 1
	}
	return w, h
}

// HasGlyph reports whether the glyph face covers r.
func HasGlyph(r rune) bool {
	face, err := GlyphFace()
	if err != nil {
		return false
	}
	glyphMu.Lock()
	defer glyphMu.Unlock()
	w, _, _ := glyphBox(face, r)
	return w > 0
}

// glyphBox 返回字形画布尺寸；字体不含该字符时宽度为 0
func glyphBox(face font.Face, r rune) (w, h int, ascent fixed.Int26_6) {
	adv, ok := face.GlyphAdvance(r)
	if !ok || adv <= 0 {
		return 0, 0, 0
	}
	m := face.Metrics()
	return adv.Ceil(), (m.Ascent + m.Descent).Ceil(), m.Ascent
}

// SparkTexture returns the shared procedural spark: a white dot with a soft
// quadratic falloff. Callers must not modify it.
func SparkTexture() *image.RGBA {
	sparkOnce.Do(func() {
		sparkImg = image.NewRGBA(image.Rect(0, 0, SparkSize, SparkSize))
		c := float64(SparkSize) / 2
		for y := 0; y < SparkSize; y++ {
			for x := 0; x < SparkSize; x++ {
				d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c) / c
				if d >= 1 {
					continue
				}
				a := uint8(math.Round((1 - d) * (1 - d) * 255))
				// 预乘 alpha：白色的 RGB 等于 alpha
				sparkImg.SetRGBA(x, y, color.RGBA{R: a, G: a, B: a, A: a})
			}
		}
	})
	return sparkImg
}

// Tint blends the colour of src toward c by blend (0 keeps the texture colour,
// 1 replaces it entirely). Texture alpha is kept and scaled by the tint alpha
// in proportion to blend.
func Tint(src image.Image, c color.Color, blend float64) *image.RGBA {
	dst := RasterizeImage(src)
	if c == nil || blend <= 0 {
		return dst
	}
	blend = Clamp(blend, 0, 1)

	tc := color.NRGBAModel.Convert(c).(color.NRGBA)
	tr, tg, tb := float64(tc.R), float64(tc.G), float64(tc.B)
	alphaScale := 1 - blend + blend*float64(tc.A)/255

	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := color.NRGBAModel.Convert(dst.RGBAAt(x, y)).(color.NRGBA)
			if px.A == 0 {
				continue
			}
			out := color.NRGBA{
				R: lerp8(px.R, tr, blend),
				G: lerp8(px.G, tg, blend),
				B: lerp8(px.B, tb, blend),
				A: uint8(math.Round(float64(px.A) * alphaScale)),
			}
			dst.Set(x, y, out)
		}
	}
	return dst
}

func lerp8(from uint8, to, t float64) uint8 {
	return uint8(math.Round(float64(from)*(1-t) + to*t))
}
