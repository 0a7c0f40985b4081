package particle

// Verb is a path drawing command.
type Verb int

const (
	VerbMoveTo Verb = iota
	VerbLineTo
	VerbQuadTo  // one control point, then the end point
	VerbCubeTo  // two control points, then the end point
	VerbClose
)

// Point is a 2D point in texture pixels.
type Point struct {
	X, Y float32
}

// PathOp is one command of a Path. Pts holds as many points as the verb
// needs; the rest are ignored.
type PathOp struct {
	Verb Verb
	Pts  [3]Point
}

// Path is an outline in texture pixel space, filled with the non-zero rule.
// Custom paths are rasterized verbatim; no validation is performed.
type Path []PathOp

func (p *Path) MoveTo(x, y float32) {
	*p = append(*p, PathOp{Verb: VerbMoveTo, Pts: [3]Point{{x, y}}})
}

func (p *Path) LineTo(x, y float32) {
	*p = append(*p, PathOp{Verb: VerbLineTo, Pts: [3]Point{{x, y}}})
}

func (p *Path) QuadTo(cx, cy, x, y float32) {
	*p = append(*p, PathOp{Verb: VerbQuadTo, Pts: [3]Point{{cx, cy}, {x, y}}})
}

func (p *Path) CubeTo(c1x, c1y, c2x, c2y, x, y float32) {
	*p = append(*p, PathOp{Verb: VerbCubeTo, Pts: [3]Point{{c1x, c1y}, {c2x, c2y}, {x, y}}})
}

func (p *Path) Close() {
	*p = append(*p, PathOp{Verb: VerbClose})
}

// kappa is the cubic Bézier control distance approximating a quarter circle.
const kappa = 0.5522847498

// EllipsePath returns the ellipse inscribed in a w×h rect at the origin.
func EllipsePath(w, h float32) Path {
	rx, ry := w/2, h/2
	cx, cy := rx, ry
	kx, ky := rx*kappa, ry*kappa

	var p Path
	p.MoveTo(cx+rx, cy)
	p.CubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	p.CubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	p.CubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	p.CubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	p.Close()
	return p
}

// TrianglePath returns the triangle with its apex at the top centre and its
// base along the bottom edge of a w×h rect.
func TrianglePath(w, h float32) Path {
	var p Path
	p.MoveTo(w/2, 0)
	p.LineTo(w, h)
	p.LineTo(0, h)
	p.LineTo(w/2, 0)
	return p
}

// RectPath returns the full w×h rect.
func RectPath(w, h float32) Path {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(w, 0)
	p.LineTo(w, h)
	p.LineTo(0, h)
	p.Close()
	return p
}
