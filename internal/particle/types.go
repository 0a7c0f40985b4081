// Package particle provides the low-level building blocks of the smoke effect:
// resolved emitter parameters, vector paths, and the CPU rasterizer that turns
// shapes, images and glyphs into particle textures.
//
// Nothing in this package touches the GPU; textures are plain *image.RGBA so
// they can be inspected in tests and uploaded later by the caller.
package particle

import (
	"image/color"
	"math"
)

// Fixed emitter constants (固定参数，不由配置决定)
const (
	BaseAlpha          = 0.4
	AlphaRange         = 0.3
	ScaleRange         = 0.3
	ScaleSpeed         = 0.5
	SpeedRange         = 40.0
	PositionRangeY     = 30.0
	RotationRange      = math.Pi * 2
	RotationSpeed      = math.Pi * 1.6
	ColorBlendFactor   = 1.0
	EmissionAngle      = 0.0
	YAcceleration      = 0.0
	positionRangeRatio = 0.25 // horizontal jitter = surface width / 4
)

// BlendMode selects how particles composite onto the surface.
type BlendMode int

const (
	// BlendAlpha is standard source-over alpha compositing.
	BlendAlpha BlendMode = iota
	// BlendAdditive adds source colour to the destination.
	BlendAdditive
)

// EmitterParams holds every numeric parameter of one emitter.
//
// Ranges follow the usual emitter convention: a value with base b and range r
// is drawn uniformly from [b - r/2, b + r/2].
type EmitterParams struct {
	// Spawn (发射)
	BirthRate float64 // particles per second
	Lifetime  float64 // seconds

	// Emission area (发射区域)
	PositionRangeX float64
	PositionRangeY float64
	AnchorX        float64
	AnchorY        float64

	// Direction (发射方向，弧度)
	EmissionAngle      float64
	EmissionAngleRange float64

	// Alpha (透明度)
	Alpha      float64
	AlphaRange float64
	AlphaSpeed float64

	YAcceleration float64

	// Scale (缩放)
	Scale      float64
	ScaleRange float64
	ScaleSpeed float64

	// Speed (速度)
	Speed      float64
	SpeedRange float64

	// Color (颜色)
	Color            color.RGBA
	ColorBlendFactor float64

	// Rotation (旋转，弧度)
	Rotation      float64
	RotationRange float64
	RotationSpeed float64

	BlendMode BlendMode
	FieldMask uint32 // no force fields when zero
}

// SurfaceAnchor returns the emitter anchor and position jitter for a surface
// of the given size: the centre, width/4 horizontally and a fixed 30 vertically.
func SurfaceAnchor(width, height float64) (anchorX, anchorY, rangeX, rangeY float64) {
	return width / 2, height / 2, width * positionRangeRatio, PositionRangeY
}
