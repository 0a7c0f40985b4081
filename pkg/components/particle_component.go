package components

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/smokefx/pkg/ecs"
)

// ParticleComponent represents a single smoke particle. Position lives in a
// separate PositionComponent; everything else the ParticleSystem integrates
// each frame is stored here.
//
// This is a pure data component following ECS principles - it contains no methods.
type ParticleComponent struct {
	// Velocity (速度, 像素/秒)
	VelocityX float64
	VelocityY float64
	// YAcceleration 竖直加速度（像素/秒²）
	YAcceleration float64

	// Rotation (旋转, 弧度)
	Rotation      float64
	RotationSpeed float64 // radians per second

	// Scale (缩放倍数)
	Scale      float64
	ScaleSpeed float64 // per second

	// Transparency (透明度, 0-1)
	Alpha      float64
	AlphaSpeed float64 // per second, negative fades out

	// Lifecycle (生命周期, 秒)
	Age      float64
	Lifetime float64

	// Rendering properties
	Image    *ebiten.Image // Tinted texture shared with the emitter
	Additive bool          // Use additive blending when rendering

	// Emitter 生成该粒子的发射器
	Emitter ecs.EntityID
}
