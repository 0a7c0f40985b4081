package config

import (
	"github.com/decker502/smokefx/internal/particle"
)

// EmitterParams resolves the numeric parameters of the emitter for item on a
// surface of the given size. It is a pure function of its inputs.
func (c SmokeConfig) EmitterParams(item Content, surfaceWidth, surfaceHeight float64) particle.EmitterParams {
	anchorX, anchorY, rangeX, rangeY := particle.SurfaceAnchor(surfaceWidth, surfaceHeight)

	return particle.EmitterParams{
		// Intensity.BirthRateScale is deliberately not used here
		BirthRate: c.Intensity.BirthRate(),
		Lifetime:  c.Lifetime.Seconds(),

		PositionRangeX: rangeX,
		PositionRangeY: rangeY,
		AnchorX:        anchorX,
		AnchorY:        anchorY,

		EmissionAngle:      particle.EmissionAngle,
		EmissionAngleRange: c.SpreadRadius.Radians(),

		Alpha:      particle.BaseAlpha,
		AlphaRange: particle.AlphaRange,
		AlphaSpeed: c.FadeOut.AlphaSpeed(),

		YAcceleration: particle.YAcceleration,

		Scale:      item.Scale(),
		ScaleRange: particle.ScaleRange,
		ScaleSpeed: particle.ScaleSpeed,

		Speed:      c.InitialVelocity.Speed(),
		SpeedRange: particle.SpeedRange,

		Color:            c.ParticleColor,
		ColorBlendFactor: particle.ColorBlendFactor,

		Rotation:      0,
		RotationRange: particle.RotationRange,
		RotationSpeed: particle.RotationSpeed,

		BlendMode: particle.BlendAlpha,
		FieldMask: 0,
	}
}
