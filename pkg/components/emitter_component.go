package components

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/smokefx/internal/particle"
	"github.com/decker502/smokefx/pkg/ecs"
)

// EmitterComponent represents one continuous smoke emitter. It is created per
// content item and anchored at the surface centre through a PositionComponent.
//
// The ParticleSystem advances Age and spawns particles at Params.BirthRate per
// second while Active. Clearing Active stops new births; particles already in
// flight keep living until their lifetime runs out.
//
// This is a pure data component following ECS principles - it contains no methods.
type EmitterComponent struct {
	// Resolved parameters (由 SmokeConfig.EmitterParams 计算)
	Params particle.EmitterParams

	// Texture 已着色的粒子纹理，由 ResourceManager 持有
	Texture *ebiten.Image

	// ContentIndex 对应 SmokeConfig.Content 中的下标
	ContentIndex int

	// Emitter state (发射器状态)
	Active bool    // Whether the emitter is currently spawning particles
	Age    float64 // Time the emitter has been running (seconds)

	// Spawn timing (发射时机)
	NextSpawnTime float64 // Emitter age at which the next particle is due

	// Particle tracking (粒子追踪)
	ActiveParticles []ecs.EntityID // Particles spawned by this emitter that are still alive
	TotalLaunched   int            // Total number of particles spawned so far
}
