package systems

import (
	"log"
	"math"
	"math/rand"

	particlePkg "github.com/decker502/smokefx/internal/particle"
	"github.com/decker502/smokefx/pkg/components"
	"github.com/decker502/smokefx/pkg/ecs"
)

// maxSpawnLag bounds how far an emitter may fall behind its birth schedule.
// A long frame (window drag, breakpoint) would otherwise release a burst of
// particles at once.
const maxSpawnLag = 1.0

// ParticleSystem manages all smoke emitters and individual particles.
// It spawns particles from emitters at their birth rate, integrates every
// particle each frame (position, rotation, scale, alpha) and destroys particles
// when their lifetime expires.
//
// The system processes particles in two phases:
//  1. Update all emitters (spawn new particles)
//  2. Update all particles (integrate, expire)
//
// Follows ECS zero-coupling principle: communicates only through EntityManager.
type ParticleSystem struct {
	EntityManager *ecs.EntityManager

	rng *rand.Rand
}

// NewParticleSystem creates a new ParticleSystem instance. rng drives every
// random draw; pass a seeded source for reproducible output, or nil to use
// the global source.
func NewParticleSystem(em *ecs.EntityManager, rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		EntityManager: em,
		rng:           rng,
	}
}

// Update processes all emitters and particles for the current frame.
// dt is the delta time in seconds since the last frame.
func (ps *ParticleSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}
	ps.updateEmitters(dt)
	ps.updateParticles(dt)
}

// StopEmitter stops new births on one emitter. Particles already in flight
// finish their lifetime; the emitter entity is destroyed once they are gone.
func (ps *ParticleSystem) StopEmitter(id ecs.EntityID) {
	if emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, id); ok {
		emitter.Active = false
	}
}

// ParticleCount returns the number of live particles.
func (ps *ParticleSystem) ParticleCount() int {
	return len(ecs.GetEntitiesWith1[*components.ParticleComponent](ps.EntityManager))
}

// updateEmitters processes all emitter entities, spawning new particles
// and managing emitter lifecycle.
func (ps *ParticleSystem) updateEmitters(dt float64) {
	emitterEntities := ecs.GetEntitiesWith2[
		*components.EmitterComponent,
		*components.PositionComponent,
	](ps.EntityManager)

	for _, emitterID := range emitterEntities {
		emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, emitterID)
		if !ok {
			continue
		}
		position, ok := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, emitterID)
		if !ok {
			continue
		}

		emitter.Age += dt

		// 先清理已删除的粒子，保证 ActiveParticles 准确
		ps.cleanupDestroyedParticles(emitter)

		// 连续发射：发射器不会自行停止，只能被显式 Stop/Release
		if emitter.Active && emitter.Params.BirthRate > 0 {
			interval := 1.0 / emitter.Params.BirthRate
			if emitter.Age-emitter.NextSpawnTime > maxSpawnLag {
				emitter.NextSpawnTime = emitter.Age - maxSpawnLag
			}
			for emitter.Age >= emitter.NextSpawnTime {
				ps.spawnParticle(emitterID, emitter, position)
				emitter.TotalLaunched++
				emitter.NextSpawnTime += interval
			}
		}

		// Auto-cleanup: stopped emitters go away with their last particle
		if !emitter.Active && len(emitter.ActiveParticles) == 0 {
			ps.EntityManager.DestroyEntity(emitterID)
			log.Printf("[ParticleSystem] Emitter %d drained after %d particles", emitterID, emitter.TotalLaunched)
		}
	}
}

// cleanupDestroyedParticles removes dead particle IDs from emitter's active list
func (ps *ParticleSystem) cleanupDestroyedParticles(emitter *components.EmitterComponent) {
	alive := emitter.ActiveParticles[:0]
	for _, particleID := range emitter.ActiveParticles {
		if ecs.HasComponent[*components.ParticleComponent](ps.EntityManager, particleID) {
			alive = append(alive, particleID)
		}
	}
	emitter.ActiveParticles = alive
}

// spawnParticle creates a new particle entity from the emitter's parameters.
// Every ranged value is drawn from [base - range/2, base + range/2].
func (ps *ParticleSystem) spawnParticle(emitterID ecs.EntityID, emitter *components.EmitterComponent, emitterPos *components.PositionComponent) {
	p := &emitter.Params

	x := particlePkg.Jitter(ps.rng, emitterPos.X, p.PositionRangeX)
	y := particlePkg.Jitter(ps.rng, emitterPos.Y, p.PositionRangeY)

	// 角度 0 指向右侧，逆时针为正；屏幕 Y 轴向下，所以 Y 分量取反
	angle := particlePkg.Jitter(ps.rng, p.EmissionAngle, p.EmissionAngleRange)
	speed := particlePkg.Jitter(ps.rng, p.Speed, p.SpeedRange)

	particle := &components.ParticleComponent{
		VelocityX:     math.Cos(angle) * speed,
		VelocityY:     -math.Sin(angle) * speed,
		YAcceleration: p.YAcceleration,
		Rotation:      particlePkg.Jitter(ps.rng, p.Rotation, p.RotationRange),
		RotationSpeed: p.RotationSpeed,
		Scale:         math.Max(0, particlePkg.Jitter(ps.rng, p.Scale, p.ScaleRange)),
		ScaleSpeed:    p.ScaleSpeed,
		Alpha:         particlePkg.Clamp(particlePkg.Jitter(ps.rng, p.Alpha, p.AlphaRange), 0, 1),
		AlphaSpeed:    p.AlphaSpeed,
		Lifetime:      p.Lifetime,
		Image:         emitter.Texture,
		Additive:      p.BlendMode == particlePkg.BlendAdditive,
		Emitter:       emitterID,
	}

	id := ps.EntityManager.CreateEntity()
	ecs.AddComponent(ps.EntityManager, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(ps.EntityManager, id, particle)
	emitter.ActiveParticles = append(emitter.ActiveParticles, id)

	// DEBUG: 每个粒子都打印会刷屏，已禁用
	// log.Printf("[ParticleSystem] spawn %d: pos=(%.1f,%.1f) v=(%.1f,%.1f) a=%.2f s=%.2f",
	// 	id, x, y, particle.VelocityX, particle.VelocityY, particle.Alpha, particle.Scale)
}

// updateParticles integrates every particle and expires the ones past their
// lifetime.
func (ps *ParticleSystem) updateParticles(dt float64) {
	particleEntities := ecs.GetEntitiesWith2[
		*components.ParticleComponent,
		*components.PositionComponent,
	](ps.EntityManager)

	for _, particleID := range particleEntities {
		particle, ok := ecs.GetComponent[*components.ParticleComponent](ps.EntityManager, particleID)
		if !ok {
			continue
		}
		position, ok := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, particleID)
		if !ok {
			continue
		}

		particle.Age += dt
		if particle.Age >= particle.Lifetime {
			ps.EntityManager.DestroyEntity(particleID)
			continue
		}

		particle.VelocityY += particle.YAcceleration * dt
		position.X += particle.VelocityX * dt
		position.Y += particle.VelocityY * dt

		particle.Rotation += particle.RotationSpeed * dt
		particle.Scale = math.Max(0, particle.Scale+particle.ScaleSpeed*dt)
		particle.Alpha = particlePkg.Clamp(particle.Alpha+particle.AlphaSpeed*dt, 0, 1)
	}
}
