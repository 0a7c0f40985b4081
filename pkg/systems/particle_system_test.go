package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/smokefx/internal/particle"
	"github.com/decker502/smokefx/pkg/components"
	"github.com/decker502/smokefx/pkg/ecs"
)

// newTestEmitter 创建一个锚定在 (x, y) 的发射器实体
func newTestEmitter(em *ecs.EntityManager, x, y float64, params particle.EmitterParams) (ecs.EntityID, *components.EmitterComponent) {
	id := em.CreateEntity()
	emitter := &components.EmitterComponent{
		Params: params,
		Active: true,
	}
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, emitter)
	return id, emitter
}

// smokeParams 与默认烟雾配置一致的参数（400x300 表面）
func smokeParams() particle.EmitterParams {
	return particle.EmitterParams{
		BirthRate:          40,
		Lifetime:           10,
		PositionRangeX:     100,
		PositionRangeY:     particle.PositionRangeY,
		AnchorX:            200,
		AnchorY:            150,
		EmissionAngleRange: 2 * math.Pi,
		Alpha:              particle.BaseAlpha,
		AlphaRange:         particle.AlphaRange,
		AlphaSpeed:         -0.15,
		Scale:              1,
		ScaleRange:         particle.ScaleRange,
		ScaleSpeed:         particle.ScaleSpeed,
		Speed:              40,
		SpeedRange:         particle.SpeedRange,
		ColorBlendFactor:   1,
		RotationRange:      particle.RotationRange,
		RotationSpeed:      particle.RotationSpeed,
	}
}

// TestParticleSystem_ParticleLifecycle tests that particles age and are destroyed when expired
func TestParticleSystem_ParticleLifecycle(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, nil)

	particleID := em.CreateEntity()
	p := &components.ParticleComponent{Lifetime: 1.0, Alpha: 1, Scale: 1}
	ecs.AddComponent(em, particleID, p)
	ecs.AddComponent(em, particleID, &components.PositionComponent{X: 100, Y: 100})

	ps.Update(0.5)
	if !ecs.HasComponent[*components.ParticleComponent](em, particleID) {
		t.Error("Particle should still exist after 0.5 seconds")
	}
	if p.Age != 0.5 {
		t.Errorf("Particle age should be 0.5, got %v", p.Age)
	}

	ps.Update(0.6)
	em.RemoveMarkedEntities()
	if ecs.HasComponent[*components.ParticleComponent](em, particleID) {
		t.Error("Particle should be destroyed after exceeding lifetime")
	}
}

// TestParticleSystem_ContinuousBirthRate 发射率 4/s：t=0,0.25,0.5,0.75,1.0 各发射一次
func TestParticleSystem_ContinuousBirthRate(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, rand.New(rand.NewSource(1)))

	params := smokeParams()
	params.BirthRate = 4
	_, emitter := newTestEmitter(em, 200, 150, params)

	ps.Update(1.0)
	if emitter.TotalLaunched != 5 {
		t.Errorf("TotalLaunched = %d, want 5", emitter.TotalLaunched)
	}
	if got := ps.ParticleCount(); got != 5 {
		t.Errorf("ParticleCount() = %d, want 5", got)
	}

	// 发射器永不自行停止
	ps.Update(0.5)
	ps.Update(0.5)
	em.RemoveMarkedEntities()
	if !emitter.Active {
		t.Error("continuous emitter stopped on its own")
	}
	if emitter.TotalLaunched != 9 {
		t.Errorf("TotalLaunched after 2s = %d, want 9", emitter.TotalLaunched)
	}
}

// TestParticleSystem_SpawnLagBounded 长帧不会一次性爆发
func TestParticleSystem_SpawnLagBounded(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, nil)

	params := smokeParams()
	params.BirthRate = 100
	_, emitter := newTestEmitter(em, 0, 0, params)

	ps.Update(30)
	limit := int(params.BirthRate*maxSpawnLag) + 1
	if emitter.TotalLaunched > limit {
		t.Errorf("TotalLaunched = %d after a 30s frame, want <= %d", emitter.TotalLaunched, limit)
	}
}

func TestParticleSystem_SpawnRanges(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, rand.New(rand.NewSource(7)))

	params := smokeParams()
	id, emitter := newTestEmitter(em, params.AnchorX, params.AnchorY, params)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

	for i := 0; i < 500; i++ {
		ps.spawnParticle(id, emitter, pos)
	}
	if len(emitter.ActiveParticles) != 500 {
		t.Fatalf("ActiveParticles = %d, want 500", len(emitter.ActiveParticles))
	}

	for _, pid := range emitter.ActiveParticles {
		p, _ := ecs.GetComponent[*components.ParticleComponent](em, pid)
		pp, _ := ecs.GetComponent[*components.PositionComponent](em, pid)

		if math.Abs(pp.X-200) > 50 || math.Abs(pp.Y-150) > 15 {
			t.Fatalf("spawn position (%.1f, %.1f) outside the emission box", pp.X, pp.Y)
		}
		if p.Alpha < 0.25-1e-9 || p.Alpha > 0.55+1e-9 {
			t.Fatalf("alpha %.3f outside [0.25, 0.55]", p.Alpha)
		}
		if p.Scale < 0.85-1e-9 || p.Scale > 1.15+1e-9 {
			t.Fatalf("scale %.3f outside [0.85, 1.15]", p.Scale)
		}
		if math.Abs(p.Rotation) > math.Pi+1e-9 {
			t.Fatalf("rotation %.3f outside [-π, π]", p.Rotation)
		}
		speed := math.Hypot(p.VelocityX, p.VelocityY)
		if speed > 60+1e-9 {
			t.Fatalf("speed %.2f exceeds 60", speed)
		}
		if p.RotationSpeed != particle.RotationSpeed || p.Lifetime != 10 {
			t.Fatalf("fixed values not copied: %+v", p)
		}
		if p.Emitter != id {
			t.Fatalf("particle emitter = %d, want %d", p.Emitter, id)
		}
	}
}

// TestParticleSystem_EmissionAngle 角度 0 指向右侧，π/2 指向屏幕上方
func TestParticleSystem_EmissionAngle(t *testing.T) {
	tests := []struct {
		name   string
		angle  float64
		wantVX float64
		wantVY float64
	}{
		{"right", 0, 100, 0},
		{"up", math.Pi / 2, 0, -100},
		{"left", math.Pi, -100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			ps := NewParticleSystem(em, nil)
			id, emitter := newTestEmitter(em, 0, 0, particle.EmitterParams{
				EmissionAngle: tt.angle,
				Speed:         100,
				Lifetime:      1,
				Alpha:         1,
				Scale:         1,
			})
			pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
			ps.spawnParticle(id, emitter, pos)

			p, _ := ecs.GetComponent[*components.ParticleComponent](em, emitter.ActiveParticles[0])
			if math.Abs(p.VelocityX-tt.wantVX) > 1e-9 || math.Abs(p.VelocityY-tt.wantVY) > 1e-9 {
				t.Errorf("velocity = (%.3f, %.3f), want (%.0f, %.0f)", p.VelocityX, p.VelocityY, tt.wantVX, tt.wantVY)
			}
		})
	}
}

// TestParticleSystem_Deterministic 相同种子产生相同粒子
func TestParticleSystem_Deterministic(t *testing.T) {
	run := func() []components.PositionComponent {
		em := ecs.NewEntityManager()
		ps := NewParticleSystem(em, rand.New(rand.NewSource(99)))
		newTestEmitter(em, 200, 150, smokeParams())
		for i := 0; i < 30; i++ {
			ps.Update(1.0 / 60)
			em.RemoveMarkedEntities()
		}
		var out []components.PositionComponent
		for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](em) {
			pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
			out = append(out, *pos)
		}
		return out
	}

	a, b := run(), run()
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("particle counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("particle %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestParticleSystem_Integration(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, nil)

	id := em.CreateEntity()
	p := &components.ParticleComponent{
		VelocityX:     10,
		VelocityY:     -20,
		YAcceleration: 4,
		RotationSpeed: math.Pi,
		Scale:         0.1,
		ScaleSpeed:    -0.5,
		Alpha:         0.2,
		AlphaSpeed:    -0.28,
		Lifetime:      10,
	}
	pos := &components.PositionComponent{X: 0, Y: 0}
	ecs.AddComponent(em, id, p)
	ecs.AddComponent(em, id, pos)

	ps.Update(1)

	if pos.X != 10 || pos.Y != -16 {
		t.Errorf("position = (%v, %v), want (10, -16)", pos.X, pos.Y)
	}
	if p.Rotation != math.Pi {
		t.Errorf("rotation = %v, want π", p.Rotation)
	}
	// 缩放和透明度都被钳制在 0
	if p.Scale != 0 || p.Alpha != 0 {
		t.Errorf("scale/alpha = %v/%v, want 0/0", p.Scale, p.Alpha)
	}

	p.AlphaSpeed = 5
	ps.Update(1)
	if p.Alpha != 1 {
		t.Errorf("alpha = %v, want clamped to 1", p.Alpha)
	}
}

// TestParticleSystem_StopEmitter 停止后不再发射，粒子耗尽后发射器被回收
func TestParticleSystem_StopEmitter(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, nil)

	params := smokeParams()
	params.BirthRate = 10
	params.Lifetime = 0.5
	id, emitter := newTestEmitter(em, 0, 0, params)

	ps.Update(0.2)
	launched := emitter.TotalLaunched
	if launched == 0 {
		t.Fatal("emitter did not spawn")
	}

	ps.StopEmitter(id)
	ps.Update(0.2)
	em.RemoveMarkedEntities()
	if emitter.TotalLaunched != launched {
		t.Errorf("stopped emitter launched %d more particles", emitter.TotalLaunched-launched)
	}
	if !em.IsAlive(id) {
		t.Error("emitter should stay alive while its particles are in flight")
	}

	for i := 0; i < 3; i++ {
		ps.Update(0.5)
		em.RemoveMarkedEntities()
	}
	if em.IsAlive(id) {
		t.Error("drained emitter should be destroyed")
	}
	if ps.ParticleCount() != 0 {
		t.Errorf("ParticleCount() = %d, want 0", ps.ParticleCount())
	}
}

func TestParticleSystem_IndependentEmitters(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, nil)

	slow := smokeParams()
	slow.BirthRate = 4
	fast := smokeParams()
	fast.BirthRate = 8

	_, a := newTestEmitter(em, 0, 0, slow)
	_, b := newTestEmitter(em, 0, 0, fast)

	ps.Update(1.0)
	if a.TotalLaunched != 5 || b.TotalLaunched != 9 {
		t.Errorf("launched = %d, %d, want 5, 9", a.TotalLaunched, b.TotalLaunched)
	}
}

func TestParticleSystem_ZeroDelta(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, nil)
	_, emitter := newTestEmitter(em, 0, 0, smokeParams())

	ps.Update(0)
	ps.Update(-1)
	if emitter.TotalLaunched != 0 || emitter.Age != 0 {
		t.Errorf("non-positive dt advanced the emitter: age=%v launched=%d", emitter.Age, emitter.TotalLaunched)
	}
}
