package scenes

import (
	"log"
	"math/rand"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/smokefx/pkg/components"
	"github.com/decker502/smokefx/pkg/config"
	"github.com/decker502/smokefx/pkg/ecs"
	"github.com/decker502/smokefx/pkg/entities"
	"github.com/decker502/smokefx/pkg/game"
	"github.com/decker502/smokefx/pkg/systems"
)

// SmokeScene drives one smoke effect: a set of continuous emitters, one per
// content item, anchored at the centre of the surface.
//
// Launching again replaces the running set. The previous emitters, their
// particles and their textures are released before the new set is created,
// so at most one set is ever alive.
type SmokeScene struct {
	resourceManager *game.ResourceManager
	config          config.SmokeConfig

	// ECS
	entityManager  *ecs.EntityManager
	particleSystem *systems.ParticleSystem
	renderSystem   *systems.RenderSystem

	emitters []ecs.EntityID  // 当前发射器集合
	textures []*ebiten.Image // 本场景持有的纹理引用，每个发射器一个

	// 表面状态
	width, height int
	launched      bool // 至少发射过一次且未被 Release
	released      bool // 显式 Release 后 Resize 不再自动发射
	visible       bool // 关机时隐藏粒子，发射继续
}

// SmokeSceneOption configures a SmokeScene.
type SmokeSceneOption func(*SmokeScene)

// WithRand makes every random draw come from rng.
func WithRand(rng *rand.Rand) SmokeSceneOption {
	return func(s *SmokeScene) {
		s.particleSystem = systems.NewParticleSystem(s.entityManager, rng)
	}
}

// WithSeed is WithRand with a fresh source seeded by seed.
func WithSeed(seed int64) SmokeSceneOption {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// NewSmokeScene creates a scene for cfg. Nothing is emitted until Launch or
// the first Resize.
func NewSmokeScene(rm *game.ResourceManager, cfg config.SmokeConfig, opts ...SmokeSceneOption) *SmokeScene {
	em := ecs.NewEntityManager()
	s := &SmokeScene{
		resourceManager: rm,
		config:          cfg.Clone(),
		entityManager:   em,
		particleSystem:  systems.NewParticleSystem(em, nil),
		renderSystem:    systems.NewRenderSystem(em),
		visible:         true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns a copy of the active configuration.
func (s *SmokeScene) Config() config.SmokeConfig {
	return s.config.Clone()
}

// SetConfig swaps the configuration. A launched scene is re-launched at its
// current size.
func (s *SmokeScene) SetConfig(cfg config.SmokeConfig) {
	s.config = cfg.Clone()
	if s.launched {
		s.Launch(s.width, s.height)
	}
}

// Launch starts emitting on a width x height surface. Any previous emitter
// set is fully released first. An empty content list launches no emitters.
func (s *SmokeScene) Launch(width, height int) {
	s.releaseEmitters()

	s.width, s.height = width, height
	s.launched = true
	s.released = false

	s.emitters = entities.CreateSmokeEmitters(
		s.entityManager, s.resourceManager, s.config,
		float64(width), float64(height),
	)
	for _, id := range s.emitters {
		if emitter, ok := ecs.GetComponent[*components.EmitterComponent](s.entityManager, id); ok {
			s.textures = append(s.textures, emitter.Texture)
		}
	}

	if len(s.emitters) == 0 {
		log.Printf("[SmokeScene] No content, nothing to emit (%dx%d)", width, height)
		return
	}
	log.Printf("[SmokeScene] Launched %d emitters on %dx%d (intensity=%s lifetime=%s velocity=%s fade=%s spread=%s)",
		len(s.emitters), width, height,
		s.config.Intensity, s.config.Lifetime, s.config.InitialVelocity, s.config.FadeOut, s.config.SpreadRadius)
}

// Resize implements game.Resizable. The effect is re-launched only when the
// size actually changes; a released scene just records the new size.
func (s *SmokeScene) Resize(width, height int) {
	if s.launched && width == s.width && height == s.height {
		return
	}
	if s.released {
		s.width, s.height = width, height
		return
	}
	s.Launch(width, height)
}

// Stop ends emission on every emitter. Particles already in flight fade out
// over their remaining lifetime.
func (s *SmokeScene) Stop() {
	for _, id := range s.emitters {
		s.particleSystem.StopEmitter(id)
	}
	log.Printf("[SmokeScene] Stopped %d emitters", len(s.emitters))
}

// Release implements game.Releasable. It destroys every emitter and
// particle and returns the scene's texture references. Update and Draw do nothing afterwards
// until the next Launch.
func (s *SmokeScene) Release() {
	s.releaseEmitters()
	s.launched = false
	s.released = true
}

// releaseEmitters 立即销毁所有实体，并归还本场景持有的纹理引用
func (s *SmokeScene) releaseEmitters() {
	if s.entityManager.EntityCount() == 0 && len(s.emitters) == 0 && len(s.textures) == 0 {
		return
	}
	n := len(s.emitters)
	for _, id := range ecs.GetEntitiesWith1[*components.PositionComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
	removed := s.entityManager.RemoveMarkedEntities()
	s.emitters = nil
	for _, img := range s.textures {
		s.resourceManager.ReleaseTexture(img)
	}
	s.textures = nil
	log.Printf("[SmokeScene] Released %d emitters (%d entities)", n, removed)
}

// SetVisible shows or hides the particles. Emission is unaffected.
func (s *SmokeScene) SetVisible(visible bool) {
	s.visible = visible
}

// Visible reports whether particles are drawn.
func (s *SmokeScene) Visible() bool {
	return s.visible
}

// Launched reports whether an emitter set is active.
func (s *SmokeScene) Launched() bool {
	return s.launched
}

// Size returns the surface size of the last launch or resize.
func (s *SmokeScene) Size() (width, height int) {
	return s.width, s.height
}

// Emitters returns the IDs of the live emitters in content order.
func (s *SmokeScene) Emitters() []ecs.EntityID {
	return slices.Clone(s.emitters)
}

// EmitterCount returns the number of live emitters.
func (s *SmokeScene) EmitterCount() int {
	return len(s.emitters)
}

// ParticleCount returns the number of live particles across all emitters.
func (s *SmokeScene) ParticleCount() int {
	return s.particleSystem.ParticleCount()
}

// Update implements game.Scene.
func (s *SmokeScene) Update(deltaTime float64) {
	if !s.launched {
		return
	}
	s.particleSystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()

	// 已耗尽的发射器（Stop 之后）从集合中移除
	s.emitters = slices.DeleteFunc(s.emitters, func(id ecs.EntityID) bool {
		return !s.entityManager.IsAlive(id)
	})
}

// Draw implements game.Scene: background colour first, then particles.
func (s *SmokeScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.config.BackgroundColor)
	if !s.launched || !s.visible {
		return
	}
	s.renderSystem.DrawParticles(screen)
}
