package entities

import (
	"github.com/decker502/smokefx/pkg/components"
	"github.com/decker502/smokefx/pkg/config"
	"github.com/decker502/smokefx/pkg/ecs"
	"github.com/decker502/smokefx/pkg/game"
)

// CreateSmokeEmitters creates one continuous emitter entity per content item
// of cfg, in content order. Every emitter is anchored at the centre of a
// width x height surface and starts emitting on the next ParticleSystem
// update.
//
// Parameters:
//   - em: EntityManager instance for creating entities
//   - rm: ResourceManager that owns the tinted textures
//   - cfg: effect configuration; an empty Content list creates no emitters
//   - width, height: surface size in pixels
//
// Returns:
//   - []ecs.EntityID: the emitter entity IDs, one per content item
//
// Example:
//
//	ids := CreateSmokeEmitters(entityManager, resourceManager, config.DefaultSmokeConfig(), 400, 300)
func CreateSmokeEmitters(em *ecs.EntityManager, rm *game.ResourceManager, cfg config.SmokeConfig, width, height float64) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, len(cfg.Content))

	for i, item := range cfg.Content {
		params := cfg.EmitterParams(item, width, height)

		emitterID := em.CreateEntity()
		ecs.AddComponent(em, emitterID, &components.PositionComponent{
			X: params.AnchorX,
			Y: params.AnchorY,
		})
		ecs.AddComponent(em, emitterID, &components.EmitterComponent{
			Params:          params,
			Texture:         rm.TextureFor(item, cfg.ParticleColor),
			ContentIndex:    i,
			Active:          true,
			NextSpawnTime:   0, // Spawn immediately
			ActiveParticles: make([]ecs.EntityID, 0),
		})

		ids = append(ids, emitterID)
	}

	return ids
}
