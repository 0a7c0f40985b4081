package systems

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/smokefx/pkg/components"
	"github.com/decker502/smokefx/pkg/ecs"
)

// maxBatchVertices 单次 DrawTriangles 的顶点上限（uint16 索引）
const maxBatchVertices = math.MaxUint16 - 3

// additiveBlend 加法混合（发光效果）
var additiveBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// RenderSystem 渲染所有粒子
//
// 粒子纹理在创建发射器时已经着色，顶点颜色只携带透明度。
// 相同纹理和混合模式的粒子合并为一次 DrawTriangles 调用。
type RenderSystem struct {
	entityManager    *ecs.EntityManager
	particleVertices []ebiten.Vertex // 复用，避免每帧分配
	particleIndices  []uint16        // 复用，避免每帧分配
}

// NewRenderSystem 创建一个新的渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{
		entityManager:    em,
		particleVertices: make([]ebiten.Vertex, 0, 4000), // 预分配：1000 个粒子
		particleIndices:  make([]uint16, 0, 6000),
	}
}

type batchKey struct {
	img      *ebiten.Image
	additive bool
}

// DrawParticles draws every live particle onto screen. Batches are emitted
// in the order their texture first appears, normal blending before additive.
func (s *RenderSystem) DrawParticles(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[
		*components.PositionComponent,
		*components.ParticleComponent,
	](s.entityManager)
	if len(entities) == 0 {
		return
	}

	// 按 (纹理, 混合模式) 分组
	order := make([]batchKey, 0, 4)
	batches := make(map[batchKey][]ecs.EntityID)
	for _, id := range entities {
		particle, ok := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		if !ok || particle.Image == nil || particle.Alpha <= 0 {
			continue
		}
		key := batchKey{img: particle.Image, additive: particle.Additive}
		if _, exists := batches[key]; !exists {
			order = append(order, key)
		}
		batches[key] = append(batches[key], id)
	}

	// 先绘制 Normal，再绘制 Additive，保证发光效果叠加在上
	for _, additive := range []bool{false, true} {
		for _, key := range order {
			if key.additive == additive {
				s.drawBatch(screen, key, batches[key])
			}
		}
	}
}

func (s *RenderSystem) drawBatch(screen *ebiten.Image, key batchKey, ids []ecs.EntityID) {
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	if key.additive {
		op.Blend = additiveBlend
	}

	flush := func() {
		if len(s.particleVertices) > 0 {
			screen.DrawTriangles(s.particleVertices, s.particleIndices, key.img, op)
		}
		s.particleVertices = s.particleVertices[:0]
		s.particleIndices = s.particleIndices[:0]
	}

	s.particleVertices = s.particleVertices[:0]
	s.particleIndices = s.particleIndices[:0]
	for _, id := range ids {
		pos, hasPos := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		particle, hasParticle := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		if !hasPos || !hasParticle {
			continue
		}

		vertices := s.buildParticleVertices(particle, pos)
		if len(vertices) != 4 {
			continue
		}
		if len(s.particleVertices)+4 > maxBatchVertices {
			flush()
		}

		base := uint16(len(s.particleVertices))
		s.particleVertices = append(s.particleVertices, vertices...)
		s.particleIndices = append(s.particleIndices,
			base+0, base+1, base+2, // 第一个三角形
			base+1, base+3, base+2, // 第二个三角形
		)
	}
	flush()
}

// buildParticleVertices 为粒子生成 4 个顶点（左上、右上、左下、右下）
//
// 变换顺序：以纹理中心为原点旋转（弧度）→ 缩放 → 平移到粒子位置。
// 顶点 RGB 固定为 1，只有 Alpha 随粒子变化。
func (s *RenderSystem) buildParticleVertices(particle *components.ParticleComponent, pos *components.PositionComponent) []ebiten.Vertex {
	if particle.Image == nil {
		return nil
	}

	b := particle.Image.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	srcX0, srcY0 := float32(b.Min.X), float32(b.Min.Y)
	srcX1, srcY1 := float32(b.Max.X), float32(b.Max.Y)

	corners := [4][2]float64{
		{-w / 2, -h / 2}, // 左上
		{w / 2, -h / 2},  // 右上
		{-w / 2, h / 2},  // 左下
		{w / 2, h / 2},   // 右下
	}
	src := [4][2]float32{
		{srcX0, srcY0},
		{srcX1, srcY0},
		{srcX0, srcY1},
		{srcX1, srcY1},
	}

	sin, cos := math.Sincos(particle.Rotation)
	alpha := float32(particle.Alpha)

	vertices := make([]ebiten.Vertex, 4)
	for i, c := range corners {
		x := (c[0]*cos - c[1]*sin) * particle.Scale
		y := (c[0]*sin + c[1]*cos) * particle.Scale
		vertices[i] = ebiten.Vertex{
			DstX:   float32(pos.X + x),
			DstY:   float32(pos.Y + y),
			SrcX:   src[i][0],
			SrcY:   src[i][1],
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: alpha,
		}
	}
	return vertices
}
