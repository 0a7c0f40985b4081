// Package components holds the pure-data ECS components of the smoke engine.
package components

// PositionComponent 实体在表面坐标系中的位置（像素，原点左上角）
type PositionComponent struct {
	X, Y float64
}
