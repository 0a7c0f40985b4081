package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	// ID从1开始
	if id1 != 1 || id2 != 2 {
		t.Errorf("Entity IDs = %d, %d, want 1, 2", id1, id2)
	}
	if em.EntityCount() != 2 {
		t.Errorf("EntityCount() = %d, want 2", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{X: 100, Y: 200})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	if pos := comp.(*testPositionComponent); pos.X != 100 || pos.Y != 200 {
		t.Errorf("Component data mismatch, got (%f, %f)", pos.X, pos.Y)
	}

	// 泛型与反射版本看到同一个组件
	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok || pos != comp {
		t.Error("generic GetComponent should return the same pointer")
	}
	if _, ok := GetComponent[*testVelocityComponent](em, id); ok {
		t.Error("missing component should not be found")
	}
}

func TestAddComponentToUnknownEntity(t *testing.T) {
	em := NewEntityManager()
	AddComponent(em, 99, &testPositionComponent{})
	if HasComponent[*testPositionComponent](em, 99) {
		t.Error("component added to a non-existent entity")
	}
	if em.IsAlive(99) {
		t.Error("IsAlive(99) = true")
	}
}

func TestRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testPositionComponent{})
	AddComponent(em, id, &testVelocityComponent{})

	RemoveComponent[*testVelocityComponent](em, id)

	if HasComponent[*testVelocityComponent](em, id) {
		t.Error("velocity should be removed")
	}
	if !HasComponent[*testPositionComponent](em, id) {
		t.Error("position should survive")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	em.DestroyEntity(id)

	// 标记后实体仍然存在
	if !em.IsAlive(id) {
		t.Error("Entity should still exist before RemoveMarkedEntities")
	}
	if em.PendingDestroyCount() != 1 {
		t.Errorf("PendingDestroyCount() = %d, want 1", em.PendingDestroyCount())
	}

	if n := em.RemoveMarkedEntities(); n != 1 {
		t.Errorf("RemoveMarkedEntities() = %d, want 1", n)
	}
	if em.IsAlive(id) || HasComponent[*testPositionComponent](em, id) {
		t.Error("Entity should be removed")
	}
	if em.PendingDestroyCount() != 0 {
		t.Error("destroy queue should be empty")
	}
}

func TestDestroyTwice(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.DestroyEntity(id)
	em.DestroyEntity(id)

	if n := em.RemoveMarkedEntities(); n != 1 {
		t.Errorf("RemoveMarkedEntities() = %d, want 1", n)
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	both := make([]EntityID, 0)
	for i := 0; i < 5; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPositionComponent{X: float64(i)})
		if i%2 == 0 {
			AddComponent(em, id, &testVelocityComponent{})
			both = append(both, id)
		}
	}

	if got := GetEntitiesWith1[*testPositionComponent](em); len(got) != 5 {
		t.Errorf("GetEntitiesWith1 = %v, want 5 entities", got)
	}

	got := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if !reflect.DeepEqual(got, both) {
		t.Errorf("GetEntitiesWith2 = %v, want %v (sorted)", got, both)
	}

	// 反射版本结果一致
	viaReflect := em.GetEntitiesWith(
		reflect.TypeOf(&testPositionComponent{}),
		reflect.TypeOf(&testVelocityComponent{}),
	)
	if !reflect.DeepEqual(viaReflect, both) {
		t.Errorf("GetEntitiesWith = %v, want %v", viaReflect, both)
	}
}
