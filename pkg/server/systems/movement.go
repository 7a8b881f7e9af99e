package systems

import (
	"math"

	"emberhold/pkg/shared/components"
	"emberhold/pkg/shared/ecs"
)

// MovementSystem moves entities from their input and keeps them inside the
// arena.
type MovementSystem struct {
	World         *ecs.World
	Width, Height float64
}

func NewMovementSystem(world *ecs.World, width, height float64) *MovementSystem {
	return &MovementSystem{
		World:  world,
		Width:  width,
		Height: height,
	}
}

func (s *MovementSystem) Update(dt float64) {
	for _, id := range ecs.Query[components.InputComponent](s.World) {
		s.UpdateEntityMovement(id)
	}
}

func (s *MovementSystem) UpdateEntityMovement(id ecs.Entity) {
	input, _ := ecs.GetComponent[components.InputComponent](s.World, id)
	transform, _ := ecs.GetComponent[components.TransformComponent](s.World, id)
	phys, _ := ecs.GetComponent[components.PhysicsComponent](s.World, id)

	if input == nil || transform == nil || phys == nil {
		return
	}

	dx, dy := 0.0, 0.0
	if input.Up {
		dy = -1
	}
	if input.Down {
		dy = 1
	}
	if input.Left {
		dx = -1
	}
	if input.Right {
		dx = 1
	}

	// Normalize diagonal movement
	if dx != 0 && dy != 0 {
		dx *= 0.7071
		dy *= 0.7071
	}

	transform.X = clamp(transform.X+dx*phys.Speed, 0, s.Width)
	transform.Y = clamp(transform.Y+dy*phys.Speed, 0, s.Height)
	if input.MouseX != transform.X || input.MouseY != transform.Y {
		transform.Rotation = math.Atan2(input.MouseY-transform.Y, input.MouseX-transform.X)
	}

	s.World.AddComponent(id, *transform)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
