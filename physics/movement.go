package physics

import (
	"github.com/lixenwraith/vi-boids/vmath"
)

// integrateVelocity adds force and caps the result at maxSpeed
// Non-finite intermediate results collapse to zero velocity
func integrateVelocity(vel, force vmath.Vec2, maxSpeed float32) vmath.Vec2 {
	if !vmath.V2IsFinite(force) {
		force = vmath.Zero2
	}
	return vmath.V2ClampMagnitude(vmath.V2Add(vel, force), maxSpeed)
}

// advance integrates position by one tick of velocity
func advance(pos, vel vmath.Vec2) vmath.Vec2 {
	return vmath.V2Add(pos, vel)
}

// wrapPosition teleports agents past the toroidal bound to the opposite edge
func wrapPosition(pos vmath.Vec2, bound float32) vmath.Vec2 {
	if pos.X > bound {
		pos.X = -bound
	}
	if pos.Y > bound {
		pos.Y = -bound
	}
	if pos.X < -bound {
		pos.X = bound
	}
	if pos.Y < -bound {
		pos.Y = bound
	}
	return pos
}

// reflectClamp pins position to the arena and flips the crossing velocity component
func reflectClamp(pos, vel vmath.Vec2, bound float32) (vmath.Vec2, vmath.Vec2) {
	if pos.X > bound {
		pos.X = bound
		vel.X = -vel.X
	}
	if pos.X < -bound {
		pos.X = -bound
		vel.X = -vel.X
	}
	if pos.Y > bound {
		pos.Y = bound
		vel.Y = -vel.Y
	}
	if pos.Y < -bound {
		pos.Y = -bound
		vel.Y = -vel.Y
	}
	return pos, vel
}

// reflectInward points the velocity component back inside without moving the agent
func reflectInward(pos, vel vmath.Vec2, bound float32) vmath.Vec2 {
	if pos.X > bound {
		vel.X = -vmath.Abs(vel.X)
	}
	if pos.X < -bound {
		vel.X = vmath.Abs(vel.X)
	}
	if pos.Y > bound {
		vel.Y = -vmath.Abs(vel.Y)
	}
	if pos.Y < -bound {
		vel.Y = vmath.Abs(vel.Y)
	}
	return vel
}
