package vmath

import "math"

// Vec2 is a float32 2D vector, laid out like the kernel's vec2f
type Vec2 struct {
	X, Y float32
}

// Zero2 is the zero vector
var Zero2 = Vec2{}

// UnitX is the fallback direction for degenerate normalization
var UnitX = Vec2{X: 1}

func V2(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Scale(v Vec2, s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func V2Dot(a, b Vec2) float32 {
	return a.X*b.X + a.Y*b.Y
}

func V2MagSq(v Vec2) float32 {
	return v.X*v.X + v.Y*v.Y
}

func V2Mag(v Vec2) float32 {
	return float32(math.Sqrt(float64(V2MagSq(v))))
}

// V2DistSq returns squared distance without sqrt
func V2DistSq(a, b Vec2) float32 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

func V2Dist(a, b Vec2) float32 {
	return float32(math.Sqrt(float64(V2DistSq(a, b))))
}

// V2IsFinite reports whether both components are finite
func V2IsFinite(v Vec2) bool {
	return IsFinite(v.X) && IsFinite(v.Y)
}

// V2Normalize returns the unit vector of v
// Zero-length or non-finite input yields fallback instead of NaN
func V2Normalize(v, fallback Vec2) Vec2 {
	mag := V2Mag(v)
	if mag == 0 || !IsFinite(mag) {
		return fallback
	}
	inv := 1 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

// V2WithMagnitude returns v rescaled to length mag, using fallback direction when v is degenerate
func V2WithMagnitude(v Vec2, mag float32, fallback Vec2) Vec2 {
	return V2Scale(V2Normalize(v, fallback), mag)
}

// V2ClampMagnitude limits vector length to maxMag while preserving direction
// Zero vector stays zero, a non-positive cap yields zero
func V2ClampMagnitude(v Vec2, maxMag float32) Vec2 {
	if !V2IsFinite(v) || maxMag <= 0 {
		return Zero2
	}
	mag := V2Mag(v)
	if mag <= maxMag || mag == 0 {
		return v
	}
	scale := maxMag / mag
	out := Vec2{v.X * scale, v.Y * scale}
	// float32 rounding can land one ulp above the cap
	for V2Mag(out) > maxMag {
		scale = math.Nextafter32(scale, 0)
		out = Vec2{v.X * scale, v.Y * scale}
	}
	return out
}

// V2Rotate rotates v counter-clockwise by angle radians
func V2Rotate(v Vec2, angle float32) Vec2 {
	s, c := math.Sincos(float64(angle))
	cs, sn := float32(c), float32(s)
	return Vec2{v.X*cs - v.Y*sn, v.X*sn + v.Y*cs}
}

// V2Lerp moves a toward b by fraction t
func V2Lerp(a, b Vec2, t float32) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// V2Centroid returns the mean of points, zero for an empty set
func V2Centroid(points []Vec2) Vec2 {
	if len(points) == 0 {
		return Zero2
	}
	var sum Vec2
	for _, p := range points {
		sum.X += p.X
		sum.Y += p.Y
	}
	inv := 1 / float32(len(points))
	return Vec2{sum.X * inv, sum.Y * inv}
}
