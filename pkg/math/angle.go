package math

import "math"

// Conversion factors between degrees and radians.
const (
	Deg2Rad = float32(math.Pi / 180)
	Rad2Deg = float32(180 / math.Pi)
)

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

// repeat wraps t into [0, length].
func repeat(t, length float32) float32 {
	return Clamp(t-float32(math.Floor(float64(t/length)))*length, 0, length)
}

// DeltaAngle returns the shortest signed difference from current to target
// in degrees, in the range (-180, 180].
func DeltaAngle(current, target float32) float32 {
	delta := repeat(target-current, 360)
	if delta > 180 {
		delta -= 360
	}
	return delta
}

// moveTowards moves current toward target by at most maxDelta.
func moveTowards(current, target, maxDelta float32) float32 {
	if float32(math.Abs(float64(target-current))) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// MoveTowardsAngle is moveTowards for angles in degrees. It takes the short
// way around and never overshoots target.
func MoveTowardsAngle(current, target, maxDelta float32) float32 {
	delta := DeltaAngle(current, target)
	if -maxDelta < delta && delta < maxDelta {
		return target
	}
	return moveTowards(current, current+delta, maxDelta)
}

// Abs returns |v|.
func Abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
