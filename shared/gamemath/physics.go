package gamemath

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

// Integrate advances a velocity under constant acceleration and returns the
// new velocity together with the displacement over dt.
func Integrate(vel, accel, dt float64) (newVel, delta float64) {
	newVel = vel + accel*dt
	return newVel, (vel + newVel) / 2 * dt
}
