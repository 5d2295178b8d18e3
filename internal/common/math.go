package common

// Abs returns the absolute value of an integer
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampFloat limits v to [lo, hi]
func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates from a to b by t in [0, 1]
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// ReportInterval returns how often, in episodes, to log progress when the
// run should produce roughly parts reports. It is never below 1.
func ReportInterval(total, parts int) int {
	if parts <= 0 {
		return 1
	}
	if n := total / parts; n > 1 {
		return n
	}
	return 1
}
