package store

// Award applies a point delta to a balance, flooring at zero. Every point
// mutation goes through it: +ProgressPoints for a first same-day progress
// log, -1 per decay hit in the slow tick.
func Award(points, delta int) int {
	points += delta
	if points < 0 {
		return 0
	}
	return points
}
