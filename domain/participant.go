package domain

import "math"

// Participant is a leaderboard entry accumulating points.
type Participant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	School string `json:"school,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	Points int    `json:"points"`
}

// ClampPoints keeps point totals at or above zero.
func ClampPoints(points int) int {
	if points < 0 {
		return 0
	}
	return points
}

// AddPoints applies delta to points, saturating instead of wrapping, and
// clamps the result at zero.
func AddPoints(points, delta int) int {
	switch {
	case delta > 0 && points > math.MaxInt-delta:
		return math.MaxInt
	case delta < 0 && points < math.MinInt-delta:
		return 0
	}
	return ClampPoints(points + delta)
}

// NewParticipant carries the fields accepted when registering a participant.
type NewParticipant struct {
	Name   string `json:"name"`
	School string `json:"school,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}
