package scoring

import (
	"cmp"
	"math"
	"slices"
)

// neutralSlope is the USGA slope of a course of standard difficulty.
const neutralSlope = 113

// maxStrokesPerHole caps allocation at two passes over the card.
const maxStrokesPerHole = 2

// roundHalfUp rounds to the nearest integer with .5 going up.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// CourseHandicap converts a handicap index to strokes for a course with the
// given slope. A slope of zero or less is treated as unknown and the index is
// simply rounded. Out of range indexes are used as given.
func CourseHandicap(index float64, slope int) int {
	if slope <= 0 {
		return roundHalfUp(index)
	}
	return roundHalfUp(index * float64(slope) / neutralSlope)
}

// NetScore subtracts the handicap from a gross total. The result is never
// below one stroke.
func NetScore(gross, handicap int) int {
	return max(1, gross-handicap)
}

// RangeHandicap is the share of a course handicap that applies to a partial
// round of holesInRange holes.
func RangeHandicap(courseHandicap, holesInRange int) int {
	if holesInRange >= HolesPerRound {
		return courseHandicap
	}
	return roundHalfUp(float64(courseHandicap*holesInRange) / HolesPerRound)
}

// AllocateHandicapStrokes spreads a course handicap over the holes in stroke
// index order, hardest first. Handicaps over 18 give a second stroke in the
// same order; no hole ever receives more than two. The result is indexed by
// the position of the hole in holes.
func AllocateHandicapStrokes(courseHandicap int, holes []Hole) [HolesPerRound]int {
	var out [HolesPerRound]int
	if courseHandicap <= 0 {
		return out
	}

	order := make([]int, 0, len(holes))
	for i := range holes {
		if i < HolesPerRound {
			order = append(order, i)
		}
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(holes[a].StrokeIndex, holes[b].StrokeIndex)
	})

	remaining := courseHandicap
	for pass := 0; pass < maxStrokesPerHole && remaining > 0; pass++ {
		for _, i := range order {
			if remaining == 0 {
				break
			}
			out[i]++
			remaining--
		}
	}
	return out
}

// StablefordPoints scores a net hole result against par.
func StablefordPoints(netHoleScore, par int) int {
	switch diff := netHoleScore - par; {
	case diff <= -3:
		return 5
	case diff == -2:
		return 4
	case diff == -1:
		return 3
	case diff == 0:
		return 2
	case diff == 1:
		return 1
	default:
		return 0
	}
}
