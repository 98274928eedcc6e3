// Package timing divides an integer span of time units across weighted parts.
package timing

import (
	"math"
	"sort"
)

// Split divides total units across weights. Each part gets at least floor
// units when that is feasible, otherwise an equal share. Shares are truncated
// to whole units and the leftover units go to the largest fractional parts,
// ties to the earlier index, so the result sums to total exactly and no part
// drops under the floor. Every part is at least one unit.
//
// Split returns nil when there are more parts than units.
func Split(total int, weights []float64, floor int) []int {
	n := len(weights)
	if n == 0 || total < n {
		return nil
	}
	if floor < 1 {
		floor = 1
	}
	if floor*n > total {
		floor = total / n
	}

	shares := waterFill(float64(total), weights, float64(floor))

	out := make([]int, n)
	frac := make([]float64, n)
	sum := 0
	for i, v := range shares {
		u := int(math.Floor(v))
		if u < floor {
			u = floor
		}
		out[i] = u
		frac[i] = v - float64(u)
		sum += u
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return frac[order[a]] > frac[order[b]] })

	for k := 0; sum < total; k = (k + 1) % n {
		out[order[k]]++
		sum++
	}
	// Float error can leave one unit too many; take it from the largest part.
	for sum > total {
		j := largest(out)
		if out[j] <= floor {
			return nil
		}
		out[j]--
		sum--
	}
	return out
}

// waterFill distributes total proportionally to weights, pinning any part
// that would fall under floor to exactly floor and re-spreading the rest.
func waterFill(total float64, weights []float64, floor float64) []float64 {
	n := len(weights)
	w := make([]float64, n)
	for i, x := range weights {
		if x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x) {
			w[i] = x
		}
	}

	pinned := make([]bool, n)
	out := make([]float64, n)
	for {
		remaining := total
		sumW := 0.0
		free := 0
		for i := range w {
			if pinned[i] {
				remaining -= floor
				continue
			}
			sumW += w[i]
			free++
		}
		if free == 0 {
			return out
		}

		for i := range w {
			switch {
			case pinned[i]:
				out[i] = floor
			case sumW > 0:
				out[i] = remaining * w[i] / sumW
			default:
				out[i] = remaining / float64(free)
			}
		}

		changed := false
		for i := range w {
			if !pinned[i] && out[i] < floor {
				pinned[i] = true
				changed = true
			}
		}
		if !changed {
			return out
		}
	}
}

// largest returns the index of the biggest part; ties go to the later index.
func largest(parts []int) int {
	best := 0
	for i, v := range parts {
		if v >= parts[best] {
			best = i
		}
	}
	return best
}
