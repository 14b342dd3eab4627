package tuner

import "sort"

// historySize bounds the rolling frequency history used for smoothing.
const historySize = 7

// history is a fixed-capacity circular buffer of accepted frequency
// estimates with an overwrite cursor. The cursor wraps; once full, each
// push evicts the oldest value.
type history struct {
	values [historySize]float64
	cursor int
	filled int
}

func (h *history) push(v float64) {
	h.values[h.cursor] = v
	h.cursor = (h.cursor + 1) % historySize
	if h.filled < historySize {
		h.filled++
	}
}

func (h *history) len() int {
	return h.filled
}

// median returns the running median of the estimates accepted so far. An
// even occupancy averages the two middle elements of the sorted copy.
func (h *history) median() float64 {
	if h.filled == 0 {
		return 0
	}

	sorted := make([]float64, h.filled)
	copy(sorted, h.values[:h.filled])
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}
