package reconstruct

import "sort"

// Stats holds basic descriptive statistics for a metric sampled across a
// page's text blocks.
type Stats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// ComputeStats returns descriptive statistics for the values. The zero
// Stats is returned for an empty input.
func ComputeStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}

	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}

	return Stats{
		Mean:   sum / float64(len(sorted)),
		Median: median,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Count:  len(sorted),
	}
}

// PageMetrics holds page-level font statistics used to infer heading
// levels and boldness where no semantic signal exists.
type PageMetrics struct {
	FontSize   Stats `json:"fontSize"`
	FontWeight Stats `json:"fontWeight"`
}
