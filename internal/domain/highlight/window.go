package highlight

// BestWindow returns the start index of the contiguous window of length l
// whose scores sum to the maximum. Valid starts are [0, len(scores)-l]
// inclusive; ties go to the lowest index, so the result is deterministic for
// a given input. l must satisfy 1 <= l <= len(scores).
//
// Window sums are maintained with a sliding accumulator, so the scan is O(N)
// rather than O(N*l).
func BestWindow(scores []float64, l int) int {
	n := len(scores)
	if l >= n {
		return 0
	}

	var sum float64
	for i := 0; i < l; i++ {
		sum += scores[i]
	}

	best := 0
	bestSum := sum
	for i := 1; i+l <= n; i++ {
		sum += scores[i+l-1] - scores[i-1]
		if sum > bestSum {
			best = i
			bestSum = sum
		}
	}
	return best
}
