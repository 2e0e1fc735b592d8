package domain

// spinDenominations are the batch sizes the slot endpoint accepts.
var spinDenominations = []int{1, 2, 3, 5, 10, 50}

// SpinBatch picks the largest accepted batch size not exceeding the
// remaining stamina, or 0 when no spin is possible.
func SpinBatch(stamina int) int {
	best := 0
	for _, d := range spinDenominations {
		if d <= stamina && d > best {
			best = d
		}
	}
	return best
}
