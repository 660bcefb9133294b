package dsp

// NextFastLen returns the smallest 7-smooth integer >= n, i.e. the smallest
// length whose prime factors are all in {2, 3, 5, 7}. Composite-radix FFTs
// run fastest at such lengths, so the padder rounds its minimum transform
// size up to one before padding.
func NextFastLen(n int) int {
	if n <= 1 {
		return 1
	}
	for candidate := n; ; candidate++ {
		if isSmooth(candidate) {
			return candidate
		}
	}
}

func isSmooth(n int) bool {
	for _, p := range [...]int{2, 3, 5, 7} {
		for n%p == 0 {
			n /= p
		}
	}
	return n == 1
}
