package textutil

import "sort"

// Factor returns every divisor of n in ascending order, found by trial
// division up to the square root with both members of each divisor pair
// collected. n must be positive; anything else yields nil.
func Factor(n int64) []int64 {
	if n <= 0 {
		return nil
	}
	var divisors []int64
	for i := int64(1); i*i <= n; i++ {
		if n%i == 0 {
			divisors = append(divisors, i)
			if i != n/i {
				divisors = append(divisors, n/i)
			}
		}
	}
	sort.Slice(divisors, func(a, b int) bool { return divisors[a] < divisors[b] })
	return divisors
}
