package service

// levenshtein is the classic edit distance: insertion, deletion and
// substitution all cost 1. Runs over runes.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	al, bl := len(ra), len(rb)
	if al == 0 {
		return bl
	}
	if bl == 0 {
		return al
	}

	// two rows are enough
	prev := make([]int, bl+1)
	cur := make([]int, bl+1)
	for j := 0; j <= bl; j++ {
		prev[j] = j
	}

	for i := 1; i <= al; i++ {
		cur[0] = i
		for j := 1; j <= bl; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			// вставка / удаление / замена
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[bl]
}

func min3(a, b, c int) int { return min(min(a, b), c) }

// Similarity returns 1 - distance/max(len(a), len(b)), a value in [0..1].
// Two empty strings are identical. Callers normalize both sides first.
func Similarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	m := max(la, lb)
	if m == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(m)
}
