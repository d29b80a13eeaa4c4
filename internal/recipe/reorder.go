package recipe

// Reorder returns a copy of seq with the element at from moved to to. All other
// elements keep their relative order. Equal or out-of-range indices return an
// unchanged copy.
func Reorder[T any](seq []T, from, to int) []T {
	out := make([]T, len(seq))
	copy(out, seq)
	if from == to || from < 0 || to < 0 || from >= len(seq) || to >= len(seq) {
		return out
	}
	item := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = item
	return out
}
