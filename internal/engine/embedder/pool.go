package embedder

// meanPool averages the hidden states of each row over its unmasked
// positions. hidden is [rows, cols, dim] and mask is [rows, cols], both
// flat. A row with no unmasked positions pools to the zero vector.
func meanPool(hidden []float32, mask []int64, rows, cols, dim int) [][]float32 {
	out := make([][]float32, rows)
	for r := range rows {
		vec := make([]float32, dim)
		var n int
		for c := range cols {
			if mask[r*cols+c] == 0 {
				continue
			}
			n++
			tok := hidden[(r*cols+c)*dim : (r*cols+c+1)*dim]
			for d, h := range tok {
				vec[d] += h
			}
		}
		if n > 0 {
			inv := 1 / float32(n)
			for d := range vec {
				vec[d] *= inv
			}
		}
		out[r] = vec
	}
	return out
}
