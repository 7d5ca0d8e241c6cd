package classifier

// Vector is a sparse feature vector of fixed dimension. Indices are strictly increasing.
type Vector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// IsZero reports whether every entry is zero.
func (v Vector) IsZero() bool {
	for _, value := range v.Values {
		if value != 0 {
			return false
		}
	}
	return true
}

// Dot returns the dot product with a dense weight row.
func (v Vector) Dot(weights []float64) float64 {
	var sum float64
	for i, idx := range v.Indices {
		sum += v.Values[i] * weights[idx]
	}
	return sum
}
