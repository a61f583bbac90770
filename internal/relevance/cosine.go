package relevance

import "math"

// Cosine returns the cosine similarity of two term vectors rounded to four
// decimal places. Missing terms weigh zero. If either vector has zero
// magnitude the similarity is 0.
func Cosine(a, b Vector) float64 {
	small, large := a, b
	if len(large) < len(small) {
		small, large = large, small
	}

	var dot float64
	for _, t := range small.Terms() {
		if w, ok := large[t]; ok {
			dot += small[t] * w
		}
	}

	ma, mb := magnitude(a), magnitude(b)
	if ma == 0 || mb == 0 {
		return 0
	}
	return round(dot/(ma*mb), 4)
}

// Percent converts a 0..1 similarity into a percentage with one decimal.
func Percent(similarity float64) float64 {
	return round(similarity*100, 1)
}

func magnitude(v Vector) float64 {
	var sum float64
	for _, t := range v.Terms() {
		sum += v[t] * v[t]
	}
	return math.Sqrt(sum)
}

// round rounds half away from zero.
func round(x float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(x*p) / p
}
