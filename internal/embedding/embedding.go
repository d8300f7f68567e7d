// Package embedding maps text to fixed-dimension vectors by feature hashing.
// There is no vocabulary and no training: each token's djb2 hash picks a slot
// and a sign, so independently built vectors stay comparable as long as the
// hash constants and token rules match.
package embedding

import (
	"math"
	"strings"
)

// Dim is the fixed output dimensionality.
const Dim = 384

// Embed converts text into an L2-normalized Dim-length vector. The result is
// deterministic for identical input. Text with no surviving tokens yields the
// all-zero vector.
func Embed(text string) []float32 {
	vec := make([]float32, Dim)
	for _, tok := range Tokenize(text) {
		h := djb2(tok)
		idx := abs32(h) % Dim
		// sign comes from a different bit range so collisions on the
		// slot index don't force the same direction
		sign := float32(1)
		if abs32(h>>8)%2 != 0 {
			sign = -1
		}
		vec[idx] += sign
	}
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum > 0 {
		norm := float32(math.Sqrt(sum))
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// Tokenize lower-cases the input, strips everything outside [a-z0-9\s],
// splits on whitespace and drops single-character tokens.
func Tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteRune(' ')
		}
	}
	fields := strings.Fields(b.String())
	out := fields[:0]
	for _, f := range fields {
		if len(f) > 1 {
			out = append(out, f)
		}
	}
	return out
}

// Cosine returns the cosine similarity of two vectors. For the unit vectors
// Embed produces this is just the dot product, but magnitudes are normalized
// anyway so stored vectors of any scale score correctly.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// djb2 is the multiply-by-33 rolling hash wrapped to signed 32-bit
// arithmetic. Input is ASCII by the time it gets here.
func djb2(s string) int32 {
	h := int32(5381)
	for i := 0; i < len(s); i++ {
		h = (h << 5) + h + int32(s[i])
	}
	return h
}

// abs32 widens before negating so math.MinInt32 doesn't overflow.
func abs32(v int32) int {
	x := int64(v)
	if x < 0 {
		x = -x
	}
	return int(x)
}
