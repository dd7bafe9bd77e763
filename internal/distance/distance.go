package distance

import (
	"math"

	"chromactl/internal/domain"
)

// Func returns the distance between two equal-length vectors.
type Func func(a, b []float32) float32

// For returns the distance function for space.
func For(space domain.Space) (Func, error) {
	switch space {
	case domain.SpaceL2, "":
		return SquaredL2, nil
	case domain.SpaceCosine:
		return Cosine, nil
	case domain.SpaceIP:
		return InnerProduct, nil
	}
	return nil, &domain.SpaceError{Value: string(space)}
}

// SquaredL2 is the squared euclidean distance.
func SquaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// InnerProduct is 1 - a·b.
func InnerProduct(a, b []float32) float32 {
	return 1 - dot(a, b)
}

// Cosine is 1 - cos(a, b). A zero vector is at distance 1 from everything.
func Cosine(a, b []float32) float32 {
	na, nb := norm(a), norm(b)
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot(a, b)/(na*nb)
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func norm(a []float32) float32 {
	return float32(math.Sqrt(float64(dot(a, a))))
}
