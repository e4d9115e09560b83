package numbers

import "math"

// RoundPlaces rounds v to the given number of decimal places.
func RoundPlaces(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}

// RoundNone rounds v to the given number of decimal places, but also permits
// a nil value. The result aliases nothing; a new pointer is returned.
func RoundNone(v *float64, places int) *float64 {
	if v == nil {
		return nil
	}
	r := RoundPlaces(*v, places)
	return &r
}

// RoundVector applies RoundNone to every element of vec.
func RoundVector(vec []*float64, places int) []*float64 {
	out := make([]*float64, len(vec))
	for i, v := range vec {
		out[i] = RoundNone(v, places)
	}
	return out
}
