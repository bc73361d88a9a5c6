package detect

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Scaler standardises features with parameters fitted at training time.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s *Scaler) validate(width int) error {
	if len(s.Mean) != width || len(s.Scale) != width {
		return fmt.Errorf("scaler has %d means and %d scales, expected %d",
			len(s.Mean), len(s.Scale), width)
	}
	return nil
}

// Transform returns (x - mean) / scale. A zero scale leaves the centred
// value unscaled, matching constant features at fit time.
func (s *Scaler) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	floats.SubTo(out, x, s.Mean)
	for i, sc := range s.Scale {
		if sc != 0 {
			out[i] /= sc
		}
	}
	return out
}
