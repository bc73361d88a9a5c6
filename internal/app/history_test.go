package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalHistory(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		add   []float64
		want  []float64
	}{
		{"empty", 3, nil, nil},
		{"partial", 3, []float64{0.1, 0.2}, []float64{0.1, 0.2}},
		{"drops oldest", 3, []float64{1, 2, 3, 4, 5}, []float64{3, 4, 5}},
		{"limit clamped to one", 0, []float64{1, 2}, []float64{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSignalHistory(tt.limit)
			for _, v := range tt.add {
				h.Add(v)
			}
			assert.Equal(t, tt.want, h.Samples())
			assert.Equal(t, len(tt.want), h.Len())
		})
	}
}

func TestSignalHistory_SamplesIsACopy(t *testing.T) {
	h := NewSignalHistory(2)
	h.Add(1)
	s := h.Samples()
	s[0] = 99
	assert.Equal(t, []float64{1}, h.Samples())
}
