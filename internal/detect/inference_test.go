package detect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	demoModel  = "../../models/human_detection_model.json"
	demoScaler = "../../models/scaler.json"
)

func stumpForest() Forest {
	return Forest{
		NumFeatures:   3,
		Classes:       []int{0, 1},
		PositiveLabel: 1,
		Trees: []Tree{{Nodes: []Node{
			{Feature: 0, Threshold: 0, Left: 1, Right: 2},
			{Left: -1, Right: -1, Value: []float64{5, 0}},
			{Left: -1, Right: -1, Value: []float64{0, 5}},
		}}},
	}
}

func identityScaler() Scaler {
	return Scaler{Mean: []float64{0, 0, 0}, Scale: []float64{1, 1, 1}}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadInferenceContext_DemoArtifacts(t *testing.T) {
	ic, err := LoadInferenceContext(demoModel, demoScaler)
	require.NoError(t, err)
	assert.Equal(t, 3, ic.Trees())

	tests := []struct {
		name string
		f    Features
		want bool
	}{
		{"quiet carrier", Features{250e3, 13107, 42}, false},
		{"strong carrier", Features{250e3, 78643, 157}, true},
		{"noise only", Features{-1.2e5, 300, 34}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ic.Classify(tt.f)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadInferenceContext_Failures(t *testing.T) {
	good := writeFile(t, "scaler.json", `{"mean":[0,0,0],"scale":[1,1,1]}`)

	tests := []struct {
		name  string
		model string
	}{
		{"corrupt json", `{"n_features": 3, "trees": [`},
		{"wrong width", `{"n_features":2,"classes":[0,1],"positive_label":1,"trees":[{"nodes":[{"left":-1,"right":-1,"value":[1,0]}]}]}`},
		{"no trees", `{"n_features":3,"classes":[0,1],"positive_label":1,"trees":[]}`},
		{"positive label missing", `{"n_features":3,"classes":[0,2],"positive_label":1,"trees":[{"nodes":[{"left":-1,"right":-1,"value":[1,0]}]}]}`},
		{"leaf weights mismatch", `{"n_features":3,"classes":[0,1],"positive_label":1,"trees":[{"nodes":[{"left":-1,"right":-1,"value":[1]}]}]}`},
		{"child out of range", `{"n_features":3,"classes":[0,1],"positive_label":1,"trees":[{"nodes":[{"feature":0,"threshold":0,"left":1,"right":9},{"left":-1,"right":-1,"value":[1,0]}]}]}`},
		{"backward child", `{"n_features":3,"classes":[0,1],"positive_label":1,"trees":[{"nodes":[{"feature":0,"threshold":0,"left":0,"right":1},{"left":-1,"right":-1,"value":[1,0]}]}]}`},
		{"feature out of range", `{"n_features":3,"classes":[0,1],"positive_label":1,"trees":[{"nodes":[{"feature":3,"threshold":0,"left":1,"right":2},{"left":-1,"right":-1,"value":[1,0]},{"left":-1,"right":-1,"value":[0,1]}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadInferenceContext(writeFile(t, "model.json", tt.model), good)
			assert.ErrorIs(t, err, ErrModelLoad)
		})
	}

	t.Run("missing model", func(t *testing.T) {
		_, err := LoadInferenceContext(filepath.Join(t.TempDir(), "absent.json"), good)
		assert.ErrorIs(t, err, ErrModelLoad)
	})

	t.Run("missing scaler", func(t *testing.T) {
		_, err := LoadInferenceContext(demoModel, filepath.Join(t.TempDir(), "absent.json"))
		assert.ErrorIs(t, err, ErrModelLoad)
	})

	t.Run("scaler width mismatch", func(t *testing.T) {
		bad := writeFile(t, "scaler.json", `{"mean":[0,0],"scale":[1,1]}`)
		_, err := LoadInferenceContext(demoModel, bad)
		assert.ErrorIs(t, err, ErrModelLoad)
	})
}

func TestInferenceContext_ScalesBeforeClassifying(t *testing.T) {
	scaler := Scaler{Mean: []float64{100, 0, 0}, Scale: []float64{10, 1, 1}}
	ic, err := NewInferenceContext(scaler, stumpForest())
	require.NoError(t, err)

	// 95 scales to -0.5 (left), 105 to +0.5 (right)
	got, err := ic.Classify(Features{95, 0, 0})
	require.NoError(t, err)
	assert.False(t, got)

	got, err = ic.Classify(Features{105, 0, 0})
	require.NoError(t, err)
	assert.True(t, got)
}

func TestInferenceContext_AlwaysBooleanOnValidInput(t *testing.T) {
	ic, err := LoadInferenceContext(demoModel, demoScaler)
	require.NoError(t, err)

	for _, f := range []Features{{}, {-1e6, 0, 0}, {1e6, 1e9, 1e9}, {0, -5, -5}} {
		assert.NotPanics(t, func() {
			_, err := ic.Classify(f)
			assert.NoError(t, err)
		})
	}
}

func TestInferenceContext_WrongWidth(t *testing.T) {
	ic, err := NewInferenceContext(identityScaler(), stumpForest())
	require.NoError(t, err)

	_, err = ic.ClassifyVector([]float64{1, 2})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestScaler_ZeroScale(t *testing.T) {
	s := Scaler{Mean: []float64{1, 2, 3}, Scale: []float64{2, 0, 0.5}}
	assert.Equal(t, []float64{1, 5, 2}, s.Transform([]float64{3, 7, 4}))
}

func TestForest_AveragesTrees(t *testing.T) {
	f := Forest{
		NumFeatures:   3,
		Classes:       []int{0, 1},
		PositiveLabel: 1,
		Trees: []Tree{
			{Nodes: []Node{{Left: -1, Right: -1, Value: []float64{9, 1}}}},
			{Nodes: []Node{{Left: -1, Right: -1, Value: []float64{0, 4}}}},
			{Nodes: []Node{{Left: -1, Right: -1, Value: []float64{2, 2}}}},
		},
	}
	require.NoError(t, f.validate())

	proba := f.Proba([]float64{0, 0, 0})
	assert.InDelta(t, (0.9+0+0.5)/3, proba[0], 1e-12)
	assert.InDelta(t, (0.1+1+0.5)/3, proba[1], 1e-12)
	assert.Equal(t, 1, f.Predict([]float64{0, 0, 0}))
}

func TestForest_TieGoesToFirstClass(t *testing.T) {
	f := Forest{
		NumFeatures: 3,
		Classes:     []int{0, 1},
		Trees:       []Tree{{Nodes: []Node{{Left: -1, Right: -1, Value: []float64{1, 1}}}}},
	}
	assert.Equal(t, 0, f.Predict([]float64{0, 0, 0}))
}
