package detect

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrModelLoad is returned when a classifier artifact is missing or malformed.
var ErrModelLoad = errors.New("detect: model load failed")

// InferenceContext bundles the fitted scaler and classifier. It is built once
// at startup and is read-only afterwards, so it is safe to share.
type InferenceContext struct {
	scaler Scaler
	forest Forest
}

// NewInferenceContext validates and wraps an already-decoded model.
func NewInferenceContext(scaler Scaler, forest Forest) (*InferenceContext, error) {
	if err := forest.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelLoad, err)
	}
	if err := scaler.validate(forest.NumFeatures); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelLoad, err)
	}
	return &InferenceContext{scaler: scaler, forest: forest}, nil
}

// LoadInferenceContext reads the classifier and scaler JSON artifacts.
func LoadInferenceContext(modelPath, scalerPath string) (*InferenceContext, error) {
	var forest Forest
	if err := readJSON(modelPath, &forest); err != nil {
		return nil, err
	}
	var scaler Scaler
	if err := readJSON(scalerPath, &scaler); err != nil {
		return nil, err
	}
	return NewInferenceContext(scaler, forest)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrModelLoad, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: parse %s: %w", ErrModelLoad, path, err)
	}
	return nil
}

// Classify scales f and reports whether the model predicts the positive
// ("human present") label.
func (ic *InferenceContext) Classify(f Features) (bool, error) {
	return ic.ClassifyVector(f[:])
}

// ClassifyVector is Classify for an arbitrary slice; the width must match
// the model.
func (ic *InferenceContext) ClassifyVector(x []float64) (bool, error) {
	if len(x) != ic.forest.NumFeatures {
		return false, fmt.Errorf("%w: got %d features, model expects %d",
			ErrInvalidInput, len(x), ic.forest.NumFeatures)
	}
	scaled := ic.scaler.Transform(x)
	return ic.forest.Predict(scaled) == ic.forest.PositiveLabel, nil
}

// Trees reports the ensemble size, for the status line.
func (ic *InferenceContext) Trees() int { return len(ic.forest.Trees) }
