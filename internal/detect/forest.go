package detect

import "fmt"

// Node is one entry of a decision tree. Leaves have Left < 0 and carry one
// weight per class in Value; splits send x[Feature] <= Threshold left.
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value,omitempty"`
}

func (n *Node) leaf() bool { return n.Left < 0 }

// Tree is a flattened binary decision tree rooted at Nodes[0].
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Forest is an ensemble of trees voting by averaged class distributions.
type Forest struct {
	NumFeatures   int    `json:"n_features"`
	Classes       []int  `json:"classes"`
	PositiveLabel int    `json:"positive_label"`
	Trees         []Tree `json:"trees"`
}

func (f *Forest) validate() error {
	if f.NumFeatures != NumFeatures {
		return fmt.Errorf("model expects %d features, extractor produces %d", f.NumFeatures, NumFeatures)
	}
	if len(f.Classes) < 2 {
		return fmt.Errorf("model has %d classes, need at least 2", len(f.Classes))
	}
	positive := false
	for _, c := range f.Classes {
		if c == f.PositiveLabel {
			positive = true
		}
	}
	if !positive {
		return fmt.Errorf("positive label %d is not a model class", f.PositiveLabel)
	}
	if len(f.Trees) == 0 {
		return fmt.Errorf("model has no trees")
	}
	for ti, t := range f.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("tree %d is empty", ti)
		}
		for ni, n := range t.Nodes {
			if n.leaf() {
				if len(n.Value) != len(f.Classes) {
					return fmt.Errorf("tree %d node %d: leaf has %d weights, want %d", ti, ni, len(n.Value), len(f.Classes))
				}
				continue
			}
			if n.Feature < 0 || n.Feature >= f.NumFeatures {
				return fmt.Errorf("tree %d node %d: feature %d out of range", ti, ni, n.Feature)
			}
			// children must point forward so evaluation always terminates
			if n.Left <= ni || n.Left >= len(t.Nodes) || n.Right <= ni || n.Right >= len(t.Nodes) {
				return fmt.Errorf("tree %d node %d: bad children %d/%d", ti, ni, n.Left, n.Right)
			}
		}
	}
	return nil
}

// leafFor walks the tree for x and returns the reached leaf.
func (t *Tree) leafFor(x []float64) *Node {
	i := 0
	for {
		n := &t.Nodes[i]
		if n.leaf() {
			return n
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// Proba returns the mean normalised class distribution over all trees.
func (f *Forest) Proba(x []float64) []float64 {
	proba := make([]float64, len(f.Classes))
	for i := range f.Trees {
		leaf := f.Trees[i].leafFor(x)
		var total float64
		for _, w := range leaf.Value {
			total += w
		}
		if total == 0 {
			continue
		}
		for c, w := range leaf.Value {
			proba[c] += w / total
		}
	}
	for c := range proba {
		proba[c] /= float64(len(f.Trees))
	}
	return proba
}

// Predict returns the class label with the highest mean probability; ties
// go to the earlier class.
func (f *Forest) Predict(x []float64) int {
	proba := f.Proba(x)
	best := 0
	for c := 1; c < len(proba); c++ {
		if proba[c] > proba[best] {
			best = c
		}
	}
	return f.Classes[best]
}
