package model

import "github.com/couchcryptid/air-quality-predictor/internal/domain"

// SampleArtifact returns a small hand-built artifact of the given kind for
// local development and smoke tests. It is not a trained model.
func SampleArtifact(kind string) Artifact {
	a := Artifact{
		Name:     "air-quality-sample",
		Version:  "dev",
		Kind:     kind,
		Features: append([]string(nil), domain.FeatureNames[:]...),
	}
	switch kind {
	case KindTreeEnsemble:
		a.Trees = &TreeParams{
			Aggregation: AggregateMean,
			Trees: []TreeNode{
				{
					// co <= 2.0 ? 950 : (nox <= 200 ? 1150 : 1400)
					ChildrenLeft:  []int{1, leaf, 3, leaf, leaf},
					ChildrenRight: []int{2, leaf, 4, leaf, leaf},
					Feature:       []int{0, 0, 2, 0, 0},
					Threshold:     []float64{2.0, 0, 200, 0, 0},
					Value:         []float64{0, 950, 0, 1150, 1400},
				},
				{
					// benzene <= 10 ? 1000 : 1250
					ChildrenLeft:  []int{1, leaf, leaf},
					ChildrenRight: []int{2, leaf, leaf},
					Feature:       []int{1, 0, 0},
					Threshold:     []float64{10, 0, 0},
					Value:         []float64{0, 1000, 1250},
				},
			},
		}
	default:
		a.Kind = KindLinear
		a.Linear = &LinearParams{
			Intercept:    700,
			Coefficients: []float64{40, 15, 0.3, 0.8, -1.5, 1.0, 50},
		}
	}
	return a
}
