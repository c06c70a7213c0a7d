package model

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/air-quality-predictor/internal/domain"
)

// Tree ensemble aggregation modes.
const (
	AggregateMean = "mean" // random forest
	AggregateSum  = "sum"  // gradient boosting
)

// leaf marks a node without children.
const leaf = -1

// TreeParams holds a regression tree ensemble in flat array form.
type TreeParams struct {
	Aggregation string     `json:"aggregation"`
	BaseScore   float64    `json:"base_score"`
	Trees       []TreeNode `json:"trees"`
}

// TreeNode is one regression tree. Node i splits on Feature[i] at
// Threshold[i], going left when x <= threshold. Leaves have
// ChildrenLeft[i] == -1 and predict Value[i].
type TreeNode struct {
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
}

// TreeEnsemble is a compiled tree ensemble.
type TreeEnsemble struct {
	info      domain.ModelInfo
	mean      bool
	baseScore float64
	trees     []TreeNode
}

func newTreeEnsemble(info domain.ModelInfo, p TreeParams) (*TreeEnsemble, error) {
	var mean bool
	switch p.Aggregation {
	case AggregateMean, "":
		mean = true
	case AggregateSum:
	default:
		return nil, fmt.Errorf("unsupported aggregation %q", p.Aggregation)
	}
	if len(p.Trees) == 0 {
		return nil, errors.New("tree ensemble has no trees")
	}
	if !finite(p.BaseScore) {
		return nil, errors.New("base_score is not finite")
	}
	for i, t := range p.Trees {
		if err := validateTree(t); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return &TreeEnsemble{info: info, mean: mean, baseScore: p.BaseScore, trees: p.Trees}, nil
}

// validateTree checks array lengths and index ranges. Children must come after
// their parent, which rules out cycles and bounds every walk.
func validateTree(t TreeNode) error {
	n := len(t.Value)
	if n == 0 {
		return errors.New("empty tree")
	}
	if len(t.ChildrenLeft) != n || len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n {
		return errors.New("node arrays differ in length")
	}
	for i := 0; i < n; i++ {
		left, right := t.ChildrenLeft[i], t.ChildrenRight[i]
		if left == leaf {
			if right != leaf {
				return fmt.Errorf("node %d has only a right child", i)
			}
			if !finite(t.Value[i]) {
				return fmt.Errorf("node %d leaf value is not finite", i)
			}
			continue
		}
		if left <= i || left >= n || right <= i || right >= n {
			return fmt.Errorf("node %d has child out of range", i)
		}
		if f := t.Feature[i]; f < 0 || f >= domain.NumFeatures {
			return fmt.Errorf("node %d splits on unknown feature %d", i, f)
		}
		if !finite(t.Threshold[i]) {
			return fmt.Errorf("node %d threshold is not finite", i)
		}
	}
	return nil
}

// Predict walks every tree and aggregates the leaf values.
func (e *TreeEnsemble) Predict(f domain.Features) (float64, error) {
	var sum float64
	for i := range e.trees {
		sum += e.trees[i].eval(f)
	}
	if e.mean {
		sum /= float64(len(e.trees))
	}
	return e.baseScore + sum, nil
}

func (e *TreeEnsemble) Info() domain.ModelInfo { return e.info }

func (t *TreeNode) eval(f domain.Features) float64 {
	node := 0
	for t.ChildrenLeft[node] != leaf {
		if f[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}

// Trees reports the number of trees in the ensemble.
func (e *TreeEnsemble) Trees() int { return len(e.trees) }
