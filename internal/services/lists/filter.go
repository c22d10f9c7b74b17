package lists

import (
	"strings"

	"github.com/hashicorp/go-bexpr"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/terraconstructs/tasklists/internal/apperr"
)

const filterCacheSize = 256

// filterCache keeps compiled go-bexpr evaluators keyed by expression text.
type filterCache struct {
	evaluators *lru.Cache[string, *bexpr.Evaluator]
}

func newFilterCache() *filterCache {
	cache, err := lru.New[string, *bexpr.Evaluator](filterCacheSize)
	if err != nil {
		// only fails for a non-positive size
		panic(err)
	}
	return &filterCache{evaluators: cache}
}

// compile returns the evaluator for expr. An empty expression yields nil,
// which matches everything.
func (c *filterCache) compile(expr string) (*bexpr.Evaluator, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}
	if evaluator, ok := c.evaluators.Get(expr); ok {
		return evaluator, nil
	}

	evaluator, err := bexpr.CreateEvaluator(expr)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInvalidInput, err, "invalid filter expression").With("filter", expr)
	}
	c.evaluators.Add(expr, evaluator)
	return evaluator, nil
}

// filterFields is the datum a filter expression is evaluated against.
func filterFields(view *ListView) map[string]any {
	return map[string]any{
		"id":           view.ID,
		"name":         view.Name,
		"icon":         view.Icon,
		"color":        view.Color,
		"role":         view.Role.String(),
		"owner_id":     view.OwnerID,
		"shared_count": len(view.SharedUsers),
	}
}

func matches(evaluator *bexpr.Evaluator, view *ListView) (bool, error) {
	if evaluator == nil {
		return true, nil
	}
	ok, err := evaluator.Evaluate(filterFields(view))
	if err != nil {
		return false, apperr.Wrap(apperr.KindInvalidInput, err, "filter cannot be evaluated")
	}
	return ok, nil
}
