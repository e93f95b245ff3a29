package routines

import (
	"sort"

	"github.com/2beens/liftlog/internal/gymstats/training"
)

// Merge combines two template lists keyed by name. Entries of b replace
// same-named entries of a in place; the result keeps first-seen order.
func Merge(a, b []training.RoutineTemplate) []training.RoutineTemplate {
	index := make(map[string]int, len(a)+len(b))
	merged := make([]training.RoutineTemplate, 0, len(a)+len(b))
	for _, list := range [][]training.RoutineTemplate{a, b} {
		for _, t := range list {
			if i, found := index[t.Name]; found {
				merged[i] = t.Clone()
				continue
			}
			index[t.Name] = len(merged)
			merged = append(merged, t.Clone())
		}
	}
	return merged
}

// MergeSorted is Merge followed by an alphabetical sort by name.
//
// Deprecated: templates keep arrival order, use Merge.
func MergeSorted(a, b []training.RoutineTemplate) []training.RoutineTemplate {
	merged := Merge(a, b)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Name < merged[j].Name
	})
	return merged
}
