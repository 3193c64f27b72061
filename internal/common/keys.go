package common

import (
	"cmp"
	"slices"

	"github.com/duke-git/lancet/v2/maputil"
)

// SortedKeys returns the keys of m in ascending order.
// Every list the planner emits from a map goes through here.
func SortedKeys[M ~map[K]V, K cmp.Ordered, V any](m M) []K {
	keys := maputil.Keys(map[K]V(m))
	slices.Sort(keys)

	return keys
}
