package utils

import (
	"sort"

	"github.com/facette/natsort"
)

// NaturalStrings orders "scenario2" before "scenario10".
type NaturalStrings []string

func (data NaturalStrings) Less(i, j int) bool {
	return natsort.Compare(data[i], data[j])
}

func (data NaturalStrings) Len() int {
	return len(data)
}

func (data NaturalStrings) Swap(i, j int) {
	data[i], data[j] = data[j], data[i]
}

func SortedKeys[V any](m map[string]V) []string {
	keys := make(NaturalStrings, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Sort(keys)
	return keys
}
