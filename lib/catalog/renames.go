package catalog

import (
	"github.com/antzucaro/matchr"
)

// RenameHint pairs a removed product with an added product whose name
// looks like an edited version of it.
type RenameHint struct {
	Removed    Product
	Added      Product
	Similarity float64
}

// SuggestRenames greedily pairs each removed product with the most similar
// unpaired added product (Jaro-Winkler over names), keeping only pairs at
// or above threshold. The change set itself is never altered, identity
// stays exact-name.
func SuggestRenames(cs ChangeSet, threshold float64) []RenameHint {
	var result []RenameHint
	paired := make(map[int]struct{})

	for _, removed := range cs.Removed {
		best := -1
		var bestSimilarity float64

		for i, added := range cs.Added {
			if _, ok := paired[i]; ok {
				continue
			}
			similarity := matchr.JaroWinkler(removed.Name, added.Name, false)
			if similarity > bestSimilarity {
				bestSimilarity = similarity
				best = i
			}
		}

		if best < 0 || bestSimilarity < threshold {
			continue
		}
		paired[best] = struct{}{}
		result = append(result, RenameHint{
			Removed:    removed,
			Added:      cs.Added[best],
			Similarity: bestSimilarity,
		})
	}

	return result
}
