package catalog

// Diff compares the previous catalog to the current one.
//
// Products are matched by exact name. Added and Removed keep the order
// (and any duplicates) of the catalog they come from, PriceChanges holds
// one entry per shared name in the order the name first appears in current.
// Prices of shared names are resolved with Catalog.Index.
func Diff(previous, current Catalog) ChangeSet {
	prevIndex := previous.Index()
	currIndex := current.Index()

	var cs ChangeSet
	for _, p := range current {
		if _, ok := prevIndex[p.Name]; !ok {
			cs.Added = append(cs.Added, p)
		}
	}
	for _, p := range previous {
		if _, ok := currIndex[p.Name]; !ok {
			cs.Removed = append(cs.Removed, p)
		}
	}

	seen := make(map[string]struct{}, len(current))
	for _, p := range current {
		if _, dup := seen[p.Name]; dup {
			continue
		}
		seen[p.Name] = struct{}{}

		old, ok := prevIndex[p.Name]
		if !ok {
			continue
		}
		resolved := currIndex[p.Name]
		if old.Price.Equal(resolved.Price) {
			continue
		}
		cs.PriceChanges = append(cs.PriceChanges, PriceChange{
			Name:     p.Name,
			OldPrice: old.Price,
			NewPrice: resolved.Price,
		})
	}

	return cs
}
