package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Availability int

const (
	InStock Availability = iota
	OutOfStock
)

func (a Availability) String() string {
	switch a {
	case InStock:
		return "In Stock"
	case OutOfStock:
		return "Out of Stock"
	}
	return fmt.Sprintf("Availability(%d)", int(a))
}

func ParseAvailability(text string) (Availability, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "in stock":
		return InStock, nil
	case "out of stock":
		return OutOfStock, nil
	}
	return 0, fmt.Errorf("unknown availability %q", text)
}

type Product struct {
	// the identity key of a product across catalogs
	Name         string
	Price        decimal.Decimal
	Availability Availability
}

// Catalog is one point-in-time extraction of products, in the order they
// were extracted or stored. Names are not guaranteed to be unique.
type Catalog []Product

// Index folds the catalog into a lookup by name, when a name occurs more
// than once the last occurrence wins.
func (c Catalog) Index() map[string]Product {
	index := make(map[string]Product, len(c))
	for _, p := range c {
		index[p.Name] = p
	}
	return index
}

type PriceChange struct {
	Name     string
	OldPrice decimal.Decimal
	NewPrice decimal.Decimal
}

func (p PriceChange) Delta() decimal.Decimal {
	return p.NewPrice.Sub(p.OldPrice)
}

type ChangeSet struct {
	Added        []Product
	Removed      []Product
	PriceChanges []PriceChange
}

func (cs ChangeSet) IsEmpty() bool {
	return len(cs.Added) == 0 && len(cs.Removed) == 0 && len(cs.PriceChanges) == 0
}
