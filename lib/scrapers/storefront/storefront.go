package storefront

import (
	"catalogwatch/lib/catalog"
	"catalogwatch/lib/htmlutil"
	"catalogwatch/lib/textutil"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/storefront")

var (
	ErrMissingTitle = errors.New("tile has no title")
	ErrMissingPrice = errors.New("tile has no price")
)

// Selectors are the css selectors locating the product tiles of a
// listing page and the fields inside each tile.
type Selectors struct {
	Tile         string `json:"tile"`
	Title        string `json:"title"`
	Price        string `json:"price"`
	Availability string `json:"availability"`
	// availability texts that mean the product cannot be bought
	OutOfStock []string `json:"out_of_stock"`
}

var DefaultSelectors = Selectors{
	Tile:         ".goods-tile",
	Title:        ".goods-tile__title",
	Price:        ".goods-tile__price-value",
	Availability: ".goods-tile__availability",
	OutOfStock: []string{
		"немає в наявності",
		"нет в наличии",
		"закінчився",
		"закончился",
		"out of stock",
	},
}

// WithDefaults fills empty fields from DefaultSelectors.
func (s Selectors) WithDefaults() Selectors {
	if s.Tile == "" {
		s.Tile = DefaultSelectors.Tile
	}
	if s.Title == "" {
		s.Title = DefaultSelectors.Title
	}
	if s.Price == "" {
		s.Price = DefaultSelectors.Price
	}
	if s.Availability == "" {
		s.Availability = DefaultSelectors.Availability
	}
	if s.OutOfStock == nil {
		s.OutOfStock = DefaultSelectors.OutOfStock
	}
	return s
}

// ItemError is a tile that could not be turned into a product.
type ItemError struct {
	// position of the tile on the page
	Index int
	// title of the tile, when one was found
	Name string
	Err  error
}

func (e ItemError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("tile %d: %s", e.Index, e.Err.Error())
	}
	return fmt.Sprintf("tile %d (%s): %s", e.Index, e.Name, e.Err.Error())
}

func (e ItemError) Unwrap() error {
	return e.Err
}

// ExtractResult holds the products that were parsed and the tiles that
// were skipped, in page order.
type ExtractResult struct {
	Products catalog.Catalog
	Failures []ItemError
}

// Err joins all item failures, it is nil when every tile was parsed.
func (r ExtractResult) Err() error {
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

func ParseCatalog(ctx context.Context, doc *goquery.Document, selectors Selectors) ExtractResult {
	ctx, span := tracer.Start(ctx, "ParseCatalog")
	defer span.End()

	selectors = selectors.WithDefaults()

	result := ExtractResult{Products: catalog.Catalog{}}
	doc.Find(selectors.Tile).Each(func(i int, tile *goquery.Selection) {
		product, err := parseTile(ctx, tile, selectors)
		if err != nil {
			failure := ItemError{Index: i, Name: product.Name, Err: err}
			slog.WarnContext(ctx, "skipping malformed tile", "err", failure)
			result.Failures = append(result.Failures, failure)
			return
		}
		result.Products = append(result.Products, product)
	})

	span.SetAttributes(
		attribute.Int("products", len(result.Products)),
		attribute.Int("failures", len(result.Failures)),
	)
	if len(result.Failures) > 0 {
		span.SetStatus(codes.Error, "some tiles could not be parsed")
	}
	return result
}

// parseTile returns the partially filled product alongside an error so
// the caller can name the failing tile.
func parseTile(ctx context.Context, tile *goquery.Selection, selectors Selectors) (catalog.Product, error) {
	var product catalog.Product

	name, found := htmlutil.FindText(ctx, tile, selectors.Title)
	if !found || name == "" {
		return product, ErrMissingTitle
	}
	product.Name = name

	priceText, found := htmlutil.FindText(ctx, tile, selectors.Price)
	if !found {
		return product, ErrMissingPrice
	}
	price, err := textutil.ParsePrice(priceText)
	if err != nil {
		return product, err
	}
	product.Price = price

	product.Availability = catalog.OutOfStock
	availabilityText, found := htmlutil.FindText(ctx, tile, selectors.Availability)
	if found && !textutil.MatchName(availabilityText, selectors.OutOfStock) {
		product.Availability = catalog.InStock
	}

	return product, nil
}
