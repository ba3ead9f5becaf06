package changereport

import (
	"catalogwatch/lib/catalog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"
)

const (
	SectionAdded        = "New Products"
	SectionRemoved      = "Removed Products"
	SectionPriceChanges = "Price Changes"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	return t
}

// FormatPrice shows two decimals, or every significant digit when the
// price has sub-cent precision.
func FormatPrice(price decimal.Decimal) string {
	if !price.Equal(price.Round(2)) {
		return price.String()
	}
	return price.StringFixed(2)
}

func formatDelta(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+" + FormatPrice(delta)
	}
	return FormatPrice(delta)
}

// ProductTable renders products as a NAME/PRICE/AVAILABILITY table.
func ProductTable(products []catalog.Product) string {
	t := newTable()
	t.AppendHeader(table.Row{"Name", "Price", "Availability"})
	for _, p := range products {
		t.AppendRow(table.Row{p.Name, FormatPrice(p.Price), p.Availability.String()})
	}
	return t.Render()
}

func priceChangeTable(changes []catalog.PriceChange) string {
	t := newTable()
	t.AppendHeader(table.Row{"Name", "Old Price", "New Price", "Change"})
	for _, c := range changes {
		t.AppendRow(table.Row{
			c.Name,
			FormatPrice(c.OldPrice),
			FormatPrice(c.NewPrice),
			formatDelta(c.Delta()),
		})
	}
	return t.Render()
}

func section(title, body string) string {
	return title + ":\n" + body
}

// Format renders the sections of a change set that have entries, in the
// order new products, removed products, price changes. A change set with
// no entries renders to the empty string.
func Format(cs catalog.ChangeSet) string {
	var sections []string
	if len(cs.Added) > 0 {
		sections = append(sections, section(SectionAdded, ProductTable(cs.Added)))
	}
	if len(cs.Removed) > 0 {
		sections = append(sections, section(SectionRemoved, ProductTable(cs.Removed)))
	}
	if len(cs.PriceChanges) > 0 {
		sections = append(sections, section(SectionPriceChanges, priceChangeTable(cs.PriceChanges)))
	}
	return strings.Join(sections, "\n\n")
}

// PendingFile is a report written next to its destination, Commit moves
// it into place and Discard drops it.
type PendingFile struct {
	path string
	tmp  string
}

// Stage writes the report to a temporary file beside path, creating parent
// directories. The report at path is untouched until Commit.
func Stage(path string, report string) (PendingFile, error) {
	dir := filepath.Dir(path)
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return PendingFile{}, err
	}
	tmp := path + ".tmp"
	err = os.WriteFile(tmp, []byte(report), 0644)
	if err != nil {
		return PendingFile{}, err
	}
	return PendingFile{path: path, tmp: tmp}, nil
}

func (f PendingFile) Commit() error {
	return os.Rename(f.tmp, f.path)
}

func (f PendingFile) Discard() {
	os.Remove(f.tmp)
}

// WriteFile writes the report to path, creating parent directories.
// An empty report still truncates the file so it always reflects the
// latest run.
func WriteFile(path string, report string) error {
	pending, err := Stage(path, report)
	if err != nil {
		return err
	}
	return pending.Commit()
}
