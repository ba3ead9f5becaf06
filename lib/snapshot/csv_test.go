package snapshot

import (
	"catalogwatch/lib/catalog"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

func requireCatalog(t testing.TB, expected, actual catalog.Catalog) {
	t.Helper()
	diff := cmp.Diff(expected, actual, decimalComparer)
	if diff != "" {
		t.Fatal(diff)
	}
}

var sample = catalog.Catalog{
	{Name: "Lenovo IdeaPad 3", Price: decimal.RequireFromString("20999"), Availability: catalog.InStock},
	{Name: `Acer "Aspire" 7, 2024`, Price: decimal.RequireFromString("31999.50"), Availability: catalog.OutOfStock},
	{Name: "Lenovo IdeaPad 3", Price: decimal.RequireFromString("19999"), Availability: catalog.InStock},
}

func TestCSVStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewCSVStore(filepath.Join(t.TempDir(), "data", "products.csv"))
	require.NoError(t, err)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, loaded)

	err = store.Save(ctx, sample)
	require.NoError(t, err)
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	requireCatalog(t, sample, loaded)

	err = store.Save(ctx, sample[:1])
	require.NoError(t, err)
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	requireCatalog(t, sample[:1], loaded)

	_, err = os.Stat(store.Path() + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestReadCSVFromDataFrame(t *testing.T) {
	// the layout pandas writes with to_csv(index=False)
	contents := "Name,Price,Availability\n" +
		"Lenovo IdeaPad 3,20999.0,In Stock\n" +
		"\"Asus, VivoBook\",15999.0,Out of Stock\n"

	c, err := ReadCSV(strings.NewReader(contents))
	require.NoError(t, err)
	requireCatalog(t, catalog.Catalog{
		{Name: "Lenovo IdeaPad 3", Price: decimal.RequireFromString("20999"), Availability: catalog.InStock},
		{Name: "Asus, VivoBook", Price: decimal.RequireFromString("15999"), Availability: catalog.OutOfStock},
	}, c)
}

func TestReadCSVColumnOrder(t *testing.T) {
	c, err := ReadCSV(strings.NewReader("Availability,Name,Price\nIn Stock,A,1.5\n"))
	require.NoError(t, err)
	requireCatalog(t, catalog.Catalog{
		{Name: "A", Price: decimal.RequireFromString("1.5"), Availability: catalog.InStock},
	}, c)
}

func TestReadCSVErrors(t *testing.T) {
	cases := []string{
		"Name,Price\nA,1\n",
		"Name,Price,Availability\nA,abc,In Stock\n",
		"Name,Price,Availability\nA,1,Sometimes\n",
		"Name,Price,Availability\nA,1\n",
	}
	for _, contents := range cases {
		_, err := ReadCSV(strings.NewReader(contents))
		require.Error(t, err, contents)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	c, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, c)

	c, err = ReadCSV(strings.NewReader("Name,Price,Availability\n"))
	require.NoError(t, err)
	require.Empty(t, c)
}
