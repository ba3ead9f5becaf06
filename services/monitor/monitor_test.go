package monitor

import (
	"catalogwatch/lib/catalog"
	"catalogwatch/lib/changereport"
	"catalogwatch/lib/scrapers/storefront"
	"catalogwatch/lib/snapshot"
	"catalogwatch/lib/snapshot/db"
	"catalogwatch/lib/testutil"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	result storefront.ExtractResult
	err    error
	urls   []string
}

func (f *fakeExtractor) FetchCatalog(ctx context.Context, url string) (storefront.ExtractResult, error) {
	f.urls = append(f.urls, url)
	return f.result, f.err
}

type failingStore struct {
	snapshot.Store
	saveErr error
}

func (s failingStore) Save(ctx context.Context, c catalog.Catalog) error {
	return s.saveErr
}

func product(name, price string) catalog.Product {
	return catalog.Product{Name: name, Price: decimal.RequireFromString(price), Availability: catalog.InStock}
}

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

func setupStore(t testing.TB) (snapshot.Store, func()) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/monitor",
		DbSchema: db.Schema,
	})
	return snapshot.NewSQLStore(setup.DB, "https://example.com/laptops"), cleanup
}

func TestRun(t *testing.T) {
	store, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()
	reportPath := filepath.Join(t.TempDir(), "results", "report.txt")

	extractor := &fakeExtractor{result: storefront.ExtractResult{
		Products: catalog.Catalog{product("A", "100")},
	}}
	monitor := NewMonitor(extractor, store, Options{
		Url:        "https://example.com/laptops",
		ReportPath: reportPath,
	})

	// first run, everything is new
	res, err := monitor.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"https://example.com/laptops"}, extractor.urls)
	require.Len(t, res.Changes.Added, 1)
	require.True(t, strings.HasPrefix(res.Report, changereport.SectionAdded))

	contents, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	require.Equal(t, res.Report, string(contents))

	// second run compares against the first
	extractor.result = storefront.ExtractResult{
		Products: catalog.Catalog{product("A", "120"), product("B", "50")},
		Failures: []storefront.ItemError{{Index: 2, Err: storefront.ErrMissingPrice}},
	}
	res, err = monitor.Run(ctx)
	require.NoError(t, err)
	diff := cmp.Diff(catalog.ChangeSet{
		Added: []catalog.Product{product("B", "50")},
		PriceChanges: []catalog.PriceChange{{
			Name:     "A",
			OldPrice: decimal.RequireFromString("100"),
			NewPrice: decimal.RequireFromString("120"),
		}},
	}, res.Changes, decimalComparer)
	if diff != "" {
		t.Fatal(diff)
	}
	require.Len(t, res.Failures, 1)
	require.Contains(t, res.Report, changereport.SectionPriceChanges)

	// nothing changed, the report is emptied
	res, err = monitor.Run(ctx)
	require.NoError(t, err)
	require.True(t, res.Changes.IsEmpty())
	require.Equal(t, "", res.Report)
	contents, err = os.ReadFile(reportPath)
	require.NoError(t, err)
	require.Empty(t, contents)

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, cmp.Equal(catalog.Catalog{product("A", "120"), product("B", "50")}, saved, decimalComparer))
}

func TestRunExtractionError(t *testing.T) {
	store, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	err := store.Save(ctx, catalog.Catalog{product("A", "1")})
	require.NoError(t, err)

	extractor := &fakeExtractor{err: storefront.ErrUnexpectedStatus}
	_, err = NewMonitor(extractor, store, Options{Url: "u"}).Run(ctx)
	require.True(t, errors.Is(err, storefront.ErrUnexpectedStatus))

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 1)
}

func TestRunEmptyExtraction(t *testing.T) {
	store, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	err := store.Save(ctx, catalog.Catalog{product("A", "1")})
	require.NoError(t, err)

	extractor := &fakeExtractor{result: storefront.ExtractResult{Products: catalog.Catalog{}}}
	_, err = NewMonitor(extractor, store, Options{Url: "u"}).Run(ctx)
	require.True(t, errors.Is(err, ErrEmptyExtraction))

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 1)

	res, err := NewMonitor(extractor, store, Options{Url: "u", AllowEmpty: true}).Run(ctx)
	require.NoError(t, err)
	require.Len(t, res.Changes.Removed, 1)
	require.True(t, strings.HasPrefix(res.Report, changereport.SectionRemoved))

	saved, err = store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, saved)
}

func TestRunFirstRunWithEmptyPage(t *testing.T) {
	store, cleanup := setupStore(t)
	defer cleanup()

	extractor := &fakeExtractor{result: storefront.ExtractResult{}}
	res, err := NewMonitor(extractor, store, Options{Url: "u"}).Run(context.Background())
	require.NoError(t, err)
	require.True(t, res.Changes.IsEmpty())
}

func TestRunSaveError(t *testing.T) {
	store, cleanup := setupStore(t)
	defer cleanup()

	reportPath := filepath.Join(t.TempDir(), "report.txt")
	err := os.WriteFile(reportPath, []byte("last run"), 0644)
	require.NoError(t, err)

	saveErr := errors.New("disk full")
	extractor := &fakeExtractor{result: storefront.ExtractResult{Products: catalog.Catalog{product("A", "1")}}}
	opts := Options{Url: "u", ReportPath: reportPath}
	_, err = NewMonitor(extractor, failingStore{Store: store, saveErr: saveErr}, opts).Run(context.Background())
	require.True(t, errors.Is(err, saveErr))

	// the report of the failed run never replaces the last one
	contents, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	require.Equal(t, "last run", string(contents))
	_, err = os.Stat(reportPath + ".tmp")
	require.True(t, os.IsNotExist(err))

	res, err := NewMonitor(extractor, store, opts).Run(context.Background())
	require.NoError(t, err)
	contents, err = os.ReadFile(reportPath)
	require.NoError(t, err)
	require.Equal(t, res.Report, string(contents))
	require.Contains(t, res.Report, "A")
}
