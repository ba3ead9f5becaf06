package monitor

import (
	"catalogwatch/lib/catalog"
	"catalogwatch/lib/changereport"
	"catalogwatch/lib/scrapers/storefront"
	"catalogwatch/lib/snapshot"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("services/monitor")
var meter = otel.Meter("services/monitor")

var productsCounter, _ = meter.Int64Counter("catalog.products")
var failuresCounter, _ = meter.Int64Counter("catalog.item_failures")
var changesCounter, _ = meter.Int64Counter("catalog.changes")

// ErrEmptyExtraction is returned when a page yields no products while the
// stored snapshot has some, saving it would erase the snapshot.
var ErrEmptyExtraction = errors.New("extracted no products but the previous snapshot is not empty")

type Extractor interface {
	FetchCatalog(ctx context.Context, url string) (storefront.ExtractResult, error)
}

type Options struct {
	Url string
	// path the report is written to, empty to skip writing
	ReportPath string
	// save an empty extraction over a non-empty snapshot
	AllowEmpty bool
}

type Monitor struct {
	extractor Extractor
	store     snapshot.Store
	opts      Options
}

func NewMonitor(extractor Extractor, store snapshot.Store, opts Options) Monitor {
	return Monitor{
		extractor: extractor,
		store:     store,
		opts:      opts,
	}
}

type RunResult struct {
	Current  catalog.Catalog
	Changes  catalog.ChangeSet
	Report   string
	Failures []storefront.ItemError
}

func (m Monitor) Run(ctx context.Context) (RunResult, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	start := time.Now()
	span.SetAttributes(attribute.String("url", m.opts.Url))

	fail := func(err error) (RunResult, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return RunResult{}, err
	}

	extracted, err := m.extractor.FetchCatalog(ctx, m.opts.Url)
	if err != nil {
		return fail(fmt.Errorf("extract catalog: %w", err))
	}
	for _, failure := range extracted.Failures {
		slog.WarnContext(ctx, "item could not be extracted", "index", failure.Index, "name", failure.Name, "err", failure.Err)
	}

	previous, err := m.store.Load(ctx)
	if err != nil {
		return fail(fmt.Errorf("load previous snapshot: %w", err))
	}

	current := extracted.Products
	if len(current) == 0 && len(previous) > 0 && !m.opts.AllowEmpty {
		return fail(ErrEmptyExtraction)
	}

	changes := catalog.Diff(previous, current)
	report := changereport.Format(changes)

	// the report only replaces the previous one once the snapshot it
	// describes is stored
	var pending *changereport.PendingFile
	if m.opts.ReportPath != "" {
		staged, err := changereport.Stage(m.opts.ReportPath, report)
		if err != nil {
			return fail(fmt.Errorf("write report: %w", err))
		}
		pending = &staged
	}

	err = m.store.Save(ctx, current)
	if err != nil {
		if pending != nil {
			pending.Discard()
		}
		return fail(fmt.Errorf("save snapshot: %w", err))
	}

	if pending != nil {
		err = pending.Commit()
		if err != nil {
			return fail(fmt.Errorf("write report: %w", err))
		}
	}

	m.record(ctx, current, extracted.Failures, changes, time.Since(start))

	return RunResult{
		Current:  current,
		Changes:  changes,
		Report:   report,
		Failures: extracted.Failures,
	}, nil
}

func (m Monitor) record(ctx context.Context, current catalog.Catalog, failures []storefront.ItemError, changes catalog.ChangeSet, elapsed time.Duration) {
	source := attribute.String("url", m.opts.Url)

	productsCounter.Add(ctx, int64(len(current)), metric.WithAttributes(source))
	failuresCounter.Add(ctx, int64(len(failures)), metric.WithAttributes(source))
	changesCounter.Add(ctx, int64(len(changes.Added)), metric.WithAttributes(source, attribute.String("kind", "added")))
	changesCounter.Add(ctx, int64(len(changes.Removed)), metric.WithAttributes(source, attribute.String("kind", "removed")))
	changesCounter.Add(ctx, int64(len(changes.PriceChanges)), metric.WithAttributes(source, attribute.String("kind", "price")))

	slog.InfoContext(
		ctx, "catalog compared",
		"url", m.opts.Url,
		"products", len(current),
		"failures", len(failures),
		"added", len(changes.Added),
		"removed", len(changes.Removed),
		"price_changes", len(changes.PriceChanges),
		"elapsed", elapsed,
	)
}
