package snapshot

import (
	"catalogwatch/lib/catalog"
	"catalogwatch/lib/snapshot/db"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

// SQLStore keeps one snapshot per source in a sqlite/libsql database.
type SQLStore struct {
	db     *sql.DB
	qry    *db.Queries
	source string
	now    func() time.Time
}

func NewSQLStore(database *sql.DB, source string) SQLStore {
	return SQLStore{
		db:     database,
		qry:    db.New(database),
		source: source,
		now:    time.Now,
	}
}

func (s SQLStore) Save(ctx context.Context, c catalog.Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	snapshotId, err := txqry.UpsertSnapshot(ctx, db.UpsertSnapshotParams{
		Source:  s.source,
		TakenAt: s.now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	err = txqry.DeleteSnapshotProducts(ctx, snapshotId)
	if err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	for i, p := range c {
		err = txqry.CreateSnapshotProduct(ctx, db.CreateSnapshotProductParams{
			SnapshotID:   snapshotId,
			Idx:          int64(i),
			Name:         p.Name,
			Price:        p.Price.String(),
			Availability: p.Availability.String(),
		})
		if err != nil {
			return fmt.Errorf("insert product %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (s SQLStore) Load(ctx context.Context) (catalog.Catalog, error) {
	snapshot, err := s.qry.GetSnapshot(ctx, s.source)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Catalog{}, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.qry.GetSnapshotProducts(ctx, snapshot.ID)
	if err != nil {
		return nil, err
	}

	result := make(catalog.Catalog, 0, len(rows))
	for _, r := range rows {
		price, err := decimal.NewFromString(r.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d: price: %w", r.Idx, err)
		}
		availability, err := catalog.ParseAvailability(r.Availability)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", r.Idx, err)
		}
		result = append(result, catalog.Product{
			Name:         r.Name,
			Price:        price,
			Availability: availability,
		})
	}

	slog.DebugContext(ctx, "loaded snapshot", "source", s.source, "taken_at", time.Unix(snapshot.TakenAt, 0), "products", len(result))
	return result, nil
}

type Info struct {
	Source  string
	TakenAt time.Time
}

// List describes every snapshot kept in the database.
func (s SQLStore) List(ctx context.Context) ([]Info, error) {
	snapshots, err := s.qry.ListSnapshots(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]Info, len(snapshots))
	for i, snapshot := range snapshots {
		result[i] = Info{
			Source:  snapshot.Source,
			TakenAt: time.Unix(snapshot.TakenAt, 0),
		}
	}
	return result, nil
}
