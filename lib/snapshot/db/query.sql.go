package db

import (
	"context"
)

const upsertSnapshot = `-- name: UpsertSnapshot :one
INSERT INTO Snapshot(source, taken_at) VALUES (?, ?)
ON CONFLICT(source) DO UPDATE SET taken_at = excluded.taken_at
RETURNING id
`

type UpsertSnapshotParams struct {
	Source  string
	TakenAt int64
}

func (q *Queries) UpsertSnapshot(ctx context.Context, arg UpsertSnapshotParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, upsertSnapshot, arg.Source, arg.TakenAt)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const getSnapshot = `-- name: GetSnapshot :one
SELECT id, source, taken_at FROM Snapshot
WHERE source = ?
`

func (q *Queries) GetSnapshot(ctx context.Context, source string) (Snapshot, error) {
	row := q.db.QueryRowContext(ctx, getSnapshot, source)
	var i Snapshot
	err := row.Scan(&i.ID, &i.Source, &i.TakenAt)
	return i, err
}

const listSnapshots = `-- name: ListSnapshots :many
SELECT id, source, taken_at FROM Snapshot
ORDER BY source
`

func (q *Queries) ListSnapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := q.db.QueryContext(ctx, listSnapshots)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Snapshot
	for rows.Next() {
		var i Snapshot
		if err := rows.Scan(&i.ID, &i.Source, &i.TakenAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteSnapshotProducts = `-- name: DeleteSnapshotProducts :exec
DELETE FROM SnapshotProduct
WHERE snapshot_id = ?
`

func (q *Queries) DeleteSnapshotProducts(ctx context.Context, snapshotID int64) error {
	_, err := q.db.ExecContext(ctx, deleteSnapshotProducts, snapshotID)
	return err
}

const createSnapshotProduct = `-- name: CreateSnapshotProduct :exec
INSERT INTO SnapshotProduct(snapshot_id, idx, name, price, availability)
VALUES (?, ?, ?, ?, ?)
`

type CreateSnapshotProductParams struct {
	SnapshotID   int64
	Idx          int64
	Name         string
	Price        string
	Availability string
}

func (q *Queries) CreateSnapshotProduct(ctx context.Context, arg CreateSnapshotProductParams) error {
	_, err := q.db.ExecContext(ctx, createSnapshotProduct,
		arg.SnapshotID,
		arg.Idx,
		arg.Name,
		arg.Price,
		arg.Availability,
	)
	return err
}

const getSnapshotProducts = `-- name: GetSnapshotProducts :many
SELECT idx, name, price, availability FROM SnapshotProduct
WHERE snapshot_id = ?
ORDER BY idx
`

type GetSnapshotProductsRow struct {
	Idx          int64
	Name         string
	Price        string
	Availability string
}

func (q *Queries) GetSnapshotProducts(ctx context.Context, snapshotID int64) ([]GetSnapshotProductsRow, error) {
	rows, err := q.db.QueryContext(ctx, getSnapshotProducts, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetSnapshotProductsRow
	for rows.Next() {
		var i GetSnapshotProductsRow
		if err := rows.Scan(
			&i.Idx,
			&i.Name,
			&i.Price,
			&i.Availability,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
