package snapshot

import (
	"catalogwatch/lib/catalog"
	configlibsql "catalogwatch/lib/configutil/libsql"
	"catalogwatch/lib/snapshot/db"
	"context"
	"fmt"
)

// Store keeps the most recent catalog of a run so the next run can
// compare against it.
type Store interface {
	// Load returns the stored catalog, or an empty catalog and no error
	// when nothing was stored yet.
	Load(ctx context.Context) (catalog.Catalog, error)
	// Save replaces the stored catalog with c, verbatim.
	Save(ctx context.Context, c catalog.Catalog) error
}

type Config struct {
	// path to a csv snapshot file
	CSV      string              `json:"csv"`
	Database configlibsql.Struct `json:"database"`
}

// Open returns the store described by the config, the database takes
// precedence over the csv file. source keys the snapshot in a database so
// several pages can share one.
func (c Config) Open(source string) (Store, func() error, error) {
	if !c.Database.IsZero() {
		database, err := c.Database.OpenDB(db.Schema)
		if err != nil {
			return nil, nil, fmt.Errorf("open snapshot database: %w", err)
		}
		return NewSQLStore(database, source), database.Close, nil
	}
	if c.CSV != "" {
		store, err := NewCSVStore(c.CSV)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("no snapshot store configured, set either snapshot.csv or snapshot.database")
}
