package testutil

import (
	configlibsql "catalogwatch/lib/configutil/libsql"
	"catalogwatch/lib/telemetry"
	"database/sql"
	"testing"
)

type ServiceParams struct {
	Name string
	// no database is opened when empty
	DbSchema string
	// a sqlite file (may start with <dev_state>), defaults to :memory:
	DbPath string
}

type ServiceResult struct {
	DB *sql.DB
}

// SetupService prepares logging/telemetry for the test of a service and
// opens a database with the schema applied when one is given. The
// returned func releases both.
func SetupService(t testing.TB, params ServiceParams) (ServiceResult, func()) {
	t.Helper()
	cleanup := telemetry.SetupForTesting(t, "test:"+params.Name)

	if params.DbSchema == "" {
		return ServiceResult{}, cleanup
	}

	config := configlibsql.Struct{File: params.DbPath}
	if config.File == "" {
		config.File = ":memory:"
	}
	db, err := config.OpenDB(params.DbSchema)
	if err != nil {
		cleanup()
		t.Fatalf("open %s database: %v", params.Name, err)
	}

	return ServiceResult{DB: db}, func() {
		db.Close()
		cleanup()
	}
}
