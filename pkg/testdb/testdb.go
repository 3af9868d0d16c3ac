// Package testdb opens throwaway in-memory sqlite databases through the same
// ConnectDB/SetupDatabase path the server uses.
package testdb

import (
	"fmt"
	"testing"

	"storerating/configs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// New returns a migrated, empty database that is closed when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := configs.ConnectDB(configs.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := configs.SetupDatabase(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() { _ = configs.CloseDB(db) })
	return db
}
