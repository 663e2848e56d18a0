// Package mock provides in-process stand-ins for the database, Redis and the clock.
package mock

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/technest/admin-dashboard/internal/integration/persistence/model"
)

var dbSeq atomic.Int64

// NewDb opens a private in-memory sqlite database with the documents table
// migrated. The database is closed when the test ends.
func NewDb(t testing.TB) *gorm.DB {
	t.Helper()

	// Each test gets its own named shared-cache database.
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	dbSQL, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	if err := dbConn.AutoMigrate(&model.DocumentModel{}); err != nil {
		t.Fatalf("failed to migrate documents: %v", err)
	}

	t.Cleanup(func() {
		_ = dbSQL.Close()
	})
	return dbConn
}
