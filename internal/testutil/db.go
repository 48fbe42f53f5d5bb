// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tripinvite/portal/internal/config"
	"tripinvite/portal/internal/model"
)

// NewDB returns a migrated, private in-memory SQLite database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.NewDB(config.DatabaseConfig{
		Driver: "sqlite",
		SQLite: config.SQLiteConfig{
			Path: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		},
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
