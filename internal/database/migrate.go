package database

import (
	"context"
	"time"

	"github.com/stocklight/inventory-backend/internal/domain"
	"github.com/stocklight/inventory-backend/internal/observability"

	"gorm.io/gorm"
)

// Migrate creates the products and users tables plus the product list
// indexes (name NOCASE, price, category) declared on the domain structs.
func Migrate(db *gorm.DB) error {
	start := time.Now()
	defer func() {
		observability.RecordDatabaseStartupDuration(context.Background(), "migrate", time.Since(start))
	}()

	if err := db.AutoMigrate(&domain.Product{}, &domain.User{}); err != nil {
		observability.RecordDatabaseStartupEvent(context.Background(), "migrate", "error")
		return err
	}
	observability.RecordDatabaseStartupEvent(context.Background(), "migrate", "success")
	return nil
}
