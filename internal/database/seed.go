package database

import (
	"context"
	"time"

	"github.com/stocklight/inventory-backend/internal/domain"
	"github.com/stocklight/inventory-backend/internal/observability"

	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

var sampleProducts = []domain.Product{
	{Name: "Cordless Drill", Quantity: 24, Price: 89.99, Category: strPtr("tools")},
	{Name: "Claw Hammer", Quantity: 60, Price: 12.50, Category: strPtr("tools")},
	{Name: "LED Work Light", Quantity: 15, Price: 34.00, Category: strPtr("lighting")},
	{Name: "Extension Cord 10m", Quantity: 40, Price: 18.75, Category: strPtr("electrical")},
	{Name: "Safety Goggles", Quantity: 120, Price: 6.99, Category: nil},
}

type SeedReport struct {
	CreatedProducts int  `json:"created_products"`
	Noop            bool `json:"noop"`
}

// Seed inserts the sample catalog. Existing rows are matched by name so the
// seed is safe to run repeatedly.
func Seed(db *gorm.DB) error {
	_, err := SeedSync(db)
	return err
}

func SeedSync(db *gorm.DB) (*SeedReport, error) {
	start := time.Now()
	defer func() {
		observability.RecordDatabaseStartupDuration(context.Background(), "seed", time.Since(start))
	}()

	report := &SeedReport{}
	for _, p := range sampleProducts {
		res := db.Where("name = ?", p.Name).FirstOrCreate(&p)
		if res.Error != nil {
			observability.RecordDatabaseStartupEvent(context.Background(), "seed", "error")
			return nil, res.Error
		}
		if res.RowsAffected > 0 {
			report.CreatedProducts++
		}
	}
	report.Noop = report.CreatedProducts == 0
	observability.RecordDatabaseStartupEvent(context.Background(), "seed", "success")
	return report, nil
}
