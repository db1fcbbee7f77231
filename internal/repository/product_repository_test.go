package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stocklight/inventory-backend/internal/domain"
)

func TestProductRepositoryCRUD(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))

	p := &domain.Product{Name: "Torque Wrench", Quantity: 5, Price: 49.99, Category: strPtr("tools")}
	if err := repo.Create(p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("expected store-assigned id")
	}

	loaded, err := repo.FindByID(p.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if loaded.Name != "Torque Wrench" || loaded.Quantity != 5 {
		t.Fatalf("unexpected row: %+v", loaded)
	}

	before := loaded.UpdatedAt
	time.Sleep(10 * time.Millisecond)
	if err := repo.Update(p.ID, map[string]any{"price": 59.99, "updated_at": time.Now()}); err != nil {
		t.Fatalf("update: %v", err)
	}
	updated, err := repo.FindByID(p.ID)
	if err != nil {
		t.Fatalf("find updated: %v", err)
	}
	if updated.Price != 59.99 {
		t.Fatalf("price not updated: %+v", updated)
	}
	if updated.Name != "Torque Wrench" || updated.Quantity != 5 || updated.Category == nil {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(before) {
		t.Fatalf("updated_at not refreshed: before=%v after=%v", before, updated.UpdatedAt)
	}

	if err := repo.DeleteByID(p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(p.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestProductRepositoryNotFoundCases(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))

	if _, err := repo.FindByID(999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if err := repo.Update(999, map[string]any{"name": "x"}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound on update, got %v", err)
	}
	if err := repo.DeleteByID(999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound on delete, got %v", err)
	}
}

func TestProductRepositoryListPagination(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))

	const n = 7
	for i := 0; i < n; i++ {
		p := &domain.Product{Name: fmt.Sprintf("Item %02d", i), Price: float64(i)}
		if err := repo.Create(p); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	const limit = 3
	seen := map[string]bool{}
	var prev string
	page := 1
	for {
		res, err := repo.List(ProductQuery{PageRequest: PageRequest{Page: page, Limit: limit}})
		if err != nil {
			t.Fatalf("list page %d: %v", page, err)
		}
		if res.Total != n {
			t.Fatalf("total = %d, want %d", res.Total, n)
		}
		if res.TotalPages != 3 {
			t.Fatalf("total pages = %d, want ceil(%d/%d)=3", res.TotalPages, n, limit)
		}
		for _, item := range res.Items {
			if seen[item.Name] {
				t.Fatalf("duplicate item across pages: %s", item.Name)
			}
			if prev != "" && item.Name < prev {
				t.Fatalf("items out of order: %s after %s", item.Name, prev)
			}
			seen[item.Name] = true
			prev = item.Name
		}
		if page >= res.TotalPages {
			break
		}
		page++
	}
	if len(seen) != n {
		t.Fatalf("concatenated pages yielded %d items, want %d", len(seen), n)
	}
}

func TestProductRepositoryListFilters(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))

	rows := []domain.Product{
		{Name: "Angle Grinder", Price: 75, Category: strPtr("tools")},
		{Name: "Grinding Disc", Price: 4, Category: strPtr("consumables")},
		{Name: "Work Gloves", Price: 9, Category: strPtr("tools")},
	}
	for i := range rows {
		if err := repo.Create(&rows[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	res, err := repo.List(ProductQuery{Search: "Grind"})
	if err != nil {
		t.Fatalf("list search: %v", err)
	}
	if res.Total != 2 {
		t.Fatalf("search total = %d, want 2", res.Total)
	}

	res, err = repo.List(ProductQuery{Category: "tools"})
	if err != nil {
		t.Fatalf("list category: %v", err)
	}
	if res.Total != 2 {
		t.Fatalf("category total = %d, want 2", res.Total)
	}

	res, err = repo.List(ProductQuery{Search: "Grind", Category: "tools"})
	if err != nil {
		t.Fatalf("list combined: %v", err)
	}
	if res.Total != 1 || res.Items[0].Name != "Angle Grinder" {
		t.Fatalf("combined predicate wrong: %+v", res)
	}
}

func TestProductRepositoryListSortFallbacks(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))

	for _, p := range []domain.Product{
		{Name: "Bravo", Price: 2},
		{Name: "Alpha", Price: 3},
		{Name: "Charlie", Price: 1},
	} {
		row := p
		if err := repo.Create(&row); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	// Unknown sort column silently behaves like sort=name.
	res, err := repo.List(ProductQuery{Sort: "unknown_column"})
	if err != nil {
		t.Fatalf("list unknown sort: %v", err)
	}
	if got := res.Items[0].Name; got != "Alpha" {
		t.Fatalf("unknown sort should fall back to name ASC, first item = %s", got)
	}

	// Invalid order silently behaves like ASC.
	res, err = repo.List(ProductQuery{Sort: "price", Order: "sideways"})
	if err != nil {
		t.Fatalf("list invalid order: %v", err)
	}
	if got := res.Items[0].Name; got != "Charlie" {
		t.Fatalf("invalid order should fall back to ASC, first item = %s", got)
	}

	// Order is case-insensitive for DESC.
	res, err = repo.List(ProductQuery{Sort: "price", Order: "desc"})
	if err != nil {
		t.Fatalf("list desc: %v", err)
	}
	if got := res.Items[0].Name; got != "Alpha" {
		t.Fatalf("expected highest price first, got %s", got)
	}
}

func TestProductRepositoryListClampsDegeneratePaging(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))

	for i := 0; i < 3; i++ {
		p := &domain.Product{Name: fmt.Sprintf("P%d", i), Price: 1}
		if err := repo.Create(p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	res, err := repo.List(ProductQuery{PageRequest: PageRequest{Page: 0, Limit: -5}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Page != DefaultPage || res.Limit != DefaultLimit {
		t.Fatalf("expected clamped paging, got page=%d limit=%d", res.Page, res.Limit)
	}
	if len(res.Items) != 3 {
		t.Fatalf("expected all rows on clamped first page, got %d", len(res.Items))
	}

	res, err = repo.List(ProductQuery{PageRequest: PageRequest{Page: 1, Limit: MaxLimit + 50}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Limit != MaxLimit {
		t.Fatalf("expected limit capped at %d, got %d", MaxLimit, res.Limit)
	}
}
