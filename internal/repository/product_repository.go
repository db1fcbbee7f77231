package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/stocklight/inventory-backend/internal/domain"
	"github.com/stocklight/inventory-backend/internal/observability"
)

var ErrProductNotFound = errors.New("product not found")

// ProductQuery is the list predicate plus ordering and paging. Search is a
// substring match on name; literal % and _ in the search term are passed to
// the engine unescaped, matching the documented contract. Category is exact
// equality. Unknown Sort values and anything but a case-insensitive "desc"
// in Order fall back silently.
type ProductQuery struct {
	PageRequest
	Sort     string
	Order    string
	Search   string
	Category string
}

type ProductRepository interface {
	Create(product *domain.Product) error
	FindByID(id uint) (*domain.Product, error)
	List(q ProductQuery) (PageResult[domain.Product], error)
	Update(id uint, updates map[string]any) error
	DeleteByID(id uint) error
}

type GormProductRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

var productSortColumns = map[string]struct{}{
	"name":       {},
	"price":      {},
	"quantity":   {},
	"created_at": {},
}

// orderClause builds the ORDER BY fragment from the allow-listed column set.
// The clause is assembled from fixed strings only, never caller input.
func orderClause(sort, order string) string {
	column := "name"
	if _, ok := productSortColumns[sort]; ok {
		column = sort
	}
	direction := "ASC"
	if strings.EqualFold(order, "DESC") {
		direction = "DESC"
	}
	return column + " " + direction
}

func (r *GormProductRepository) Create(product *domain.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "product", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "product", "create", "success")
	return nil
}

func (r *GormProductRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "product", "find_by_id", "not_found")
			return nil, ErrProductNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "product", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "product", "find_by_id", "success")
	return &product, nil
}

// List runs two statements under the same predicate: a COUNT for the
// pagination metadata, then the ordered page itself.
func (r *GormProductRepository) List(q ProductQuery) (PageResult[domain.Product], error) {
	normalized := normalizePageRequest(q.PageRequest)
	result := PageResult[domain.Product]{
		Page:  normalized.Page,
		Limit: normalized.Limit,
	}

	predicate := func() *gorm.DB {
		tx := r.db.Model(&domain.Product{})
		if q.Search != "" {
			tx = tx.Where("name LIKE ?", "%"+q.Search+"%")
		}
		if q.Category != "" {
			tx = tx.Where("category = ?", q.Category)
		}
		return tx
	}

	if err := predicate().Count(&result.Total).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "product", "list", "error")
		return PageResult[domain.Product]{}, err
	}

	offset := (normalized.Page - 1) * normalized.Limit
	err := predicate().
		Order(orderClause(q.Sort, q.Order)).
		Offset(offset).
		Limit(normalized.Limit).
		Find(&result.Items).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "product", "list", "error")
		return PageResult[domain.Product]{}, err
	}

	result.TotalPages = calcTotalPages(result.Total, normalized.Limit)
	observability.RecordRepositoryOperation(context.Background(), "product", "list", "success")
	return result, nil
}

func (r *GormProductRepository) Update(id uint, updates map[string]any) error {
	res := r.db.Model(&domain.Product{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "product", "update", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "product", "update", "not_found")
		return ErrProductNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "product", "update", "success")
	return nil
}

func (r *GormProductRepository) DeleteByID(id uint) error {
	res := r.db.Delete(&domain.Product{}, id)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "product", "delete_by_id", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "product", "delete_by_id", "not_found")
		return ErrProductNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "product", "delete_by_id", "success")
	return nil
}
