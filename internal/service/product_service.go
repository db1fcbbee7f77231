package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/stocklight/inventory-backend/internal/domain"
	"github.com/stocklight/inventory-backend/internal/observability"
	"github.com/stocklight/inventory-backend/internal/repository"
)

var (
	ErrProductFieldsRequired  = errors.New("name and price are required")
	ErrProductInvalidName     = errors.New("name must not be empty")
	ErrProductInvalidPrice    = errors.New("price must not be negative")
	ErrProductInvalidQuantity = errors.New("quantity must not be negative")
)

// CreateProductInput uses pointers for the optional fields so "absent" and
// "zero" stay distinguishable. Quantity defaults to 0 and category to null.
type CreateProductInput struct {
	Name     string
	Quantity *int
	Price    *float64
	Category *string
}

type ListProductsInput struct {
	Page     int
	Limit    int
	Sort     string
	Order    string
	Search   string
	Category string
}

// UpdateProductInput carries fill-if-absent semantics: nil fields keep their
// stored values.
type UpdateProductInput struct {
	Name     *string
	Quantity *int
	Price    *float64
	Category *string
}

type ProductServiceImpl struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) *ProductServiceImpl {
	return &ProductServiceImpl{repo: repo}
}

func (s *ProductServiceImpl) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCatalogOperation(ctx, "create", outcome, time.Since(start)) }()

	name := strings.TrimSpace(input.Name)
	if name == "" || input.Price == nil {
		outcome = "bad_request"
		return nil, ErrProductFieldsRequired
	}
	if *input.Price < 0 {
		outcome = "bad_request"
		return nil, ErrProductInvalidPrice
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		outcome = "bad_request"
		return nil, ErrProductInvalidQuantity
	}

	product := &domain.Product{
		Name:     name,
		Price:    *input.Price,
		Category: normalizeCategory(input.Category),
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if err := s.repo.Create(product); err != nil {
		outcome = "error"
		return nil, err
	}
	return product, nil
}

func (s *ProductServiceImpl) List(ctx context.Context, input ListProductsInput) (repository.PageResult[domain.Product], error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCatalogOperation(ctx, "list", outcome, time.Since(start)) }()

	res, err := s.repo.List(repository.ProductQuery{
		PageRequest: repository.PageRequest{Page: input.Page, Limit: input.Limit},
		Sort:        input.Sort,
		Order:       input.Order,
		Search:      input.Search,
		Category:    input.Category,
	})
	if err != nil {
		outcome = "error"
		return repository.PageResult[domain.Product]{}, err
	}
	return res, nil
}

// Update applies only the supplied fields and refreshes updated_at even when
// nothing else changed. Supplied fields are held to the same invariants as
// create.
func (s *ProductServiceImpl) Update(ctx context.Context, id uint, input UpdateProductInput) error {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCatalogOperation(ctx, "update", outcome, time.Since(start)) }()

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			outcome = "bad_request"
			return ErrProductInvalidName
		}
		updates["name"] = name
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			outcome = "bad_request"
			return ErrProductInvalidQuantity
		}
		updates["quantity"] = *input.Quantity
	}
	if input.Price != nil {
		if *input.Price < 0 {
			outcome = "bad_request"
			return ErrProductInvalidPrice
		}
		updates["price"] = *input.Price
	}
	if input.Category != nil {
		updates["category"] = normalizeCategory(input.Category)
	}
	updates["updated_at"] = time.Now()

	if err := s.repo.Update(id, updates); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			outcome = "not_found"
		} else {
			outcome = "error"
		}
		return err
	}
	return nil
}

func (s *ProductServiceImpl) DeleteByID(ctx context.Context, id uint) error {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCatalogOperation(ctx, "delete", outcome, time.Since(start)) }()

	if err := s.repo.DeleteByID(id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			outcome = "not_found"
		} else {
			outcome = "error"
		}
		return err
	}
	return nil
}

// normalizeCategory maps absent or blank categories to NULL so the stored
// shape is the same either way.
func normalizeCategory(category *string) *string {
	if category == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*category)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
