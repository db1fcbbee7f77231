package service

import (
	"context"

	"github.com/stocklight/inventory-backend/internal/domain"
	"github.com/stocklight/inventory-backend/internal/repository"
)

//go:generate mockgen -destination=gomock/services_mock.go -package=servicegomock github.com/stocklight/inventory-backend/internal/service ProductService,UserService

type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	List(ctx context.Context, input ListProductsInput) (repository.PageResult[domain.Product], error)
	Update(ctx context.Context, id uint, input UpdateProductInput) error
	DeleteByID(ctx context.Context, id uint) error
}

type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (uint, error)
	List(ctx context.Context) ([]domain.User, error)
}
