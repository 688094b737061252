package repository

import (
	"context"

	"github.com/emekaobi/storefront-backend/models"
)

// ProductFilters narrows a catalog query. MinPrice is in kobo; zero values
// mean "no constraint".
type ProductFilters struct {
	Category string
	MinPrice int64
	Page     int
	Limit    int
}

// ProductRepository is the catalog seen by the storefront and admin surfaces.
type ProductRepository interface {
	Find(ctx context.Context, filters ProductFilters) ([]models.Product, int64, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// OrderRepository persists order records. Create is used by checkout;
// everything else serves the admin console.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) (string, error)
	FindPage(ctx context.Context, page, limit int) ([]models.Order, int64, error)
	FindByID(ctx context.Context, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
	StatusCounts(ctx context.Context) (map[models.OrderStatus]int64, error)
}
