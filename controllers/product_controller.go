package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	errs "github.com/emekaobi/storefront-backend/common/errors"
	"github.com/emekaobi/storefront-backend/models"
	"github.com/emekaobi/storefront-backend/repository"
)

var validate = validator.New()

type ProductController struct {
	Repo repository.ProductRepository
}

func NewProductController(repo repository.ProductRepository) *ProductController {
	return &ProductController{Repo: repo}
}

type productMeta struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"has_more"`
}

// GetProducts lists catalog products with optional category and min_price
// filters. min_price is taken in naira (what the UI shows) and converted to
// kobo for the query. Pagination is normalized up front so the meta block
// reflects exactly what was queried.
func (pc *ProductController) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(repository.DefaultPageLimit)))
	page, limit = repository.NormalizePage(page, limit)

	filters := repository.ProductFilters{
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	}
	if raw := c.Query("min_price"); raw != "" {
		naira, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || naira < 0 {
			_ = c.Error(errs.New(http.StatusBadRequest, "invalid min_price", err))
			return
		}
		filters.MinPrice = naira * 100
	}

	products, total, err := pc.Repo.Find(c.Request.Context(), filters)
	if err != nil {
		_ = c.Error(errs.New(http.StatusInternalServerError, "failed to list products", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"meta": productMeta{
			Page:    page,
			Limit:   limit,
			Total:   total,
			HasMore: int64(page*limit) < total,
		},
	})
}

// GetProductByID returns a single product
func (pc *ProductController) GetProductByID(c *gin.Context) {
	product, err := pc.Repo.FindByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		_ = c.Error(errs.New(http.StatusNotFound, "product not found", err))
		return
	}
	if err != nil {
		_ = c.Error(errs.New(http.StatusInternalServerError, "failed to load product", err))
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProductRequest is the admin payload for a new product. Price is in kobo.
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Category    string `json:"category" validate:"required"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

// CreateProduct adds a catalog product (admin only)
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errs.Wrap(errs.ErrInvalidInput, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		_ = c.Error(errs.New(http.StatusBadRequest, err.Error(), err))
		return
	}

	product := models.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}
	if err := pc.Repo.Create(c.Request.Context(), &product); err != nil {
		_ = c.Error(errs.New(http.StatusInternalServerError, "failed to create product", err))
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProductRequest carries partial product updates. Pointer fields
// distinguish "not sent" from zero values.
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price" validate:"omitempty,gt=0"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
}

// UpdateProduct updates product fields (admin only)
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errs.Wrap(errs.ErrInvalidInput, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		_ = c.Error(errs.New(http.StatusBadRequest, err.Error(), err))
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if len(updates) == 0 {
		_ = c.Error(errs.New(http.StatusBadRequest, "no fields to update", nil))
		return
	}

	err := pc.Repo.Update(c.Request.Context(), c.Param("id"), updates)
	if errors.Is(err, repository.ErrNotFound) {
		_ = c.Error(errs.New(http.StatusNotFound, "product not found", err))
		return
	}
	if err != nil {
		_ = c.Error(errs.New(http.StatusInternalServerError, "failed to update product", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product updated"})
}

// DeleteProduct removes a product from the catalog (admin only)
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	err := pc.Repo.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		_ = c.Error(errs.New(http.StatusNotFound, "product not found", err))
		return
	}
	if err != nil {
		_ = c.Error(errs.New(http.StatusInternalServerError, "failed to delete product", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
