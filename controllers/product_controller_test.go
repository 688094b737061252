package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emekaobi/storefront-backend/models"
	"github.com/emekaobi/storefront-backend/repository"
)

// pagingCatalog records the filters it is queried with.
type pagingCatalog struct {
	fakeCatalog
	lastFilters repository.ProductFilters
	total       int64
}

func (p *pagingCatalog) Find(_ context.Context, f repository.ProductFilters) ([]models.Product, int64, error) {
	p.lastFilters = f
	return []models.Product{}, p.total, nil
}

func listProducts(t *testing.T, catalog *pagingCatalog, query string) productMeta {
	t.Helper()
	pc := NewProductController(catalog)
	r := gin.New()
	r.GET("/products", pc.GetProducts)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products"+query, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Meta productMeta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Meta
}

func TestGetProducts_MetaMatchesQueriedPage(t *testing.T) {
	catalog := &pagingCatalog{total: 250}

	// Out-of-range values are clamped before the query, and the meta block
	// reports the clamped values.
	meta := listProducts(t, catalog, "?page=0&limit=500")

	assert.Equal(t, 1, catalog.lastFilters.Page)
	assert.Equal(t, repository.MaxPageLimit, catalog.lastFilters.Limit)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, repository.MaxPageLimit, meta.Limit)
	assert.Equal(t, int64(250), meta.Total)
	assert.True(t, meta.HasMore) // 1*100 < 250

	meta = listProducts(t, catalog, "?page=3&limit=100")
	assert.False(t, meta.HasMore) // 3*100 >= 250
}

func TestGetProducts_MinPriceNairaToKobo(t *testing.T) {
	catalog := &pagingCatalog{}
	listProducts(t, catalog, "?min_price=2500")
	assert.Equal(t, int64(250000), catalog.lastFilters.MinPrice)
}
