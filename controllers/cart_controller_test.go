package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/emekaobi/storefront-backend/common/errors"
	"github.com/emekaobi/storefront-backend/common/logger"
	"github.com/emekaobi/storefront-backend/models"
	"github.com/emekaobi/storefront-backend/repository"
	"github.com/emekaobi/storefront-backend/sessions"
)

func init() {
	logger.Initialize("development")
	gin.SetMode(gin.TestMode)
}

// fakeCatalog serves a fixed product set.
type fakeCatalog struct {
	products map[string]models.Product
}

func (f *fakeCatalog) FindByID(_ context.Context, id string) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return &p, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCatalog) Find(context.Context, repository.ProductFilters) ([]models.Product, int64, error) {
	return nil, 0, nil
}
func (f *fakeCatalog) Create(context.Context, *models.Product) error { return nil }
func (f *fakeCatalog) Update(context.Context, string, map[string]interface{}) error {
	return nil
}
func (f *fakeCatalog) Delete(context.Context, string) error { return nil }

func cartTestRouter() *gin.Engine {
	catalog := &fakeCatalog{products: map[string]models.Product{
		"A": {ID: "A", Name: "Widget", Price: 1000},
		"B": {ID: "B", Name: "Gadget", Price: 500},
	}}
	cc := NewCartController(sessions.NewManager(nil), catalog)

	r := gin.New()
	r.Use(errs.ErrorMiddleware())
	r.GET("/cart", cc.GetCart)
	r.POST("/cart/items", cc.AddItem)
	r.POST("/cart/items/:product_id/decrease", cc.DecreaseItem)
	r.DELETE("/cart/items/:product_id", cc.RemoveItem)
	r.DELETE("/session", cc.EndSession)
	return r
}

func cartDo(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("X-Session-ID", "test-session")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCartFlow(t *testing.T) {
	r := cartTestRouter()

	// empty to start
	w := cartDo(r, http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeCart(t, w)
	assert.Empty(t, resp.Items)
	assert.Equal(t, int64(0), resp.Total)

	// add A twice and B once
	cartDo(r, http.MethodPost, "/cart/items", `{"product_id":"A"}`)
	cartDo(r, http.MethodPost, "/cart/items", `{"product_id":"A"}`)
	w = cartDo(r, http.MethodPost, "/cart/items", `{"product_id":"B"}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp = decodeCart(t, w)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, int64(2500), resp.Total)
	assert.Equal(t, "₦25.00", resp.TotalDisplay)

	// decrease below one stays at one
	cartDo(r, http.MethodPost, "/cart/items/B/decrease", "")
	w = cartDo(r, http.MethodPost, "/cart/items/B/decrease", "")
	resp = decodeCart(t, w)
	assert.Equal(t, 1, resp.Items[1].Quantity)

	// remove a line
	w = cartDo(r, http.MethodDelete, "/cart/items/A", "")
	resp = decodeCart(t, w)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "B", resp.Items[0].ProductID)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	r := cartTestRouter()
	w := cartDo(r, http.MethodPost, "/cart/items", `{"product_id":"missing"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"code":404,"message":"product not found"}`, w.Body.String())
}

func TestEndSession_ForgetsCart(t *testing.T) {
	r := cartTestRouter()

	cartDo(r, http.MethodPost, "/cart/items", `{"product_id":"A"}`)

	w := cartDo(r, http.MethodDelete, "/session", "")
	require.Equal(t, http.StatusOK, w.Code)

	// same session id now gets a fresh cart
	w = cartDo(r, http.MethodGet, "/cart", "")
	resp := decodeCart(t, w)
	assert.Empty(t, resp.Items)
	assert.Equal(t, int64(0), resp.Total)
}

func TestAddItem_MissingProductID(t *testing.T) {
	r := cartTestRouter()
	w := cartDo(r, http.MethodPost, "/cart/items", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
