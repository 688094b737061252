package errors

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emekaobi/storefront-backend/common/logger"
)

func init() {
	logger.Initialize("development")
	gin.SetMode(gin.TestMode)
}

func errorRouter(handler gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(logger.RequestLogger(), ErrorMiddleware())
	r.GET("/test", handler)
	return r
}

func TestErrorMiddleware_RendersTaxonomyError(t *testing.T) {
	r := errorRouter(func(c *gin.Context) {
		_ = c.Error(ErrEmptyCart)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"code":400,"message":"Your cart is empty!"}`, w.Body.String())
}

func TestErrorMiddleware_WrapsUnknownErrors(t *testing.T) {
	r := errorRouter(func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("datastore unavailable"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.NotContains(t, w.Body.String(), "datastore unavailable") // cause stays out of the response
}

func TestErrorMiddleware_NoErrorsPassesThrough(t *testing.T) {
	r := errorRouter(func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"ok"}`, w.Body.String())
}

func TestWrap_KeepsCodeAndMessage(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	wrapped := Wrap(ErrGateway, cause)

	assert.Equal(t, ErrGateway.Code, wrapped.Code)
	assert.Equal(t, ErrGateway.Message, wrapped.Message)
	assert.ErrorIs(t, wrapped, cause)
	assert.Nil(t, ErrGateway.Err) // the taxonomy value itself is untouched
}
