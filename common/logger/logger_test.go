package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	Initialize("development")
	gin.SetMode(gin.TestMode)
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())

	var got string
	r.GET("/ping", func(c *gin.Context) {
		got = RequestID(c)
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.NotEmpty(t, got)
	assert.NotEqual(t, "unknown", got)
}

func TestRequestLogger_PropagatesClientRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())

	var got string
	r.GET("/ping", func(c *gin.Context) {
		got = RequestID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "client-supplied-id", got)
}

func TestRequestID_Unknown(t *testing.T) {
	assert.Equal(t, "unknown", RequestID(nil))

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "unknown", RequestID(c))
}
