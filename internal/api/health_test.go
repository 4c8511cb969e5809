package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	healthy := NewHealthHandler(func(context.Context) error { return nil })
	broken := NewHealthHandler(func(context.Context) error { return errors.New("connection refused") })

	r := gin.New()
	r.GET("/ok", healthy.Check)
	r.GET("/down", broken.Check)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"ok"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/down", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"unavailable"`)
}

func TestRegisterRoutes_Health(t *testing.T) {
	api := newTestAPI(t)
	for _, path := range []string{"/health", "/api/health", "/api/v1/health"} {
		w := api.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
