package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tribute-api/internal/config"
)

type staticHealth struct {
	err error
}

func (s staticHealth) CheckHealth(ctx context.Context) error {
	return s.err
}

func setupTestRouter(t *testing.T, health HealthChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h, _ := setupTestHandler(t)
	router := gin.New()
	SetupMiddleware(router, quietLogger())
	SetupRoutes(router, &RouterConfig{Tributes: h, Health: health, Logger: quietLogger()})
	return router
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestRoutes_FunctionPaths(t *testing.T) {
	router := setupTestRouter(t, staticHealth{})

	w := serve(router, http.MethodPost, "/.netlify/functions/add-tribute", `{"from":"Ana","msg":"hi","photos":["a.jpg"]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(router, http.MethodGet, "/.netlify/functions/get-tributes?page=1&pageSize=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalCount":1`)

	w = serve(router, http.MethodGet, "/.netlify/functions/add-tribute", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"Method Not Allowed"}`, w.Body.String())

	w = serve(router, http.MethodOptions, "/.netlify/functions/delete-tribute", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRoutes_ResourcePaths(t *testing.T) {
	router := setupTestRouter(t, staticHealth{})

	w := serve(router, http.MethodPost, "/api/v1/tributes", `{"from":"Ana","msg":"hi"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = serve(router, http.MethodPut, "/api/v1/tributes", `{"id":1,"from":"Ben","msg":"edited"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"msg":"edited"`)

	w = serve(router, http.MethodDelete, "/api/v1/tributes", `{"id":1}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(router, http.MethodGet, "/api/v1/tributes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tributes":[]`)
}

func TestRoutes_Health(t *testing.T) {
	w := serve(setupTestRouter(t, staticHealth{}), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
	assert.Contains(t, w.Body.String(), `"mode":"`+config.GetDeploymentMode()+`"`)

	w = serve(setupTestRouter(t, staticHealth{err: errors.New("unreachable")}), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unreachable")
}
