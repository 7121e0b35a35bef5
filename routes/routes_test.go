package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"desireways/catalog"
	"desireways/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := store.NewMemory()
	store.Set(s)
	products, err := catalog.Products()
	require.NoError(t, err)
	require.NoError(t, s.SeedProducts(context.Background(), products))

	r := gin.New()
	Register(r)
	return r
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "ok", resp["status"])
}

func TestUnknownAPIRouteReturnsJSON404(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/no-such-thing", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Endpoint not found", resp["error"])
}

func TestSignupThenMe(t *testing.T) {
	r := setupRouter(t)

	body, _ := json.Marshal(map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	req := httptest.NewRequest("POST", "/api/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var signup map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signup))
	token := signup["token"].(string)
	require.NotEmpty(t, token)

	req = httptest.NewRequest("GET", "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var me map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.Equal(t, "alice@example.com", me["email"])
	require.EqualValues(t, 20, me["points"])
	require.Equal(t, "incomplete", me["profileStatus"])
}
