package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"desireways/catalog"
	"desireways/middleware"
	"desireways/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the handlers onto a bare engine against a fresh
// in-memory store seeded with the bundled catalog.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := store.NewMemory()
	store.Set(s)

	products, err := catalog.Products()
	require.NoError(t, err)
	require.NoError(t, s.SeedProducts(context.Background(), products))

	// No external lookups from tests: geo disabled, search falls back
	// to the catalog.
	geoEndpoint = ""
	t.Setenv("GOOGLE_SEARCH_API_KEY", "")
	t.Setenv("GOOGLE_SEARCH_CX", "")

	r := gin.New()
	r.POST("/api/signup", Signup)
	r.POST("/api/login", Login)
	r.GET("/api/products", GetProducts)
	r.GET("/api/products/:id", GetProduct)
	r.GET("/api/products/:id/reviews", GetProductReviews)
	r.GET("/api/categories", GetCategories)
	r.GET("/api/search", Search)

	protected := r.Group("/api", middleware.JWTAuthMiddleware())
	protected.GET("/me", GetMe)
	protected.GET("/me/points", GetMyPoints)
	protected.GET("/me/points/log", GetPointsLog)
	protected.GET("/me/referral", GetReferral)
	protected.GET("/me/profile", GetProfile)
	protected.PUT("/me/profile", SaveProfile)
	protected.GET("/me/logs", GetMyLogs)
	protected.GET("/me/wishlist", GetWishlist)
	protected.POST("/wishlist/toggle", ToggleWishlist)
	protected.GET("/wishlist/:productId", IsWishlisted)
	protected.POST("/reviews", SubmitReview)
	protected.PUT("/reviews/:id", EditReview)
	protected.DELETE("/reviews/:id", DeleteReview)

	return r
}

func httpDo(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// signup registers a user and returns (token, userId, referralCode).
func signup(t *testing.T, r *gin.Engine, email, referralCode string) (string, string, string) {
	t.Helper()
	body := map[string]string{"email": email, "password": "secret123"}
	if referralCode != "" {
		body["referralCode"] = referralCode
	}
	w := httpDo(r, "POST", "/api/signup", "", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode(t, w)
	return resp["token"].(string), resp["userId"].(string), resp["referralCode"].(string)
}
