package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetProducts(t *testing.T) {
	r := newTestRouter(t)

	w := httpDo(r, "GET", "/api/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	products := decode(t, w)["products"].([]interface{})
	require.Len(t, products, 8)

	w = httpDo(r, "GET", "/api/products?category=Electronics", "", nil)
	products = decode(t, w)["products"].([]interface{})
	require.Len(t, products, 2)
	for _, raw := range products {
		require.Equal(t, "Electronics", raw.(map[string]interface{})["category"])
	}

	w = httpDo(r, "GET", "/api/products?category=Nonexistent", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decode(t, w)["products"])
}

func TestGetProduct(t *testing.T) {
	r := newTestRouter(t)

	w := httpDo(r, "GET", "/api/products/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	product := decode(t, w)
	require.Equal(t, "Aurora Wireless Earbuds", product["title"])
	require.EqualValues(t, 140, product["stockCount"])

	w = httpDo(r, "GET", "/api/products/999", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCategories(t *testing.T) {
	r := newTestRouter(t)

	w := httpDo(r, "GET", "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	categories := decode(t, w)["categories"].([]interface{})
	require.Len(t, categories, 8)
	require.Equal(t, "Electronics", categories[0].(map[string]interface{})["title"])
}

func TestSearchFallsBackToCatalog(t *testing.T) {
	r := newTestRouter(t)

	// Without API credentials the search runs against the catalog.
	w := httpDo(r, "GET", "/api/search?q=kettlebell", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.Equal(t, "catalog", resp["source"])
	results := resp["results"].([]interface{})
	require.Len(t, results, 1)
	require.Equal(t, "Flux Adjustable Kettlebell", results[0].(map[string]interface{})["title"])

	w = httpDo(r, "GET", "/api/search?q=", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = httpDo(r, "GET", "/api/search?q=zzzznotfound", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decode(t, w)["results"])
}
