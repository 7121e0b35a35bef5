package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func submitReview(t *testing.T, r *gin.Engine, token, productID string, rating int, text string) map[string]interface{} {
	t.Helper()
	w := httpDo(r, "POST", "/api/reviews", token, map[string]interface{}{
		"productId": productID,
		"rating":    rating,
		"text":      text,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)
}

func TestSubmitReviewValidation(t *testing.T) {
	r := newTestRouter(t)
	token, _, _ := signup(t, r, "alice@example.com", "")

	cases := []map[string]interface{}{
		{"productId": "1", "rating": 0, "text": "too low"},
		{"productId": "1", "rating": 6, "text": "too high"},
		{"productId": "1", "rating": 4},
		{"productId": "1", "rating": 4, "text": "   "},
		{"rating": 4, "text": "missing product"},
	}
	for _, body := range cases {
		w := httpDo(r, "POST", "/api/reviews", token, body)
		require.Equal(t, http.StatusBadRequest, w.Code, "body: %v", body)
	}

	w := httpDo(r, "POST", "/api/reviews", token, map[string]interface{}{
		"productId": "999", "rating": 4, "text": "unknown product",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestOverallRating(t *testing.T) {
	r := newTestRouter(t)

	// No reviews yet: defined as 0.
	w := httpDo(r, "GET", "/api/products/1/reviews", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.EqualValues(t, 0, resp["overallRating"])
	require.EqualValues(t, 0, resp["count"])

	tokenA, _, _ := signup(t, r, "a@example.com", "")
	tokenB, _, _ := signup(t, r, "b@example.com", "")
	tokenC, _, _ := signup(t, r, "c@example.com", "")

	submitReview(t, r, tokenA, "1", 4, "solid")
	submitReview(t, r, tokenB, "1", 5, "great")
	review3 := submitReview(t, r, tokenC, "1", 3, "okay")

	w = httpDo(r, "GET", "/api/products/1/reviews", "", nil)
	resp = decode(t, w)
	require.EqualValues(t, 3, resp["count"])
	require.InDelta(t, 4.0, resp["overallRating"].(float64), 1e-9)

	// Deleting the 3 lifts the mean to 4.5.
	w = httpDo(r, "DELETE", "/api/reviews/"+review3["id"].(string), tokenC, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = httpDo(r, "GET", "/api/products/1/reviews", "", nil)
	resp = decode(t, w)
	require.EqualValues(t, 2, resp["count"])
	require.InDelta(t, 4.5, resp["overallRating"].(float64), 1e-9)
}

func TestEditReviewTouchesOnlyTarget(t *testing.T) {
	r := newTestRouter(t)

	tokenA, _, _ := signup(t, r, "a@example.com", "")
	tokenB, _, _ := signup(t, r, "b@example.com", "")

	target := submitReview(t, r, tokenA, "1", 2, "meh")
	submitReview(t, r, tokenA, "2", 5, "other product")
	submitReview(t, r, tokenB, "1", 4, "same product, other user")

	w := httpDo(r, "PUT", "/api/reviews/"+target["id"].(string), tokenA, map[string]interface{}{
		"rating": 5, "text": "grew on me",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	edited := decode(t, w)
	require.EqualValues(t, 5, edited["rating"])
	require.Equal(t, "grew on me", edited["text"])

	// The same product's other review is untouched.
	w = httpDo(r, "GET", "/api/products/1/reviews", "", nil)
	reviews := decode(t, w)["reviews"].([]interface{})
	require.Len(t, reviews, 2)
	for _, raw := range reviews {
		review := raw.(map[string]interface{})
		if review["id"] != target["id"] {
			require.EqualValues(t, 4, review["rating"])
			require.Equal(t, "same product, other user", review["text"])
		}
	}

	// Other products too.
	w = httpDo(r, "GET", "/api/products/2/reviews", "", nil)
	reviews = decode(t, w)["reviews"].([]interface{})
	require.Len(t, reviews, 1)
	require.EqualValues(t, 5, reviews[0].(map[string]interface{})["rating"])
}

func TestReviewOwnership(t *testing.T) {
	r := newTestRouter(t)

	tokenA, _, _ := signup(t, r, "a@example.com", "")
	tokenB, _, _ := signup(t, r, "b@example.com", "")

	review := submitReview(t, r, tokenA, "1", 4, "mine")
	id := review["id"].(string)

	// Another user can neither edit nor delete it.
	w := httpDo(r, "PUT", "/api/reviews/"+id, tokenB, map[string]interface{}{
		"rating": 1, "text": "hijacked",
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = httpDo(r, "DELETE", "/api/reviews/"+id, tokenB, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// The owner can.
	w = httpDo(r, "DELETE", "/api/reviews/"+id, tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = httpDo(r, "DELETE", "/api/reviews/"+id, tokenA, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewUsesProfileName(t *testing.T) {
	r := newTestRouter(t)
	token, _, _ := signup(t, r, "alice@example.com", "")

	review := submitReview(t, r, token, "1", 4, "before profile")
	require.Equal(t, "Anonymous", review["userName"])

	w := httpDo(r, "PUT", "/api/me/profile", token, validProfile)
	require.Equal(t, http.StatusOK, w.Code)

	review = submitReview(t, r, token, "2", 5, "after profile")
	require.Equal(t, "Alice", review["userName"])
}
