package handlers

import (
	"net/http"

	"desireways/models"
	"desireways/store"

	"github.com/gin-gonic/gin"
)

type ToggleWishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// ToggleWishlist flips set membership for one product. The add side is a
// set-union so an id can never be duplicated, and toggling twice restores
// the original state.
func ToggleWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ToggleWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	if _, err := store.Get().ProductByID(ctx, req.ProductID); err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	user, err := store.Get().UserByID(ctx, userID)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	wishlisted := false
	for _, item := range user.Wishlist {
		if item.ProductID == req.ProductID {
			wishlisted = true
			break
		}
	}

	if wishlisted {
		err = store.Get().RemoveFromWishlist(ctx, userID, req.ProductID)
	} else {
		err = store.Get().AddToWishlist(ctx, userID, req.ProductID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"productId":  req.ProductID,
		"wishlisted": !wishlisted,
	})
}

func IsWishlisted(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID := c.Param("productId")

	ctx, cancel := reqContext()
	defer cancel()

	user, err := store.Get().UserByID(ctx, userID)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	wishlisted := false
	for _, item := range user.Wishlist {
		if item.ProductID == productID {
			wishlisted = true
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"productId":  productID,
		"wishlisted": wishlisted,
	})
}

// GetWishlist renders the saved set against the catalog. Ids whose product
// no longer exists are skipped rather than surfaced as errors.
func GetWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	user, err := store.Get().UserByID(ctx, userID)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	items := make([]models.Product, 0, len(user.Wishlist))
	for _, entry := range user.Wishlist {
		product, err := store.Get().ProductByID(ctx, entry.ProductID)
		if err == store.ErrNotFound {
			continue
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}
		items = append(items, *product)
	}

	c.JSON(http.StatusOK, gin.H{"wishlist": items})
}
