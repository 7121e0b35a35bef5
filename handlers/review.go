package handlers

import (
	"math"
	"net/http"
	"strings"
	"time"

	"desireways/models"
	"desireways/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubmitReviewRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Text      string `json:"text" binding:"required"`
}

type EditReviewRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Text   string `json:"text" binding:"required"`
}

func SubmitReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId, rating (1-5) and text are required"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Review text cannot be empty"})
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
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}
	userName := "Anonymous"
	if user.Profile != nil && user.Profile.ProfileName != "" {
		userName = user.Profile.ProfileName
	}

	review := models.Review{
		ID:        primitive.NewObjectID(),
		ProductID: req.ProductID,
		UserID:    userID,
		UserName:  userName,
		Rating:    req.Rating,
		Text:      strings.TrimSpace(req.Text),
		CreatedAt: time.Now().Unix(),
	}

	if err := store.Get().InsertReview(ctx, &review); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save review"})
		return
	}

	c.JSON(http.StatusCreated, review)
}

// EditReview replaces rating and text on exactly the targeted review. Only
// its author can edit it.
func EditReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	var req EditReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating (1-5) and text are required"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Review text cannot be empty"})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	updated, err := store.Get().UpdateReview(ctx, reviewID, userID, req.Rating, strings.TrimSpace(req.Text), time.Now().Unix())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	review, err := store.Get().ReviewByID(ctx, reviewID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review"})
		return
	}
	c.JSON(http.StatusOK, review)
}

func DeleteReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	deleted, err := store.Get().DeleteReview(ctx, reviewID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// GetProductReviews lists a product's reviews with the running mean rating,
// 0 when there are none.
func GetProductReviews(c *gin.Context) {
	productID := c.Param("id")

	ctx, cancel := reqContext()
	defer cancel()

	if _, err := store.Get().ProductByID(ctx, productID); err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	reviews, err := store.Get().ReviewsByProduct(ctx, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	overall := store.OverallRating(reviews)

	c.JSON(http.StatusOK, gin.H{
		"reviews":       reviews,
		"count":         len(reviews),
		"overallRating": math.Round(overall*100) / 100,
	})
}
