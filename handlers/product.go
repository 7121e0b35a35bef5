package handlers

import (
	"log"
	"net/http"

	"desireways/catalog"
	"desireways/models"
	"desireways/store"

	"github.com/gin-gonic/gin"
)

func GetProducts(c *gin.Context) {
	ctx, cancel := reqContext()
	defer cancel()

	products, err := store.Get().Products(ctx, c.Query("category"))
	if err != nil {
		log.Printf("[GetProducts] Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func GetProduct(c *gin.Context) {
	ctx, cancel := reqContext()
	defer cancel()

	product, err := store.Get().ProductByID(ctx, c.Param("id"))
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": catalog.Categories})
}
