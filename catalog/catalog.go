// Package catalog bundles the static product list shipped with the app.
// It seeds the products collection on first boot; after that the live
// collection is the catalog source.
package catalog

import (
	_ "embed"
	"encoding/json"

	"desireways/models"
)

//go:embed products.json
var productsJSON []byte

var Categories = []models.Category{
	{ID: 1, Title: "Electronics", ImageURL: "https://images.desireways.example/categories/electronics.jpg"},
	{ID: 2, Title: "Fashion", ImageURL: "https://images.desireways.example/categories/fashion.jpg"},
	{ID: 3, Title: "Home & Kitchen", ImageURL: "https://images.desireways.example/categories/home-kitchen.jpg"},
	{ID: 4, Title: "Books", ImageURL: "https://images.desireways.example/categories/books.jpg"},
	{ID: 5, Title: "Health & Personal Care", ImageURL: "https://images.desireways.example/categories/health.jpg"},
	{ID: 6, Title: "Sports & Fitness", ImageURL: "https://images.desireways.example/categories/sports.jpg"},
	{ID: 7, Title: "Toys & Games", ImageURL: "https://images.desireways.example/categories/toys.jpg"},
	{ID: 8, Title: "Beauty", ImageURL: "https://images.desireways.example/categories/beauty.jpg"},
}

func Products() ([]models.Product, error) {
	var products []models.Product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, err
	}
	return products, nil
}
