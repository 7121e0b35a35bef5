package models

type Product struct {
	ID          string   `bson:"_id" json:"id"`
	Category    string   `bson:"category" json:"category"`
	Name        string   `bson:"name" json:"name"`
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description" json:"description"`
	Price       float64  `bson:"price" json:"price"`
	ActualPrice float64  `bson:"actualPrice,omitempty" json:"actualPrice,omitempty"`
	StockCount  int      `bson:"stockCount" json:"stockCount"`
	Images      []string `bson:"images" json:"images"`
	Videos      []string `bson:"videos,omitempty" json:"videos,omitempty"`
}

type Category struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
}
