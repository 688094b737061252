package models

import "time"

// Product is a catalog entry. Price is in kobo.
type Product struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Price       int64     `bson:"price" json:"price"`
	Category    string    `bson:"category" json:"category"`
	ImageURL    string    `bson:"image_url" json:"image_url"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
