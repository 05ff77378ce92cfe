package models

import "gorm.io/gorm"

type Product struct {
	gorm.Model
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	PriceCents  int64  `json:"priceCents" binding:"required"`
	ImageURL    string `json:"imageUrl"`
	Stock       int    `json:"stock"`
}
