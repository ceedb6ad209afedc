package client

import (
	"time"

	"github.com/durwesh/perfume-shop/internal/shop"
)

var sampleTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// SampleCatalog is the bundled fallback shown when the API is unreachable,
// so the storefront is never empty.
func SampleCatalog() []shop.Product {
	return []shop.Product{
		{
			ID:          1,
			Name:        "Wasim Akram 502",
			Description: "A bold and sophisticated fragrance for the modern gentleman. Woody and spicy notes that exude confidence.",
			Price:       5900,
			ImageURL:    "https://images.pexels.com/photos/965989/pexels-photo-965989.jpeg",
			Category:    "For Him",
			InStock:     true,
			CreatedAt:   sampleTime,
			UpdatedAt:   sampleTime,
		},
		{
			ID:          2,
			Name:        "Mika",
			Description: "Fresh and vibrant scent that captivates the senses. A blend of citrus and floral notes suitable for everyone.",
			Price:       3000,
			ImageURL:    "https://images.pexels.com/photos/965990/pexels-photo-965990.jpeg",
			Category:    "Unisex",
			InStock:     true,
			CreatedAt:   sampleTime,
			UpdatedAt:   sampleTime,
		},
		{
			ID:          3,
			Name:        "Rose Elegance",
			Description: "A romantic rose fragrance with notes of Bulgarian rose, peony and white musk. Perfect for special occasions.",
			Price:       4800,
			ImageURL:    "https://images.pexels.com/photos/1190829/pexels-photo-1190829.jpeg",
			Category:    "For Her",
			InStock:     true,
			CreatedAt:   sampleTime,
			UpdatedAt:   sampleTime,
		},
		{
			ID:          4,
			Name:        "Ocean Breeze",
			Description: "Fresh aquatic fragrance inspired by ocean waves. Clean and invigorating with marine notes and white tea.",
			Price:       3500,
			ImageURL:    "https://images.pexels.com/photos/1190830/pexels-photo-1190830.jpeg",
			Category:    "Unisex",
			InStock:     true,
			CreatedAt:   sampleTime,
			UpdatedAt:   sampleTime,
		},
		{
			ID:          5,
			Name:        "Midnight Oud",
			Description: "Luxurious oud fragrance with deep, mysterious notes. Rich blend of agarwood, sandalwood and dark spices.",
			Price:       7200,
			ImageURL:    "https://images.pexels.com/photos/1190831/pexels-photo-1190831.jpeg",
			Category:    "For Him",
			InStock:     true,
			CreatedAt:   sampleTime,
			UpdatedAt:   sampleTime,
		},
		{
			ID:          6,
			Name:        "Royal Amber",
			Description: "Regal amber fragrance with warm, resinous notes. Sophisticated blend of amber, benzoin and precious woods.",
			Price:       6500,
			ImageURL:    "https://images.pexels.com/photos/1190834/pexels-photo-1190834.jpeg",
			Category:    "For Him",
			InStock:     false,
			CreatedAt:   sampleTime,
			UpdatedAt:   sampleTime,
		},
	}
}
