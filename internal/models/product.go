package models

import (
	"github.com/shopspring/decimal"
)

// CategoryTag is the fixed set of storefront categories.
type CategoryTag string

const (
	CategoryPrescription CategoryTag = "prescription"
	CategoryOTC          CategoryTag = "otc"
	CategoryPersonalCare CategoryTag = "personal-care"
	CategoryVitamins     CategoryTag = "vitamins"
)

// Product is read-only catalog reference data.
type Product struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	Price                decimal.Decimal `json:"price"`
	ImageURL             string          `json:"image"`
	Category             CategoryTag     `json:"category"`
	InStock              bool            `json:"inStock"`
	RequiresPrescription bool            `json:"requiresPrescription"`
}

// DrugDetails is the catalog's hydration payload for a drug id. Remote cart
// items and wishlist entries carry only a drug id; this fills in the rest.
type DrugDetails struct {
	DrugID            string          `json:"drugId"`
	DrugName          string          `json:"drugName"`
	Description       string          `json:"description,omitempty"`
	ImageURL          string          `json:"imageUrl,omitempty"`
	Price             decimal.Decimal `json:"price"`
	Available         bool            `json:"available"`
	CategoryName      string          `json:"categoryName,omitempty"`
	ActiveIngredients string          `json:"activeIngredients,omitempty"`
}

// Product converts catalog details into the storefront product shape.
func (d DrugDetails) Product() Product {
	return Product{
		ID:          d.DrugID,
		Name:        d.DrugName,
		Description: d.Description,
		Price:       d.Price,
		ImageURL:    d.ImageURL,
		Category:    CategoryTag(d.CategoryName),
		InStock:     d.Available,
	}
}

// Category is a browsable drug category.
type Category struct {
	ID           string `json:"id,omitempty"`
	CategoryName string `json:"categoryName"`
	Logo         string `json:"logo,omitempty"`
}
