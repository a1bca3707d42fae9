package domain

import (
	"time"
)

// Product range tags. A store carries the ranges of goods it sells; a product
// carries the ranges it is sold under.
const (
	RangePharmacy     = "Pharmacie"
	RangeParapharmacy = "Parapharmacie"
	RangeCosmetics    = "Cosmétique"
)

// Store represents a point of sale (pharmacy or parapharmacy).
type Store struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Address       string    `json:"address,omitempty"`
	City          string    `json:"city"` // wilaya, not the raw commune
	PostalCode    string    `json:"postal_code,omitempty"`
	Country       string    `json:"country,omitempty"`
	Location      GeoPoint  `json:"location"`
	Ranges        []string  `json:"ranges"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Website       string    `json:"website,omitempty"`
	GoogleMapsURL string    `json:"google_maps_url,omitempty"`
	Services      []string  `json:"services,omitempty"`
	IsActive      bool      `json:"is_active"`
	IsFeatured    bool      `json:"is_featured"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NearbyStore is a store projection with the computed distance from the
// query point, rounded to one decimal. Ephemeral, never persisted.
type NearbyStore struct {
	Store
	DistanceKm float64 `json:"distance"`
}

// Product represents a catalog product.
type Product struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Slug              string    `json:"slug"`
	Description       string    `json:"description,omitempty"`
	ShortDesc         string    `json:"short_desc,omitempty"`
	Category          string    `json:"category,omitempty"`
	Ranges            []string  `json:"ranges"`
	SkinTypes         []string  `json:"skin_types,omitempty"`
	Volume            string    `json:"volume,omitempty"`
	Price             float64   `json:"price"`
	ActiveIngredients []string  `json:"active_ingredients,omitempty"`
	ImageURL          string    `json:"image_url,omitempty"`
	Images            []string  `json:"images,omitempty"`
	UsageInstructions string    `json:"usage_instructions,omitempty"`
	Benefits          []string  `json:"benefits,omitempty"`
	InStock           bool      `json:"in_stock"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// StoreFilter narrows store listings.
type StoreFilter struct {
	PostalCode string // prefix match
	City       string // case-insensitive equality
	Range      string // must be carried by the store
	Search     string // matches name, city or address
	Page       int
	Limit      int
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	Category string
	Range    string
	SkinType string
	InStock  *bool
	Search   string
	MinPrice float64
	MaxPrice float64
	SortBy   string // price-asc, price-desc, name-asc, name-desc, newest
	Page     int
	Limit    int
}

// StoreStats aggregates the active store directory.
type StoreStats struct {
	Total     int            `json:"total"`
	ByRange   map[string]int `json:"by_range"`
	TopCities []CityCount    `json:"top_cities"`
}

// CityCount is a per-wilaya store count.
type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}
