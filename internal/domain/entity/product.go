package entity

import (
	"strings"
	"time"
)

type Seller struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	ImageURLs   []string `json:"imageUrls"`
	Category    string   `json:"category"`
	CreatedAt   int64    `json:"createdAt"` // ms since epoch
	Seller      *Seller  `json:"seller,omitempty"`
}

func (p *Product) Ref() ProductRef {
	return ProductRef{ProductID: p.ID, ProductName: p.Name}
}

func (p *Product) SellerID() string {
	if p.Seller == nil {
		return ""
	}
	return p.Seller.ID
}

func (p *Product) Created() time.Time {
	return time.UnixMilli(p.CreatedAt)
}

// Categories a listing may be filed under.
var Categories = []string{
	"Electronics",
	"Fashion",
	"Home & Garden",
	"Sports",
	"Art & Collectibles",
}

// CanonicalCategory returns the listed spelling of category, matched
// case-insensitively.
func CanonicalCategory(category string) (string, bool) {
	for _, c := range Categories {
		if strings.EqualFold(c, strings.TrimSpace(category)) {
			return c, true
		}
	}
	return "", false
}
