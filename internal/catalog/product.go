package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Spec is one free-form name/value pair on a listing's specification tab.
type Spec struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Seller is a profile snapshot copied onto the listing when it is created.
// It is a value, not a reference: later changes to the seller's live profile
// do not propagate back into existing listings.
type Seller struct {
	Name       string    `json:"name"`
	Rating     float64   `json:"rating"`
	JoinedDate time.Time `json:"joined_date"`
	Location   string    `json:"location"`
	TotalSales int       `json:"total_sales"`
}

type Product struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	SubCategory    string          `json:"sub_category,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Image          string          `json:"image"`
	Specifications []Spec          `json:"specifications,omitempty"`
	Condition      string          `json:"condition"`
	Seller         Seller          `json:"seller"`
	SellerID       string          `json:"seller_id"`
	CreatedAt      time.Time       `json:"created_at"`
	Featured       bool            `json:"featured,omitempty"`
}
