package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// seedProducts builds the sample listings used when no catalog has been
// persisted yet. IDs are fixed so the sample purchase history can refer to
// them.
func seedProducts() []Product {
	now := time.Now().UTC()

	johndoe := Seller{Name: "johndoe", Rating: 4.8, JoinedDate: now.AddDate(-2, 0, 0), Location: "Portland, OR", TotalSales: 32}
	janedoe := Seller{Name: "janedoe", Rating: 4.6, JoinedDate: now.AddDate(-1, -6, 0), Location: "Austin, TX", TotalSales: 21}
	bobsmith := Seller{Name: "bobsmith", Rating: 4.9, JoinedDate: now.AddDate(-3, 0, 0), Location: "Burlington, VT", TotalSales: 58}

	return []Product{
		{
			ID:          "1",
			Title:       "Vintage Leather Jacket",
			Description: "Genuine leather jacket in excellent condition. Worn only a few times.",
			Category:    "Clothing",
			SubCategory: "Outerwear",
			Price:       decimal.RequireFromString("89.99"),
			Image:       "/placeholder.svg?height=300&width=300",
			Specifications: []Spec{
				{Name: "Size", Value: "M"},
				{Name: "Material", Value: "Genuine leather"},
			},
			Condition: "Excellent",
			Seller:    johndoe,
			SellerID:  "1",
			CreatedAt: now.AddDate(0, 0, -7),
			Featured:  true,
		},
		{
			ID:          "2",
			Title:       "Mechanical Keyboard",
			Description: "Mechanical keyboard with Cherry MX Brown switches. Great for typing and gaming.",
			Category:    "Electronics",
			SubCategory: "Computers",
			Price:       decimal.RequireFromString("45.50"),
			Image:       "/placeholder.svg?height=300&width=300",
			Specifications: []Spec{
				{Name: "Switches", Value: "Cherry MX Brown"},
				{Name: "Layout", Value: "Tenkeyless"},
			},
			Condition: "Good",
			Seller:    johndoe,
			SellerID:  "1",
			CreatedAt: now.AddDate(0, 0, -14),
		},
		{
			ID:          "3",
			Title:       "Vintage Record Player",
			Description: "Fully functional record player from the 70s. Great sound quality.",
			Category:    "Electronics",
			SubCategory: "Audio",
			Price:       decimal.RequireFromString("120.00"),
			Image:       "/placeholder.svg?height=300&width=300",
			Specifications: []Spec{
				{Name: "Era", Value: "1970s"},
				{Name: "Speeds", Value: "33/45 RPM"},
			},
			Condition: "Good",
			Seller:    janedoe,
			SellerID:  "2",
			CreatedAt: now.AddDate(0, 0, -21),
			Featured:  true,
		},
		{
			ID:          "4",
			Title:       "Mountain Bike",
			Description: "Lightly used mountain bike. 21 speeds, disc brakes.",
			Category:    "Sports",
			SubCategory: "Cycling",
			Price:       decimal.RequireFromString("210.00"),
			Image:       "/placeholder.svg?height=300&width=300",
			Specifications: []Spec{
				{Name: "Speeds", Value: "21"},
				{Name: "Brakes", Value: "Disc"},
			},
			Condition: "Lightly used",
			Seller:    janedoe,
			SellerID:  "2",
			CreatedAt: now.AddDate(0, 0, -30),
			Featured:  true,
		},
		{
			ID:          "5",
			Title:       "Antique Wooden Chair",
			Description: "Beautiful wooden chair from the early 1900s. Some wear but in good condition.",
			Category:    "Home & Living",
			SubCategory: "Furniture",
			Price:       decimal.RequireFromString("75.00"),
			Image:       "/placeholder.svg?height=300&width=300",
			Specifications: []Spec{
				{Name: "Era", Value: "Early 1900s"},
				{Name: "Wood", Value: "Oak"},
			},
			Condition: "Fair",
			Seller:    bobsmith,
			SellerID:  "3",
			CreatedAt: now.AddDate(0, 0, -45),
			Featured:  true,
		},
		{
			ID:          "6",
			Title:       "Handmade Ceramic Vase",
			Description: "Unique handmade ceramic vase. Perfect for fresh or dried flowers.",
			Category:    "Home & Living",
			SubCategory: "Decor",
			Price:       decimal.RequireFromString("35.00"),
			Image:       "/placeholder.svg?height=300&width=300",
			Specifications: []Spec{
				{Name: "Height", Value: "28 cm"},
				{Name: "Glaze", Value: "Matte white"},
			},
			Condition: "Excellent",
			Seller:    bobsmith,
			SellerID:  "3",
			CreatedAt: now.AddDate(0, 0, -60),
		},
	}
}
