package catalog

// Category is a static taxonomy entry used for browsing and filtering.
// The taxonomy is fixed at build time and never user-editable.
type Category struct {
	Name          string   `json:"name"`
	Icon          string   `json:"icon"`
	SubCategories []string `json:"sub_categories"`
}

var categories = []Category{
	{Name: "Electronics", Icon: "laptop", SubCategories: []string{"Phones", "Computers", "Audio", "Cameras"}},
	{Name: "Clothing", Icon: "shirt", SubCategories: []string{"Outerwear", "Shoes", "Accessories", "Vintage"}},
	{Name: "Home & Living", Icon: "home", SubCategories: []string{"Furniture", "Decor", "Kitchen", "Lighting"}},
	{Name: "Books", Icon: "book-open", SubCategories: []string{"Fiction", "Non-fiction", "Comics", "Textbooks"}},
	{Name: "Sports", Icon: "dumbbell", SubCategories: []string{"Cycling", "Fitness", "Outdoor", "Team Sports"}},
	{Name: "Beauty", Icon: "sparkles", SubCategories: []string{"Skincare", "Fragrance", "Hair"}},
	{Name: "Gaming", Icon: "gamepad-2", SubCategories: []string{"Consoles", "Games", "Accessories"}},
	{Name: "Art & Collectibles", Icon: "palette", SubCategories: []string{"Paintings", "Ceramics", "Antiques"}},
}

// Categories returns the taxonomy in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}
