package stub

import "strings"

// Product is one catalog entry served by the stub backend.
type Product struct {
	StockCode   string
	Description string
	Category    string
	Price       float64
	Popularity  float64
}

// seedProducts returns the fixed demo catalog, most popular first within
// each category.
func seedProducts() []Product {
	return []Product{
		{StockCode: "22423", Description: "Regency Cakestand 3 Tier", Category: "Kitchen", Price: 12.75, Popularity: 0.97},
		{StockCode: "85123A", Description: "White Hanging Heart T-Light Holder", Category: "Home Decor", Price: 2.95, Popularity: 0.95},
		{StockCode: "47566", Description: "Party Bunting", Category: "Party", Price: 4.95, Popularity: 0.91},
		{StockCode: "84879", Description: "Assorted Colour Bird Ornament", Category: "Home Decor", Price: 1.69, Popularity: 0.88},
		{StockCode: "22720", Description: "Set of 3 Cake Tins Pantry Design", Category: "Kitchen", Price: 4.95, Popularity: 0.86},
		{StockCode: "21212", Description: "Pack of 72 Retrospot Cake Cases", Category: "Party", Price: 0.55, Popularity: 0.84},
		{StockCode: "20725", Description: "Lunch Bag Red Retrospot", Category: "Bags", Price: 1.65, Popularity: 0.82},
		{StockCode: "22383", Description: "Lunch Bag Suki Design", Category: "Bags", Price: 1.65, Popularity: 0.78},
		{StockCode: "23298", Description: "Spotty Bunting", Category: "Party", Price: 4.95, Popularity: 0.74},
		{StockCode: "22086", Description: "Paper Chain Kit 50's Christmas", Category: "Seasonal", Price: 2.95, Popularity: 0.71},
		{StockCode: "84946", Description: "Antique Silver T-Light Glass", Category: "Home Decor", Price: 1.25, Popularity: 0.68},
		{StockCode: "22960", Description: "Jam Making Set With Jars", Category: "Kitchen", Price: 4.25, Popularity: 0.66},
		{StockCode: "21931", Description: "Jumbo Storage Bag Suki", Category: "Bags", Price: 2.08, Popularity: 0.63},
		{StockCode: "22469", Description: "Heart of Wicker Small", Category: "Home Decor", Price: 1.65, Popularity: 0.59},
		{StockCode: "23084", Description: "Rabbit Night Light", Category: "Kids", Price: 2.08, Popularity: 0.57},
		{StockCode: "22138", Description: "Baking Set 9 Piece Retrospot", Category: "Kitchen", Price: 4.95, Popularity: 0.54},
		{StockCode: "21754", Description: "Home Building Block Word", Category: "Home Decor", Price: 5.95, Popularity: 0.49},
		{StockCode: "22551", Description: "Plasters in Tin Spaceboy", Category: "Kids", Price: 1.65, Popularity: 0.45},
		{StockCode: "23355", Description: "Hot Water Bottle Keep Calm", Category: "Seasonal", Price: 4.95, Popularity: 0.42},
		{StockCode: "85099B", Description: "Jumbo Bag Red Retrospot", Category: "Bags", Price: 1.79, Popularity: 0.40},
	}
}

// categories returns the distinct category names in seed order.
func categories(products []Product) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// matchCategory finds a seeded category mentioned in the query, if any.
func matchCategory(query string, cats []string) string {
	lower := strings.ToLower(query)
	for _, c := range cats {
		if strings.Contains(lower, strings.ToLower(c)) {
			return c
		}
	}
	return ""
}
