package catalog

import "boutique/internal/models"

// Products is the LUXE BOUTIQUE definition set. FloorPrice is the lowest
// price an item may be haggled down to and is never shown to customers.
var Products = []models.Product{
	{ID: "1", Name: "Cashmere Overcoat", Description: "Full-length Italian cashmere overcoat with a clean notch lapel.", Price: 1299, FloorPrice: 999, Category: "Outerwear", Tags: []string{"formal", "winter", "luxury", "Italian"}, Colors: []string{"Charcoal", "Camel", "Navy"}, Sizes: []string{"S", "M", "L", "XL"}, Rating: 4.8, Reviews: 124, InStock: true, StockCount: 15},
	{ID: "2", Name: "Silk Evening Dress", Description: "Bias-cut silk gown made for evening receptions and weddings.", Price: 899, FloorPrice: 699, Category: "Dresses", Tags: []string{"formal", "evening", "luxury", "silk", "wedding"}, Colors: []string{"Champagne", "Black", "Burgundy"}, Sizes: []string{"XS", "S", "M", "L"}, Rating: 4.9, Reviews: 89, InStock: true, StockCount: 8},
	{ID: "3", Name: "Leather Oxford Shoes", Description: "Handmade cap-toe oxfords in full-grain calf leather.", Price: 459, FloorPrice: 350, Category: "Shoes", Tags: []string{"formal", "classic", "leather", "handmade"}, Colors: []string{"Brown", "Black", "Cognac"}, Sizes: []string{"7", "8", "9", "10", "11", "12"}, Rating: 4.7, Reviews: 203, InStock: true, StockCount: 22},
	{ID: "4", Name: "Aviator Sunglasses", Description: "Classic metal-frame aviators with polarized lenses for sun and travel.", Price: 289, FloorPrice: 220, Category: "Accessories", Tags: []string{"summer", "beach", "travel", "sunglasses"}, Colors: []string{"Gold/Green", "Silver/Blue", "Rose Gold"}, Sizes: []string{"One Size"}, Rating: 4.6, Reviews: 312, InStock: true, StockCount: 45},
	{ID: "5", Name: "Linen Summer Suit", Description: "Unstructured linen suit cut for warm-weather weddings in Italy.", Price: 749, FloorPrice: 580, Category: "Suits", Tags: []string{"summer", "wedding", "Italy", "linen", "formal"}, Colors: []string{"Beige", "Light Blue", "White"}, Sizes: []string{"S", "M", "L", "XL"}, Rating: 4.8, Reviews: 67, InStock: true, StockCount: 12},
	{ID: "6", Name: "Merino Wool Sweater", Description: "Fine-gauge merino crewneck for everyday winter layering.", Price: 199, FloorPrice: 150, Category: "Knitwear", Tags: []string{"casual", "winter", "layering", "wool"}, Colors: []string{"Heather Grey", "Navy", "Forest Green", "Burgundy"}, Sizes: []string{"XS", "S", "M", "L", "XL"}, Rating: 4.5, Reviews: 456, InStock: true, StockCount: 78},
	{ID: "7", Name: "Leather Weekender Bag", Description: "Roomy full-leather duffel sized for a weekend of travel.", Price: 589, FloorPrice: 450, Category: "Bags", Tags: []string{"travel", "leather", "luxury", "weekend"}, Colors: []string{"Tan", "Dark Brown", "Black"}, Sizes: []string{"One Size"}, Rating: 4.9, Reviews: 98, InStock: true, StockCount: 6},
	{ID: "8", Name: "Silk Pocket Square Set", Description: "Set of three hand-rolled silk pocket squares, boxed for gifting.", Price: 129, FloorPrice: 95, Category: "Accessories", Tags: []string{"formal", "silk", "gift", "accessories"}, Colors: []string{"Assorted"}, Sizes: []string{"One Size"}, Rating: 4.4, Reviews: 87, InStock: true, StockCount: 34},
	{ID: "9", Name: "Tailored Chinos", Description: "Slim stretch-cotton chinos that dress up or down for every day.", Price: 159, FloorPrice: 120, Category: "Trousers", Tags: []string{"casual", "smart", "cotton", "everyday"}, Colors: []string{"Khaki", "Navy", "Stone", "Olive"}, Sizes: []string{"28", "30", "32", "34", "36"}, Rating: 4.6, Reviews: 534, InStock: true, StockCount: 92},
	{ID: "10", Name: "Automatic Watch", Description: "Swiss automatic dress watch with a sapphire crystal and leather strap.", Price: 1899, FloorPrice: 1500, Category: "Watches", Tags: []string{"luxury", "formal", "Swiss", "gift", "automatic"}, Colors: []string{"Silver/Black", "Gold/Brown", "Rose Gold/Navy"}, Sizes: []string{"One Size"}, Rating: 4.9, Reviews: 76, InStock: true, StockCount: 4},
	{ID: "11", Name: "Cotton Poplin Shirt", Description: "Crisp poplin dress shirt with a spread collar for the office.", Price: 189, FloorPrice: 140, Category: "Shirts", Tags: []string{"formal", "cotton", "office", "classic"}, Colors: []string{"White", "Light Blue", "Pink", "Lavender"}, Sizes: []string{"S", "M", "L", "XL", "XXL"}, Rating: 4.7, Reviews: 321, InStock: true, StockCount: 56},
	{ID: "12", Name: "Suede Chelsea Boots", Description: "Italian suede chelsea boots on a low stacked heel.", Price: 379, FloorPrice: 290, Category: "Shoes", Tags: []string{"casual", "suede", "boots", "Italian"}, Colors: []string{"Tan", "Grey", "Black"}, Sizes: []string{"7", "8", "9", "10", "11"}, Rating: 4.6, Reviews: 178, InStock: true, StockCount: 19},
	{ID: "13", Name: "Cashmere Scarf", Description: "Two-ply woven cashmere scarf, warm without the bulk.", Price: 249, FloorPrice: 180, Category: "Accessories", Tags: []string{"winter", "cashmere", "luxury", "gift"}, Colors: []string{"Camel", "Grey", "Navy", "Burgundy"}, Sizes: []string{"One Size"}, Rating: 4.8, Reviews: 145, InStock: true, StockCount: 28},
	{ID: "14", Name: "Velvet Blazer", Description: "Statement cotton-velvet blazer for evening occasions.", Price: 599, FloorPrice: 460, Category: "Blazers", Tags: []string{"formal", "evening", "velvet", "statement"}, Colors: []string{"Midnight Blue", "Burgundy", "Forest Green"}, Sizes: []string{"S", "M", "L", "XL"}, Rating: 4.7, Reviews: 54, InStock: true, StockCount: 11},
	{ID: "15", Name: "Leather Belt", Description: "Full-grain leather belt with a brushed buckle, an everyday essential.", Price: 139, FloorPrice: 100, Category: "Accessories", Tags: []string{"classic", "leather", "everyday", "essential"}, Colors: []string{"Brown", "Black", "Tan"}, Sizes: []string{"30", "32", "34", "36", "38"}, Rating: 4.5, Reviews: 267, InStock: true, StockCount: 41},
	{ID: "16", Name: "Linen Beach Shirt", Description: "Relaxed washed-linen shirt for beach days and vacations.", Price: 129, FloorPrice: 95, Category: "Shirts", Tags: []string{"summer", "beach", "casual", "linen", "vacation"}, Colors: []string{"White", "Sky Blue", "Sand", "Coral"}, Sizes: []string{"S", "M", "L", "XL"}, Rating: 4.4, Reviews: 198, InStock: true, StockCount: 63},
	{ID: "17", Name: "Leather Wallet", Description: "Slim bifold wallet in vegetable-tanned leather.", Price: 119, FloorPrice: 85, Category: "Accessories", Tags: []string{"leather", "everyday", "gift", "essential"}, Colors: []string{"Cognac", "Black", "Dark Brown"}, Sizes: []string{"One Size"}, Rating: 4.6, Reviews: 412, InStock: true, StockCount: 55},
	{ID: "18", Name: "Down Puffer Vest", Description: "Lightweight down vest that layers under coats for winter outings.", Price: 329, FloorPrice: 250, Category: "Outerwear", Tags: []string{"winter", "outdoor", "layering", "lightweight"}, Colors: []string{"Black", "Navy", "Olive"}, Sizes: []string{"S", "M", "L", "XL"}, Rating: 4.7, Reviews: 89, InStock: true, StockCount: 17},
	{ID: "19", Name: "Pearl Cufflinks", Description: "Mother-of-pearl cufflinks for black-tie evenings.", Price: 199, FloorPrice: 150, Category: "Accessories", Tags: []string{"formal", "luxury", "gift", "black tie"}, Colors: []string{"Silver/White", "Gold/White"}, Sizes: []string{"One Size"}, Rating: 4.8, Reviews: 42, InStock: false, StockCount: 0},
	{ID: "20", Name: "Tweed Sport Coat", Description: "Scottish tweed sport coat in a heritage herringbone weave.", Price: 699, FloorPrice: 540, Category: "Blazers", Tags: []string{"formal", "heritage", "tweed", "Scottish", "winter"}, Colors: []string{"Brown Herringbone", "Grey Check"}, Sizes: []string{"S", "M", "L", "XL"}, Rating: 4.7, Reviews: 63, InStock: true, StockCount: 9},
}
