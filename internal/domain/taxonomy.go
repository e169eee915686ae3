package domain

// Category is one taxonomy entry. Keywords are matched case-insensitively as
// substrings of the product name. PopularBrands is informational only and
// plays no part in matching. Subcategories are ordered; the first one is the
// fallback when no subcategory rule fires.
type Category struct {
	Name          string
	Keywords      []string
	PopularBrands []string
	Subcategories []string
}

// SubcategoryRule maps a keyword to a subcategory. Rules are evaluated in
// declared order, first match wins, and a rule only applies when its
// subcategory belongs to the matched category.
type SubcategoryRule struct {
	Keyword     string
	Subcategory string
}

// Sentinel classification for products no category keyword matches.
// A valid terminal result, not an error.
const (
	CategoryOther            = "Other Products"
	SubcategoryUncategorized = "Uncategorized"
	SubcategoryGeneral       = "General"
)

// DefaultTaxonomy is the grocery/FMCG taxonomy. Order matters: when a name
// matches keywords from several categories, the earliest declared category
// wins. Read-only after construction.
func DefaultTaxonomy() []Category {
	return []Category{
		{
			Name: "Rice & Grains",
			Keywords: []string{"basmati", "rice", "jasmine", "white rice", "brown rice",
				"arborio", "parboiled", "long grain", "short grain"},
			PopularBrands: []string{"Aeroplane", "India Gate", "Basmati", "Taj", "Daawat"},
			Subcategories: []string{"Basmati", "Regular Rice", "Brown Rice", "Specialty Grains"},
		},
		{
			Name: "Atta & Flour",
			Keywords: []string{"atta", "flour", "maida", "wheat", "besan", "corn flour",
				"ragi", "jowar", "whole wheat"},
			PopularBrands: []string{"Aashirvaad", "Pillsbury", "Maida", "Patanjali", "Catch"},
			Subcategories: []string{"Wheat Atta", "Maida", "Gram Flour", "Specialty Flours"},
		},
		{
			Name: "Dal & Legumes",
			Keywords: []string{"dal", "lentil", "pulses", "moong", "chana", "masoor",
				"arhar", "urad", "gram", "beans", "chickpea"},
			PopularBrands: []string{"Tata Sampann", "Aashirvaad", "Nature's Gift", "Catch"},
			Subcategories: []string{"Red Lentils", "Chickpeas", "Moong Dal", "Mixed Pulses"},
		},
		{
			Name: "Edible Oil",
			Keywords: []string{"oil", "ghee", "coconut oil", "mustard oil", "groundnut oil",
				"sunflower oil", "sesame oil", "refined oil", "olive oil"},
			PopularBrands: []string{"Fortune", "Sundrop", "Saffola", "Nandini", "Patanjali"},
			Subcategories: []string{"Groundnut Oil", "Sunflower Oil", "Coconut Oil", "Ghee"},
		},
		{
			Name: "Milk & Dairy",
			Keywords: []string{"milk", "curd", "yogurt", "cheese", "paneer", "lassi",
				"butter", "cream", "dairy", "dhai"},
			PopularBrands: []string{"Amul", "Mother Dairy", "Nandini", "Arun Icecream", "Britannia"},
			Subcategories: []string{"Milk", "Curd", "Paneer", "Cheese", "Butter"},
		},
		{
			Name: "Snacks & Namkeen",
			Keywords: []string{"snack", "chips", "wafer", "namkeen", "bhujia", "mixture",
				"peanut", "samosa", "chakli", "murukku"},
			PopularBrands: []string{"Lay's", "Bingo", "Kurkure", "Haldiram's", "Balaji"},
			Subcategories: []string{"Potato Chips", "Corn Snacks", "Baked Snacks", "Mixed Namkeen"},
		},
		{
			Name: "Beverages",
			Keywords: []string{"tea", "coffee", "juice", "drink", "cola", "water",
				"soft drink", "energy drink", "powder"},
			PopularBrands: []string{"Tata Tea", "Nescafé", "Bru", "Sprite", "Frooti", "Tropicana"},
			Subcategories: []string{"Tea", "Coffee", "Juices", "Energy Drinks"},
		},
		{
			Name: "Personal Care",
			Keywords: []string{"shampoo", "soap", "toothpaste", "face", "skin", "hair",
				"lotion", "cream", "deodorant", "sanitizer"},
			PopularBrands: []string{"Dove", "Clinic Plus", "Crest", "Colgate", "Dettol", "Himalaya"},
			Subcategories: []string{"Hair Care", "Skincare", "Oral Care", "Bath Products"},
		},
		{
			Name: "Cleaning Products",
			Keywords: []string{"detergent", "soap", "cleaner", "disinfectant", "bleach",
				"floor", "glass", "dish", "laundry", "cleaning"},
			PopularBrands: []string{"Surf", "Ariel", "Rin", "Dettol", "Harpic", "Lizol"},
			Subcategories: []string{"Laundry Detergent", "Dish Wash", "Floor Cleaner", "Disinfectants"},
		},
		{
			Name: "Packaged Foods",
			Keywords: []string{"instant", "noodle", "pasta", "sauce", "pickle", "jam",
				"spread", "ketchup", "mayo", "cornflakes", "cereal"},
			PopularBrands: []string{"Maggi", "Sunfeast", "Britannia", "Nestlé", "Kissan"},
			Subcategories: []string{"Instant Noodles", "Breakfast Cereals", "Condiments", "Pickles"},
		},
		{
			Name: "Spices & Condiments",
			Keywords: []string{"spice", "powder", "masala", "turmeric", "chili", "pepper",
				"salt", "garam masala", "cumin", "coriander"},
			PopularBrands: []string{"MDH", "Everest", "Catch", "Tata Sampann", "Shan"},
			Subcategories: []string{"Spice Powders", "Spice Mixes", "Salt", "Condiments"},
		},
		{
			Name: "Household Essentials",
			Keywords: []string{"paper", "tissue", "towel", "napkin", "garbage", "bag",
				"container", "storage", "candle", "matches"},
			PopularBrands: []string{"Surbharoti", "Mondelez", "ITC", "Procter & Gamble"},
			Subcategories: []string{"Paper Products", "Storage", "Kitchen Essentials"},
		},
	}
}

// DefaultSubcategoryRules is the ordered keyword-to-subcategory table shared
// across categories. A rule is skipped when its subcategory is not declared
// by the matched category.
func DefaultSubcategoryRules() []SubcategoryRule {
	return []SubcategoryRule{
		{"basmati", "Basmati"},
		{"red", "Red Lentils"},
		{"moong", "Moong Dal"},
		{"paneer", "Paneer"},
		{"curd", "Curd"},
		{"chips", "Potato Chips"},
		{"tea", "Tea"},
		{"coffee", "Coffee"},
		{"shampoo", "Hair Care"},
		{"toothpaste", "Oral Care"},
		{"detergent", "Laundry Detergent"},
		{"noodle", "Instant Noodles"},
		{"cereal", "Breakfast Cereals"},
	}
}
