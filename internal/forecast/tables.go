package forecast

// ProductSpec is one forecastable product with the brands it is sold under.
type ProductSpec struct {
	Name   string   `json:"name"`
	Unit   string   `json:"unit"`
	Brands []string `json:"brands"`
}

// CategorySpec groups the products of one catalog category.
type CategorySpec struct {
	Name     string        `json:"name"`
	Products []ProductSpec `json:"products"`
}

// Categories is the fixed forecasting catalog, in display order.
var Categories = []CategorySpec{
	{
		Name: "Dairy",
		Products: []ProductSpec{
			{Name: "Milk", Unit: "liters", Brands: []string{"Olpers", "Nestle MilkPak", "Gourmet", "Prema"}},
			{Name: "Yogurt", Unit: "kg", Brands: []string{"Nestle Fruita Vitals", "Gourmet", "Adams"}},
			{Name: "Cheese", Unit: "kg", Brands: []string{"Kraft", "Nurpur", "Adams"}},
			{Name: "Butter", Unit: "kg", Brands: []string{"Blue Band", "Nurpur", "Olpers"}},
			{Name: "Cream", Unit: "liters", Brands: []string{"Olpers", "Nurpur", "Gourmet"}},
		},
	},
	{
		Name: "Fruits",
		Products: []ProductSpec{
			{Name: "Apples", Unit: "kg", Brands: []string{"Quetta", "Swat", "Kashmir"}},
			{Name: "Bananas", Unit: "dozen", Brands: []string{"Sindh", "Punjab"}},
			{Name: "Oranges", Unit: "kg", Brands: []string{"Kinnow", "Blood Orange", "Valencia"}},
			{Name: "Mangoes", Unit: "kg", Brands: []string{"Sindhri", "Chaunsa", "Anwar Ratol", "Langra"}},
			{Name: "Watermelon", Unit: "kg", Brands: []string{"Punjab", "Sindh"}},
		},
	},
	{
		Name: "Groceries",
		Products: []ProductSpec{
			{Name: "Rice (Basmati)", Unit: "kg", Brands: []string{"Falak", "Guard", "Kernel"}},
			{Name: "Cooking Oil", Unit: "liters", Brands: []string{"Dalda", "Sufi", "Eva", "Habib"}},
			{Name: "Tea", Unit: "kg", Brands: []string{"Lipton", "Tapal", "Vital", "Supreme"}},
			{Name: "Sugar", Unit: "kg", Brands: []string{"Al-Arabia", "Nishat"}},
			{Name: "Flour (Atta)", Unit: "kg", Brands: []string{"Sunridge", "Bake Parlor", "Fauji"}},
			{Name: "Pulses (Daal)", Unit: "kg", Brands: []string{"Mitchell's", "National"}},
		},
	},
	{
		Name: "Pharmacy",
		Products: []ProductSpec{
			{Name: "Pain Relievers", Unit: "packs", Brands: []string{"Panadol", "Brufen", "Ponstan"}},
			{Name: "Cold Medicine", Unit: "packs", Brands: []string{"Actifed", "Corex", "Tyno"}},
			{Name: "Vitamins", Unit: "bottles", Brands: []string{"Centrum", "GNC", "Nutrifactor"}},
			{Name: "First Aid", Unit: "kits", Brands: []string{"PharmEvo", "Medi-Aid", "SafeCare"}},
			{Name: "Sanitizers", Unit: "bottles", Brands: []string{"Dettol", "Safeguard", "Lifebuoy"}},
		},
	},
	{
		Name: "Vegetables",
		Products: []ProductSpec{
			{Name: "Tomatoes", Unit: "kg", Brands: []string{"Sindh Fresh", "Punjab Fresh"}},
			{Name: "Potatoes", Unit: "kg", Brands: []string{"Swat", "Hazara"}},
			{Name: "Onions", Unit: "kg", Brands: []string{"Sindh", "Balochistan"}},
			{Name: "Green Chilies", Unit: "kg", Brands: []string{"Kunri", "Sindh"}},
			{Name: "Carrots", Unit: "kg", Brands: []string{"Punjab", "KPK"}},
		},
	},
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// brand popularity tiers
var (
	popularBrands = []string{"Olpers", "Nestle", "Tapal", "Dettol", "Panadol"}
	knownBrands   = []string{"Gourmet", "Dalda", "Lipton"}
)

// seasonalRule boosts (or suppresses) demand for products whose name
// contains the keyword, during peak months.
type seasonalRule struct {
	keyword  string
	peak     []int // 1-based months
	peakMult float64
	offMult  float64
}

var seasonalRules = []seasonalRule{
	{keyword: "cold", peak: []int{5, 6, 7, 8}, peakMult: 1.8, offMult: 0.6},
	{keyword: "ice", peak: []int{5, 6, 7, 8}, peakMult: 1.8, offMult: 0.6},
	{keyword: "tea", peak: []int{11, 12, 1, 2}, peakMult: 1.7, offMult: 0.8},
	{keyword: "mango", peak: []int{5, 6, 7}, peakMult: 2.0, offMult: 0.1},
	{keyword: "sanitizer", peak: []int{3, 4, 5}, peakMult: 1.5, offMult: 1.0},
}
