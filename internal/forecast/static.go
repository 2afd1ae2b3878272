package forecast

// Precomputed dashboard series. These are curated display numbers, not live
// aggregates; the live report comes from GET /api/admin/report.

// MonthlySale is one point of the sales trend line.
type MonthlySale struct {
	Month int   `json:"month"`
	Sales int64 `json:"sales"`
}

// CategorySale is one slice of the category distribution chart.
type CategorySale struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// TopProduct is one row of the product performance table.
type TopProduct struct {
	Product  string `json:"product"`
	Sales    int64  `json:"sales"`
	Quantity int64  `json:"quantity"`
	Price    int64  `json:"price"`
}

// Summary feeds the stat cards at the top of the dashboard.
type Summary struct {
	TotalSales    int64   `json:"total_sales"`
	TotalProducts int64   `json:"total_products"`
	AverageOrder  int64   `json:"average_order"`
	MonthlyGrowth float64 `json:"monthly_growth_pct"`
}

func MonthlySales() []MonthlySale {
	return []MonthlySale{
		{Month: 1, Sales: 1850000},
		{Month: 2, Sales: 1680000},
		{Month: 3, Sales: 1920000},
		{Month: 4, Sales: 1750000},
		{Month: 5, Sales: 2150000},
		{Month: 6, Sales: 1890000},
		{Month: 7, Sales: 2250000}, // peak season
		{Month: 8, Sales: 1980000},
		{Month: 9, Sales: 1850000},
		{Month: 10, Sales: 1720000},
		{Month: 11, Sales: 1680000},
		{Month: 12, Sales: 2180000}, // holiday season
	}
}

func CategorySales() []CategorySale {
	return []CategorySale{
		{Name: "Dairy", Value: 380000},
		{Name: "Fruits", Value: 320000},
		{Name: "Groceries", Value: 450000},
		{Name: "Pharmacy", Value: 420000},
		{Name: "Vegetables", Value: 280000},
	}
}

func TopProducts() []TopProduct {
	return []TopProduct{
		{Product: "Basmati Rice (5kg)", Sales: 287500, Quantity: 250, Price: 1150},
		{Product: "Cooking Oil (5L)", Sales: 261000, Quantity: 180, Price: 1450},
		{Product: "Tea (950g)", Sales: 230400, Quantity: 320, Price: 720},
		{Product: "Flour (10kg)", Sales: 238000, Quantity: 280, Price: 850},
		{Product: "Pulses Mix (1kg)", Sales: 114800, Quantity: 410, Price: 280},
		{Product: "Sugar (1kg)", Sales: 87000, Quantity: 580, Price: 150},
		{Product: "Milk (1L)", Sales: 153000, Quantity: 850, Price: 180},
		{Product: "Spices Pack (200g)", Sales: 67200, Quantity: 420, Price: 160},
		{Product: "Eggs (dozen)", Sales: 117000, Quantity: 650, Price: 180},
		{Product: "Bread (large)", Sales: 86400, Quantity: 720, Price: 120},
		{Product: "Yogurt (1kg)", Sales: 60800, Quantity: 380, Price: 160},
		{Product: "Salt (1kg)", Sales: 40800, Quantity: 480, Price: 85},
		{Product: "Detergent (1kg)", Sales: 55000, Quantity: 250, Price: 220},
	}
}

func DashboardSummary() Summary {
	return Summary{
		TotalSales:    21900000,
		TotalProducts: 360,
		AverageOrder:  2283,
		MonthlyGrowth: 15.8,
	}
}
