// Package forecast synthesizes the demand numbers shown on the dashboard.
// This is display filler seeded by randomness, not a forecasting model: runs
// are reproducible in distribution only, never value for value.
package forecast

import (
	"errors"
	"math/rand"
	"slices"
	"strings"
	"time"
)

// AllBrands selects every brand of each product, summed per month.
const AllBrands = "all"

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrBadHorizon      = errors.New("horizon must be 6 or 12 months")
)

// Month is one column of the forecast table: synthetic demand per product
// name for one calendar month.
type Month struct {
	Month      string           `json:"month"`
	MonthIndex int              `json:"month_index"` // 1-based
	Demand     map[string]int64 `json:"demand"`
}

// Generator produces forecast tables. now and rng are injectable for tests.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// NewGeneratorAt pins the clock and seed; used by tests.
func NewGeneratorAt(now func() time.Time, seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed)), now: now}
}

// CategoryNames lists the forecastable categories in display order.
func CategoryNames() []string {
	out := make([]string, len(Categories))
	for i, c := range Categories {
		out[i] = c.Name
	}
	return out
}

// ProductsFor returns the product specs of one category.
func ProductsFor(category string) ([]ProductSpec, error) {
	for _, c := range Categories {
		if c.Name == category {
			return c.Products, nil
		}
	}
	return nil, ErrUnknownCategory
}

// BrandsFor returns the deduplicated brand list of one category.
func BrandsFor(category string) ([]string, error) {
	products, err := ProductsFor(category)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, p := range products {
		for _, b := range p.Brands {
			if !slices.Contains(out, b) {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

// Table produces the demand table for a category over the next months
// (6 or 12) starting at the current month. brand is a specific brand name or
// AllBrands, in which case per-brand demand is summed per product.
func (g *Generator) Table(category, brand string, months int) ([]Month, error) {
	if months != 6 && months != 12 {
		return nil, ErrBadHorizon
	}
	products, err := ProductsFor(category)
	if err != nil {
		return nil, err
	}

	current := int(g.now().Month()) - 1 // 0-based
	out := make([]Month, 0, months)
	for i := 0; i < months; i++ {
		idx := (current + i) % 12
		m := Month{
			Month:      monthNames[idx],
			MonthIndex: idx + 1,
			Demand:     make(map[string]int64, len(products)),
		}
		for _, p := range products {
			if brand == AllBrands || brand == "" {
				var total int64
				for _, b := range p.Brands {
					total += g.demand(p.Name, idx+1, b)
				}
				m.Demand[p.Name] = total
			} else {
				m.Demand[p.Name] = g.demand(p.Name, idx+1, brand)
			}
		}
		out = append(out, m)
	}
	return out, nil
}

// demand is floor(baseline * seasonal * brand) with baseline drawn
// independently per (product, month, brand) from [50,100).
func (g *Generator) demand(product string, month int, brand string) int64 {
	baseline := float64(g.rng.Intn(50) + 50)
	return int64(baseline * seasonalMultiplier(product, month) * brandMultiplier(brand))
}

func seasonalMultiplier(product string, month int) float64 {
	name := strings.ToLower(product)
	for _, r := range seasonalRules {
		if !strings.Contains(name, r.keyword) {
			continue
		}
		if slices.Contains(r.peak, month) {
			return r.peakMult
		}
		return r.offMult
	}
	return 1
}

func brandMultiplier(brand string) float64 {
	if brand == "" {
		return 1
	}
	for _, b := range popularBrands {
		if strings.Contains(brand, b) {
			return 1.3
		}
	}
	for _, b := range knownBrands {
		if strings.Contains(brand, b) {
			return 1.2
		}
	}
	return 1
}
