package cost

import "math"

// Pack models a purchasable token SKU.
type Pack struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Tokens      int    `json:"tokens"`
	BonusTokens int    `json:"bonus_tokens,omitempty"` // permanent extra tokens
	FirstTimeX2 bool   `json:"first_time_x2,omitempty"`
	PriceCents  int    `json:"price_cents"`
}

// Catalog is a regional pack catalog. Prices are pre-tax; TaxRate applies on
// the subtotal (set 0 for tax-inclusive prices).
type Catalog struct {
	Currency string  `json:"currency"`
	TaxRate  float64 `json:"tax_rate,omitempty"`
	Packs    []Pack  `json:"packs"`
}

// FirstTimeState marks which packs still have the first-purchase doubling.
type FirstTimeState map[string]bool

// Purchase is one line item of a plan.
type Purchase struct {
	PackID     string `json:"pack_id"`
	Name       string `json:"name"`
	Qty        int    `json:"qty"`
	UnitPrice  int    `json:"unit_price_cents"`
	UnitTokens int    `json:"unit_tokens"`
	Subtotal   int    `json:"subtotal_cents"`
}

// Plan is a purchase recommendation.
type Plan struct {
	Purchases   []Purchase `json:"purchases"`
	SubCents    int        `json:"subtotal_cents"`
	TaxCents    int        `json:"tax_cents"`
	TotalCents  int        `json:"total_cents"`
	TotalTokens int        `json:"total_tokens"`
	Currency    string     `json:"currency"`
}

// applyTax computes tax and total for a subtotal.
func applyTax(sub int, taxRate float64) (tax, total int) {
	if taxRate <= 0 {
		return 0, sub
	}
	t := int(math.Round(float64(sub) * taxRate))
	return t, sub + t
}

// variant is a pack with its first-time doubling resolved.
type variant struct {
	id     string
	name   string
	tokens int
	price  int
}

// expandVariants lists each pack once, plus an x2 variant while its
// first-time bonus is still unclaimed. The doubling applies to the base
// token grant only, never to the permanent bonus.
func expandVariants(cat Catalog, first FirstTimeState) []variant {
	var out []variant
	for _, p := range cat.Packs {
		if p.FirstTimeX2 && first != nil && first[p.ID] {
			out = append(out, variant{
				id:     p.ID + "#x2",
				name:   p.Name + " (x2)",
				tokens: p.Tokens*2 + p.BonusTokens,
				price:  p.PriceCents,
			})
		}
		out = append(out, variant{
			id:     p.ID,
			name:   p.Name,
			tokens: p.Tokens + p.BonusTokens,
			price:  p.PriceCents,
		})
	}
	return out
}
