package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() Catalog {
	return Catalog{
		Currency: "USD",
		Packs: []Pack{
			{ID: "60", Name: "60 Pack", Tokens: 60, PriceCents: 99},
			{ID: "330", Name: "330 Pack", Tokens: 300, BonusTokens: 30, PriceCents: 499},
			{ID: "1090", Name: "1090 Pack", Tokens: 980, BonusTokens: 110, PriceCents: 1499, FirstTimeX2: true},
		},
	}
}

func TestTokenForDraws(t *testing.T) {
	tok := Token{Name: "Fate", PerDraw: 160, PerTenDraw: 1500}
	assert.Equal(t, 0, tok.ForDraws(0))
	assert.Equal(t, 160, tok.ForDraws(1))
	assert.Equal(t, 1500, tok.ForDraws(10))
	assert.Equal(t, 1500+3*160, tok.ForDraws(13))

	// without a bundle the unit price applies throughout
	flat := Token{PerDraw: 160}
	assert.Equal(t, 1600, flat.ForDraws(10))
}

func TestMinCostPrefersCheapestCover(t *testing.T) {
	plan := MinCostForTokens(testCatalog(), 60, nil)
	require.Len(t, plan.Purchases, 1)
	assert.Equal(t, "60", plan.Purchases[0].PackID)
	assert.Equal(t, 99, plan.TotalCents)
	assert.GreaterOrEqual(t, plan.TotalTokens, 60)
}

func TestMinCostAllowsOvershoot(t *testing.T) {
	// 330 tokens for 499 beats six 60-packs for 594
	plan := MinCostForTokens(testCatalog(), 320, nil)
	assert.Equal(t, 499, plan.TotalCents)
	assert.GreaterOrEqual(t, plan.TotalTokens, 320)
}

func TestMinCostUsesFirstTimeDouble(t *testing.T) {
	first := FirstTimeState{"1090": true}
	plan := MinCostForTokens(testCatalog(), 2000, first)
	require.NotEmpty(t, plan.Purchases)
	assert.Equal(t, 1499, plan.TotalCents)
	assert.GreaterOrEqual(t, plan.TotalTokens, 2000) // 980*2+110
}

func TestPlanForDrawsWiresTokenCost(t *testing.T) {
	tok := Token{PerDraw: 160}
	plan := PlanForDraws(testCatalog(), tok, 1, nil)
	// 160 tokens: three 60-packs (297) beat one 330-pack (499)
	assert.Equal(t, 297, plan.TotalCents)
	assert.GreaterOrEqual(t, plan.TotalTokens, 160)
}

func TestTaxApplied(t *testing.T) {
	cat := testCatalog()
	cat.TaxRate = 0.13
	plan := MinCostForTokens(cat, 60, nil)
	assert.Equal(t, 99, plan.SubCents)
	assert.Equal(t, 13, plan.TaxCents)
	assert.Equal(t, 112, plan.TotalCents)
}

func TestMaxTokensForBudget(t *testing.T) {
	plan := MaxTokensForBudget(testCatalog(), 1499, nil)
	assert.Equal(t, 1090, plan.TotalTokens)
	assert.LessOrEqual(t, plan.TotalCents, 1499)

	empty := MaxTokensForBudget(testCatalog(), 0, nil)
	assert.Empty(t, empty.Purchases)
}
