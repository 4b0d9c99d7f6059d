package cost

import "sort"

// PlanForDraws finds the minimum-cost pack combination funding at least the
// given number of draws. Typical input is a percentile from a simulation run
// (e.g. plan for the p90 draw count).
func PlanForDraws(cat Catalog, tok Token, draws int, first FirstTimeState) Plan {
	return MinCostForTokens(cat, tok.ForDraws(draws), first)
}

// MinCostForTokens finds the minimum-cost combination of packs granting at
// least targetTokens. Unbounded quantities; slight overshoot is allowed when
// it is cheaper than an exact fit.
func MinCostForTokens(cat Catalog, targetTokens int, first FirstTimeState) Plan {
	if targetTokens <= 0 || len(cat.Packs) == 0 {
		return Plan{Currency: cat.Currency}
	}

	variants := expandVariants(cat, first)
	maxTokens := 0
	for _, v := range variants {
		if v.tokens > maxTokens {
			maxTokens = v.tokens
		}
	}
	if maxTokens == 0 {
		return Plan{Currency: cat.Currency}
	}

	// DP over token totals up to target+maxTokens so overshoot can win.
	limit := targetTokens + maxTokens
	const inf = int(^uint(0) >> 1)
	minCost := make([]int, limit+1)
	chosen := make([]int, limit+1)
	prev := make([]int, limit+1)
	for t := range minCost {
		minCost[t] = inf
		chosen[t] = -1
		prev[t] = -1
	}
	minCost[0] = 0

	for t := 0; t <= limit; t++ {
		if minCost[t] == inf {
			continue
		}
		for i, v := range variants {
			nt := t + v.tokens
			if nt > limit {
				nt = limit
			}
			if c := minCost[t] + v.price; c < minCost[nt] {
				minCost[nt] = c
				chosen[nt] = i
				prev[nt] = t
			}
		}
	}

	bestT := targetTokens
	for t := targetTokens; t <= limit; t++ {
		if minCost[t] < minCost[bestT] {
			bestT = t
		}
	}

	counts := map[int]int{} // variant index -> qty
	for t := bestT; t > 0 && chosen[t] != -1; t = prev[t] {
		counts[chosen[t]]++
	}
	return buildPlan(cat, variants, counts)
}

// MaxTokensForBudget finds the token-maximizing pack set within budgetCents,
// approximating pre-tax spend when the catalog carries a tax rate.
func MaxTokensForBudget(cat Catalog, budgetCents int, first FirstTimeState) Plan {
	if budgetCents <= 0 || len(cat.Packs) == 0 {
		return Plan{Currency: cat.Currency}
	}
	variants := expandVariants(cat, first)

	effBudget := budgetCents
	if cat.TaxRate > 0 {
		effBudget = int(float64(budgetCents) / (1 + cat.TaxRate))
	}

	// unbounded knapsack on cost
	best := make([]int, effBudget+1)
	chosen := make([]int, effBudget+1)
	for c := range chosen {
		chosen[c] = -1
	}
	for c := 0; c <= effBudget; c++ {
		for i, v := range variants {
			if nc := c + v.price; nc <= effBudget {
				if val := best[c] + v.tokens; val > best[nc] {
					best[nc] = val
					chosen[nc] = i
				}
			}
		}
	}

	bestC := 0
	for c := 0; c <= effBudget; c++ {
		if best[c] > best[bestC] {
			bestC = c
		}
	}

	counts := map[int]int{}
	for c := bestC; c > 0 && chosen[c] != -1; c -= variants[chosen[c]].price {
		counts[chosen[c]]++
	}
	return buildPlan(cat, variants, counts)
}

func buildPlan(cat Catalog, variants []variant, counts map[int]int) Plan {
	plan := Plan{Currency: cat.Currency}
	idxs := make([]int, 0, len(counts))
	for i := range counts {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)
	for _, i := range idxs {
		v, qty := variants[i], counts[i]
		sub := v.price * qty
		plan.Purchases = append(plan.Purchases, Purchase{
			PackID:     v.id,
			Name:       v.name,
			Qty:        qty,
			UnitPrice:  v.price,
			UnitTokens: v.tokens,
			Subtotal:   sub,
		})
		plan.SubCents += sub
		plan.TotalTokens += v.tokens * qty
	}
	plan.TaxCents, plan.TotalCents = applyTax(plan.SubCents, cat.TaxRate)
	return plan
}
