package cost

// Token defines how much premium currency one draw consumes, with an
// optional discounted ten-draw bundle.
type Token struct {
	Name       string `json:"name"`
	PerDraw    int    `json:"per_draw"`
	PerTenDraw int    `json:"per_ten_draw,omitempty"` // 0 means 10 * PerDraw
}

// ForDraws returns the tokens required for n draws, using the ten-draw
// bundle price where it applies.
func (t Token) ForDraws(n int) int {
	if n <= 0 {
		return 0
	}
	if t.PerTenDraw > 0 && n >= 10 {
		tens := n / 10
		rem := n % 10
		return tens*t.PerTenDraw + rem*t.PerDraw
	}
	return n * t.PerDraw
}
