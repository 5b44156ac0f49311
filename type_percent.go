package drift

import "fmt"

// Percent is a percentage figure, e.g. Percent(5.2) for 5.2%.
type Percent float64

// Equal compares two percentages within a small tolerance.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// SignedString renders the percentage with an explicit sign, and "-"
// for a value rounding to zero.
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}
