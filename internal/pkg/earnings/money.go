package earnings

import "fmt"

// Pesewas is a GHS amount in integer cents. All accumulation happens on
// this type; rounding to two decimal places exists only in formatting.
type Pesewas int64

// DefaultPesewasPerPoint is the conversion rate: one point is worth
// 5 pesewas (GHS 0.05).
const DefaultPesewasPerPoint = Pesewas(5)

// Cedis formats the amount as a cedi string with two decimal places,
// e.g. 1750 -> "17.50".
func (p Pesewas) Cedis() string {
	sign := ""
	v := int64(p)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// ReadThroughRate returns reads/impressions and whether the rate is
// defined. impressions == 0 yields ok == false, never a division by zero;
// the UI renders the undefined case as an em dash.
func ReadThroughRate(reads, impressions uint) (float64, bool) {
	if impressions == 0 {
		return 0, false
	}
	return float64(reads) / float64(impressions), true
}

// FormatRate renders a read-through rate as a percentage with one decimal
// place, or "—" when the rate is undefined.
func FormatRate(rate float64, ok bool) string {
	if !ok {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", rate*100)
}
