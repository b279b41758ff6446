package record

import (
	"math"
	"strconv"
	"strings"
)

// FormatRupiah renders an amount the way id-ID formats whole rupiah,
// e.g. 1250000 -> "Rp 1.250.000".
func FormatRupiah(amount float64) string {
	neg := amount < 0
	digits := strconv.FormatInt(int64(math.Round(math.Abs(amount))), 10)

	var b strings.Builder
	b.WriteString("Rp ")
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
