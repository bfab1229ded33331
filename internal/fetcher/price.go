package fetcher

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParsePrice normalizes retailer price text such as "1.299,90 TL" or "₺85,00".
// Dots are thousands separators and the comma is the decimal separator.
func ParsePrice(text string) (float64, bool) {
	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	text = strings.ReplaceAll(text, ".", "")
	text = strings.ReplaceAll(text, ",", ".")
	text = strings.ReplaceAll(text, "TL", "")
	text = strings.ReplaceAll(text, "₺", "")

	price, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, false
	}
	return price, true
}
