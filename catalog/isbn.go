package catalog

import (
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// newISBN draws a hyphenated ISBN-13 in the 978 prefix with a valid check digit.
func newISBN(f *gofakeit.Faker) string {
	digits := make([]int, 0, 13)
	digits = append(digits, 9, 7, 8)
	for i := 0; i < 9; i++ {
		digits = append(digits, f.Number(0, 9))
	}
	digits = append(digits, isbnCheckDigit(digits))

	var b strings.Builder
	for i, d := range digits {
		switch i {
		case 3, 4, 9, 12:
			b.WriteByte('-')
		}
		b.WriteString(strconv.Itoa(d))
	}
	return b.String()
}

// isbnCheckDigit computes the ISBN-13 check digit for the first 12 digits.
func isbnCheckDigit(digits []int) int {
	sum := 0
	for i := 0; i < 12; i++ {
		w := 1
		if i%2 == 1 {
			w = 3
		}
		sum += digits[i] * w
	}
	return (10 - sum%10) % 10
}
