package billing

import (
	"strings"

	ierr "github.com/freshcrate/freshcrate/internal/errors"
	"github.com/shopspring/decimal"
)

// maxWordableRupees bounds AmountInWords to the Indian lakh scale. Amounts
// of one crore or more are rejected rather than silently truncated.
const maxWordableRupees = 10000000

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

// AmountInWords renders a monetary amount as an English phrase using Indian
// numbering (Hundred/Thousand/Lakh), e.g.
//
//	1234.50 -> "Rupees One Thousand Two Hundred Thirty Four and Fifty Paise Only"
//	0       -> "Rupees Zero Only"
//
// Paise are rounded to the nearest whole paisa; exact-rupee amounts carry no
// paise clause. Negative amounts and amounts of one crore or more are not
// supported.
func AmountInWords(amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return "", ierr.NewError("negative amounts cannot be written in words").
			Mark(ierr.ErrValidation)
	}

	rupees := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(rupees)).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
	if paise >= 100 {
		rupees++
		paise -= 100
	}

	if rupees >= maxWordableRupees {
		return "", ierr.NewError("amount too large to write in words").
			WithHintf("Amounts of one crore rupees or more are not supported").
			Mark(ierr.ErrValidation)
	}

	var b strings.Builder
	b.WriteString("Rupees ")
	if rupees == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(integerInWords(rupees))
	}
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(integerInWords(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String(), nil
}

// integerInWords renders 1..99,99,999 using Indian grouping.
func integerInWords(n int64) string {
	var parts []string

	if lakh := n / 100000; lakh > 0 {
		parts = append(parts, twoDigitsInWords(lakh), "Lakh")
	}
	if thousand := (n % 100000) / 1000; thousand > 0 {
		parts = append(parts, twoDigitsInWords(thousand), "Thousand")
	}
	if hundred := (n % 1000) / 100; hundred > 0 {
		parts = append(parts, onesWords[hundred], "Hundred")
	}
	if rest := n % 100; rest > 0 {
		parts = append(parts, twoDigitsInWords(rest))
	}

	return strings.Join(parts, " ")
}

// twoDigitsInWords renders 1..99.
func twoDigitsInWords(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	if n%10 == 0 {
		return tensWords[n/10]
	}
	return tensWords[n/10] + " " + onesWords[n%10]
}
