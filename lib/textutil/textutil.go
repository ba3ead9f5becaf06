package textutil

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.TrimSpace(name)
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// MatchName reports whether the normalized name contains any of the
// matchers, matchers are normalized the same way.
func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		m = NormalizeName(m)
		if m != "" && strings.Contains(name, m) {
			return true
		}
	}
	return false
}

var (
	ErrNoDigits       = errors.New("price has no digits")
	ErrAmbiguousPrice = errors.New("price separators are ambiguous")
)

// ParsePrice reads a displayed price such as "20 999 ₴", "1,299.99 $",
// "1.299,99 €" or "12,50 грн". Everything but digits and the separators
// "." and "," is dropped. When both separators appear the last one is the
// decimal separator, a separator repeated or followed by exactly three
// digits groups thousands, otherwise it is the decimal separator.
// Separators that fit none of these readings give ErrAmbiguousPrice.
func ParsePrice(text string) (decimal.Decimal, error) {
	var digits strings.Builder
	hasDigit := false
	for _, c := range text {
		switch {
		case unicode.IsDigit(c):
			digits.WriteRune(c)
			hasDigit = true
		case c == '.' || c == ',':
			digits.WriteRune(c)
		}
	}
	if !hasDigit {
		return decimal.Decimal{}, fmt.Errorf("parse price %q: %w", text, ErrNoDigits)
	}

	number, err := normalizeSeparators(strings.Trim(digits.String(), ".,"))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse price %q: %w", text, err)
	}
	price, err := decimal.NewFromString(number)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse price %q: %w", text, err)
	}
	return price, nil
}

// normalizeSeparators turns digits with "." and "," into a plain decimal
// number with "." as the decimal separator.
func normalizeSeparators(number string) (string, error) {
	dot := strings.LastIndex(number, ".")
	comma := strings.LastIndex(number, ",")

	switch {
	case dot < 0 && comma < 0:
		return number, nil
	case dot >= 0 && comma >= 0:
		decimalSep, thousandsSep := ".", ","
		if comma > dot {
			decimalSep, thousandsSep = ",", "."
		}
		whole, fraction, _ := strings.Cut(number, decimalSep)
		if strings.Contains(fraction, decimalSep) || strings.Contains(fraction, thousandsSep) {
			return "", ErrAmbiguousPrice
		}
		whole, err := joinThousands(whole, thousandsSep)
		if err != nil {
			return "", err
		}
		return whole + "." + fraction, nil
	}

	sep := "."
	if comma >= 0 {
		sep = ","
	}
	groups := strings.Split(number, sep)
	if len(groups) > 2 || isThousandsGroup(groups) {
		return joinThousands(number, sep)
	}
	return groups[0] + "." + groups[1], nil
}

// isThousandsGroup reports whether a single separator reads as a thousands
// separator: "1,299" or "12.500", but not "0.500" or "12,50".
func isThousandsGroup(groups []string) bool {
	lead := groups[0]
	return len(groups[1]) == 3 && len(lead) <= 3 && !strings.HasPrefix(lead, "0")
}

// joinThousands removes sep from number after checking the grouping, the
// first group has 1 to 3 digits and every other group exactly 3.
func joinThousands(number, sep string) (string, error) {
	groups := strings.Split(number, sep)
	if len(groups) == 1 {
		return number, nil
	}
	if len(groups[0]) == 0 || len(groups[0]) > 3 {
		return "", ErrAmbiguousPrice
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return "", ErrAmbiguousPrice
		}
	}
	return strings.Join(groups, ""), nil
}
