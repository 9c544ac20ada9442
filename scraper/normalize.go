package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	// numberRegexp captures a numeric value, including dot-separated
	// thousands groups
	numberRegexp = regexp.MustCompile(`\d+(?:\.\d+)*`)
	// ratingRegexp captures a numeric rating in the 0.0–5.0 range
	ratingRegexp = regexp.MustCompile(`\b([0-5](?:\.\d{1,2})?)\b`)
	// soldRegexp captures a sold count with an optional scale suffix
	// ("10RB+ terjual", "1,2jt", "5k sold")
	soldRegexp = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(rb|ribu|jt|juta|k)?`)
	// thousandDots matches dot-separated thousands ("1.500.000")
	thousandDots = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)

	currencyTokens = []string{"rp", "rm", "myr", "idr", "usd", "$"}
)

// ParsePrice extracts a price from marketplace display text.
// Examples:
//
//	"Rp1.500.000"  → 1500000
//	"RM 25.90"     → 25.90
//	"1,200.50"     → 1200.50
//	"Gratis"       → 0
func ParsePrice(raw string) float64 {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0
	}
	for _, tok := range currencyTokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	s = strings.ReplaceAll(s, ",", "")

	match := numberRegexp.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0
	}
	// Indonesian display prices use dots as thousand separators.
	if thousandDots.MatchString(match) {
		match = strings.ReplaceAll(match, ".", "")
	}

	price, err := strconv.ParseFloat(match, 64)
	if err != nil || price < 0 {
		return 0
	}
	return price
}

// ParseRating extracts a 0.0–5.0 numeric rating from display text. Values
// outside the range mean the text was not a rating and yield 0.
func ParseRating(raw string) float64 {
	match := ratingRegexp.FindStringSubmatch(raw)
	if len(match) < 2 {
		return 0
	}
	val, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	if val < 0 || val > 5 {
		return 0
	}
	return val
}

// ParseSoldCount extracts a sold count, expanding Indonesian/Malay scale
// suffixes: "rb"/"ribu" and "k" are thousands, "jt"/"juta" millions.
func ParseSoldCount(raw string) int {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0
	}

	match := soldRegexp.FindStringSubmatch(s)
	if len(match) < 2 || match[1] == "" {
		return 0
	}

	number, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", "."), 64)
	if err != nil {
		return 0
	}

	multiplier := 1.0
	switch match[2] {
	case "rb", "ribu", "k":
		multiplier = 1000
	case "jt", "juta":
		multiplier = 1000000
	}

	return int(number * multiplier)
}

// CleanText strips leading/trailing whitespace and collapses internal
// whitespace.
func CleanText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
