package scoring

import (
	"strings"
	"time"
	"unicode"

	"github.com/reclaimip/backend/internal/models"
)

// Patents older than this are treated as expired and free to use.
const expiryAgeYears = 20

// ClassifyStatus derives a patent status from its filing year. A missing
// or unparseable year defaults to active.
func ClassifyStatus(filingYear int, now time.Time) string {
	if filingYear > 0 && now.Year()-filingYear >= expiryAgeYears {
		return models.StatusExpired
	}
	return models.StatusActive
}

// YearFromDate extracts the year from an ISO-style date string such as
// "2004-07-21". Returns 0 when no year can be parsed.
func YearFromDate(date string) int {
	if len(date) < 4 {
		return 0
	}
	year := 0
	for _, r := range date[:4] {
		if !unicode.IsDigit(r) {
			return 0
		}
		year = year*10 + int(r-'0')
	}
	return year
}

// Jurisdiction derives a two-letter jurisdiction code from the patent
// number prefix, e.g. "US10326145B2" -> "US". Defaults to "US".
func Jurisdiction(patentNumber string) string {
	if len(patentNumber) >= 2 {
		prefix := patentNumber[:2]
		if isAlpha(prefix) {
			return strings.ToUpper(prefix)
		}
	}
	return "US"
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
