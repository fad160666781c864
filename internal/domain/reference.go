package domain

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxReferenceLength caps a derived reference base.
	MaxReferenceLength = 32

	// MaxReferencePartLength caps each normalized reference part.
	MaxReferencePartLength = 16

	referencePrefix  = "CAR"
	fallbackBrand    = "CAR"
	fallbackTitle    = "ITEM"
	titlePartLength  = 10
	baseSuffixDigits = 4
)

// NormalizeReferencePart turns free text into an uppercase A-Z0-9 token of at
// most MaxReferencePartLength characters. Accents are stripped, so "Citroën"
// becomes "CITROEN".
func NormalizeReferencePart(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return ""
	}
	s = cases.Upper(language.Und).String(s)
	if stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), s); err == nil {
		s = stripped
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == MaxReferencePartLength {
				break
			}
		}
	}
	return b.String()
}

// ReferenceBase derives the reference base for a product. With a licence
// plate it is CAR-<BRAND>-<PLATE>; otherwise CAR-<BRAND>-<TITLE>-<NNNN> where
// NNNN are the last four digits of the current unix milliseconds.
func ReferenceBase(brand, licensePlate, title string, now time.Time) string {
	if brand == "" {
		brand = fallbackBrand
	}
	brandPart := NormalizeReferencePart(brand)
	platePart := NormalizeReferencePart(licensePlate)

	var base string
	if platePart != "" {
		base = referencePrefix + "-" + brandPart + "-" + platePart
	} else {
		titlePart := NormalizeReferencePart(title)
		if len(titlePart) > titlePartLength {
			titlePart = titlePart[:titlePartLength]
		}
		if titlePart == "" {
			titlePart = fallbackTitle
		}
		base = referencePrefix + "-" + brandPart + "-" + titlePart + "-" + MillisSuffix(now, baseSuffixDigits)
	}

	if len(base) > MaxReferenceLength {
		base = base[:MaxReferenceLength]
	}
	return base
}

// MillisSuffix returns the last n digits of t in unix milliseconds.
func MillisSuffix(t time.Time, n int) string {
	s := strconv.FormatInt(t.UnixMilli(), 10)
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}
