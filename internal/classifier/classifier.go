// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package classifier detects the semantic type of a candidate string and
// validates or canonicalizes it. Detection runs an ordered cascade of
// structural predicates, most specific first, so an ambiguous string (a
// birth number is also a plausible parcel fraction) resolves to the
// strictest validator that both structurally matches and checksum-validates.
package classifier

import (
	"regexp"
	"strings"
	"unicode"

	"contract-search/internal/search"
)

// rule binds a value type to its structural predicate and optional
// validator/normalizer. Predicates are anchored to the full string.
type rule struct {
	typ       search.ValueType
	predicate *regexp.Regexp
	validate  func(string) bool
	normalize func(string) string
}

var (
	reBirthNumber = regexp.MustCompile(`^\d{6}\s*/\s*\d{3,4}$`)
	reIBAN        = regexp.MustCompile(`^[A-Z]{2}\d{2}(?:\s?[A-Z0-9]{1,4}){3,8}$`)
	reAccount     = regexp.MustCompile(`^(?:\d{2,6}-)?\d{2,10}/\d{4}$`)
	reCompanyID   = regexp.MustCompile(`^\d{8}$`)
	rePhone       = regexp.MustCompile(`^(?:\+420\s?|00420\s?)?\d{3}\s?\d{3}\s?\d{3}$`)
	reAmount      = regexp.MustCompile(`^\d{1,3}(?:[ .\x{00A0}]?\d{3})*(?:[,.]\d{1,2})?\s?(?:Kč|CZK|EUR|€|,-)$`)
	rePercentage  = regexp.MustCompile(`^\d{1,3}(?:[,.]\d{1,2})?\s?%$`)
	reDateNumeric = regexp.MustCompile(`^\d{1,2}\.\s?\d{1,2}\.\s?\d{4}$`)
	reDateWords   = regexp.MustCompile(`^\d{1,2}\.\s?(?:ledna|února|března|dubna|května|června|července|srpna|září|října|listopadu|prosince)\s\d{4}$`)
	reParcel      = regexp.MustCompile(`^(?:parc\.?\s?č\.?\s?|p\.\s?č\.\s?|st\.\s?)?\d{1,5}/\d{1,4}$`)
	reName        = regexp.MustCompile(`^\p{Lu}\p{Ll}+(?:\s\p{Lu}\p{Ll}+){1,3}$`)
	reAddress     = regexp.MustCompile(`^\p{Lu}[\p{L} .]+\d+(?:/\d+)?,\s?\d{3}\s?\d{2}\s\p{Lu}[\p{L} ]+$`)
)

var rules = []rule{
	{search.TypeBirthNumber, reBirthNumber, ValidateBirthNumber, NormalizeBirthNumber},
	{search.TypeIBAN, reIBAN, ValidateIBAN, NormalizeIBAN},
	{search.TypeAccount, reAccount, ValidateAccount, NormalizeAccount},
	{search.TypeCompanyID, reCompanyID, ValidateCompanyID, nil},
	{search.TypePhone, rePhone, nil, NormalizePhone},
	{search.TypeAmount, reAmount, nil, NormalizeAmount},
	{search.TypePercentage, rePercentage, nil, normalizePercentage},
	{search.TypeDate, reDateNumeric, validateDateNumeric, NormalizeDate},
	{search.TypeDate, reDateWords, nil, NormalizeDate},
	{search.TypeParcel, reParcel, nil, normalizeParcel},
	{search.TypeName, reName, nil, normalizeSpace},
	{search.TypeAddress, reAddress, nil, normalizeSpace},
}

// DetectType classifies text by running the rule cascade. A rule claims the
// text only when its predicate matches and its validator (if any) accepts,
// so a string that looks like a birth number but fails its checksum falls
// through to the next structural candidate (typically parcel).
func DetectType(text string) search.ValueType {
	t := strings.TrimSpace(text)
	if t == "" {
		return search.TypeUnknown
	}
	for _, r := range rules {
		if !r.predicate.MatchString(t) {
			continue
		}
		if r.validate != nil && !r.validate(t) {
			continue
		}
		return r.typ
	}
	for _, c := range t {
		if unicode.IsLetter(c) {
			return search.TypeText
		}
	}
	return search.TypeUnknown
}

// Validate reports whether text is a structurally and (where applicable)
// checksum-valid instance of the given type.
func Validate(typ search.ValueType, text string) bool {
	t := strings.TrimSpace(text)
	for _, r := range rules {
		if r.typ != typ {
			continue
		}
		if !r.predicate.MatchString(t) {
			continue
		}
		if r.validate != nil && !r.validate(t) {
			continue
		}
		return true
	}
	return false
}

// NormalizeValue returns the canonical string form of a validated value, or
// the trimmed input when the type has no canonical form.
func NormalizeValue(typ search.ValueType, text string) string {
	t := strings.TrimSpace(text)
	for _, r := range rules {
		if r.typ == typ && r.predicate.MatchString(t) {
			if r.normalize != nil {
				return r.normalize(t)
			}
			return t
		}
	}
	return t
}

var czechMonths = map[string]int{
	"ledna": 1, "února": 2, "března": 3, "dubna": 4, "května": 5,
	"června": 6, "července": 7, "srpna": 8, "září": 9, "října": 10,
	"listopadu": 11, "prosince": 12,
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func normalizePercentage(s string) string {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return s + " %"
}

func normalizeParcel(s string) string {
	// Strip the "parc. č." / "st." prefix, keep the bare fraction.
	i := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if i < 0 {
		return s
	}
	return strings.TrimSpace(s[i:])
}
