// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classifier

import "strings"

// ISO 13616 lengths for countries that commonly appear in Czech contracts.
var ibanLengths = map[string]int{
	"CZ": 24, "SK": 24, "DE": 22, "AT": 20, "PL": 28,
	"NL": 18, "FR": 27, "GB": 22, "HU": 28,
}

// ValidateIBAN checks the ISO 13616 mod-97 checksum after moving the first
// four characters to the end and mapping letters to 10..35. Country length
// is enforced when the country is known.
func ValidateIBAN(s string) bool {
	clean := strings.ToUpper(strings.ReplaceAll(s, " ", ""))
	if len(clean) < 15 || len(clean) > 34 {
		return false
	}
	if want, ok := ibanLengths[clean[:2]]; ok && len(clean) != want {
		return false
	}

	rearranged := clean[4:] + clean[:4]
	rem := 0
	for _, c := range rearranged {
		switch {
		case c >= '0' && c <= '9':
			rem = (rem*10 + int(c-'0')) % 97
		case c >= 'A' && c <= 'Z':
			v := int(c-'A') + 10
			rem = (rem*100 + v) % 97
		default:
			return false
		}
	}
	return rem == 1
}

// NormalizeIBAN returns the compact uppercase form with no spaces.
func NormalizeIBAN(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, " ", ""))
}
