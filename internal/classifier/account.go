// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classifier

import "strings"

// accountWeights are 2^i mod 11 applied right to left, per the Czech
// National Bank domestic account number standard.
var accountWeights = [10]int{1, 2, 4, 8, 5, 10, 9, 7, 3, 6}

func accountPartValid(part string) bool {
	if part == "" {
		return true
	}
	sum := 0
	for i := 0; i < len(part); i++ {
		digit := int(part[len(part)-1-i] - '0')
		sum += digit * accountWeights[i]
	}
	return sum%11 == 0
}

// ValidateAccount checks a Czech domestic account number in
// [prefix-]number/bankcode form. Prefix and number carry independent
// weighted mod-11 checksums; the bank code is taken as-is (the code list
// changes with banking licenses and is not a structural property).
func ValidateAccount(s string) bool {
	body, _, ok := strings.Cut(s, "/")
	if !ok {
		return false
	}
	prefix, number, hasPrefix := strings.Cut(body, "-")
	if !hasPrefix {
		prefix, number = "", body
	}
	if len(number) < 2 || len(number) > 10 || len(prefix) > 6 {
		return false
	}
	return accountPartValid(prefix) && accountPartValid(number)
}

// NormalizeAccount strips a zero prefix and keeps the canonical
// prefix-number/bank form.
func NormalizeAccount(s string) string {
	body, bank, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return s
	}
	prefix, number, hasPrefix := strings.Cut(body, "-")
	if !hasPrefix {
		return strings.TrimLeft(body, "0") + "/" + bank
	}
	prefix = strings.TrimLeft(prefix, "0")
	number = strings.TrimLeft(number, "0")
	if prefix == "" {
		return number + "/" + bank
	}
	return prefix + "-" + number + "/" + bank
}
