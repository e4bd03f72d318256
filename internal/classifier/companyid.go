// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classifier

// ValidateCompanyID checks an eight-digit Czech company identifier (IČO).
// The first seven digits are weighted 8..2; the check digit is
// (11 - sum mod 11) mod 10.
func ValidateCompanyID(s string) bool {
	d := digitsOnly(s)
	if len(d) != 8 {
		return false
	}
	sum := 0
	for i := 0; i < 7; i++ {
		sum += int(d[i]-'0') * (8 - i)
	}
	check := (11 - sum%11) % 10
	return int(d[7]-'0') == check
}
