// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classifier

import (
	"testing"

	"contract-search/internal/search"
)

func TestValidateCompanyID(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"known valid ICO", "25596641", true},
		{"last digit flipped", "25596642", false},
		{"another valid ICO", "00006947", true},
		{"too short", "2559664", false},
		{"non-numeric", "2559664a", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateCompanyID(tc.input); got != tc.want {
				t.Errorf("ValidateCompanyID(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestValidateBirthNumber(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid male", "940919/1022", true},
		{"valid female month offset", "935612/2457", true},
		{"checksum broken", "940919/1023", false},
		{"month out of range", "123456/7890", false},
		{"day out of range", "940942/1022", false},
		{"nine digit pre-1954", "401231/123", true},
		{"nine digit with post-pivot year", "601231/123", false},
		{"garbage", "abc", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateBirthNumber(tc.input); got != tc.want {
				t.Errorf("ValidateBirthNumber(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestBirthNumberDate(t *testing.T) {
	year, month, day, err := BirthNumberDate("935612/2457")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if year != 1993 || month != 6 || day != 12 {
		t.Errorf("got %d-%d-%d, want 1993-6-12", year, month, day)
	}

	// Two-digit year below the pivot maps to the 2000s.
	year, _, _, err = BirthNumberDate("040101/0011")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if year != 2004 {
		t.Errorf("pivot: got year %d, want 2004", year)
	}
}

func TestValidateIBAN(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid CZ compact", "CZ6508000000192000145399", true},
		{"valid CZ spaced", "CZ65 0800 0000 1920 0014 5399", true},
		{"check digits broken", "CZ6408000000192000145399", false},
		{"wrong length for CZ", "CZ65080000001920001453", false},
		{"valid DE", "DE89370400440532013000", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateIBAN(tc.input); got != tc.want {
				t.Errorf("ValidateIBAN(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestValidateAccount(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid plain", "19-2000145399/0800", true},
		{"valid without prefix", "2000145399/0800", true},
		{"checksum broken", "2000145398/0800", false},
		{"missing bank code", "2000145399", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateAccount(tc.input); got != tc.want {
				t.Errorf("ValidateAccount(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestDetectType(t *testing.T) {
	cases := []struct {
		input string
		want  search.ValueType
	}{
		{"940919/1022", search.TypeBirthNumber},
		{"25596641", search.TypeCompanyID},
		{"CZ6508000000192000145399", search.TypeIBAN},
		{"19-2000145399/0800", search.TypeAccount},
		{"+420 777 123 456", search.TypePhone},
		{"7 850 000 Kč", search.TypeAmount},
		{"21 %", search.TypePercentage},
		{"15. 3. 2024", search.TypeDate},
		{"1. ledna 2024", search.TypeDate},
		{"parc. č. 123/4", search.TypeParcel},
		{"Jan Novák", search.TypeName},
		{"kupní smlouva", search.TypeText},
		{"###", search.TypeUnknown},
		{"", search.TypeUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			if got := DetectType(tc.input); got != tc.want {
				t.Errorf("DetectType(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

// A fraction that fails the birth-number checksum must fall through the
// cascade to the parcel rule instead of being rejected outright.
func TestDetectTypeAmbiguousFraction(t *testing.T) {
	if got := DetectType("123456/7890"); got == search.TypeBirthNumber {
		t.Fatalf("invalid birth number should not classify as BIRTH_NUMBER")
	}
	if got := DetectType("123/45"); got != search.TypeParcel {
		t.Errorf("DetectType(123/45) = %v, want PARCEL", got)
	}
}

func TestNormalizeValues(t *testing.T) {
	cases := []struct {
		typ   search.ValueType
		input string
		want  string
	}{
		{search.TypeAmount, "7 850 000 Kč", "7850000 CZK"},
		{search.TypeAmount, "1.500,50 Kč", "1500.50 CZK"},
		{search.TypePhone, "+420 777 123 456", "+420777123456"},
		{search.TypePhone, "777123456", "+420777123456"},
		{search.TypeDate, "15. 3. 2024", "2024-03-15"},
		{search.TypeDate, "1. ledna 2024", "2024-01-01"},
		{search.TypeBirthNumber, "940919 / 1022", "940919/1022"},
		{search.TypeIBAN, "CZ65 0800 0000 1920 0014 5399", "CZ6508000000192000145399"},
		{search.TypeParcel, "parc. č. 123/4", "123/4"},
		{search.TypeName, "Jan  Novák", "Jan Novák"},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			if got := NormalizeValue(tc.typ, tc.input); got != tc.want {
				t.Errorf("NormalizeValue(%v, %q) = %q, want %q", tc.typ, tc.input, got, tc.want)
			}
		})
	}
}
