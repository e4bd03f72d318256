// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classifier

import (
	"fmt"
	"strconv"
)

// Czech civil-registry conventions for birth numbers (rodná čísla):
// female months carry a +50 offset, nine-digit numbers predate 1954 and
// carry no check digit, and the two-digit year of ten-digit numbers pivots
// at 54 (below it means the 2000s).
const (
	femaleMonthOffset = 50
	centuryPivot      = 54
)

// ValidateBirthNumber checks a Czech birth number in YYMMDD/XXX[X] form:
// date-range checks on the encoded birth date plus the mod-11 checksum on
// ten-digit numbers. Pre-1986 numbers whose first nine digits leave a
// remainder of 10 use check digit 0, which is also accepted.
func ValidateBirthNumber(s string) bool {
	d := digitsOnly(s)
	if len(d) != 9 && len(d) != 10 {
		return false
	}

	mm, _ := strconv.Atoi(d[2:4])
	dd, _ := strconv.Atoi(d[4:6])
	if mm > femaleMonthOffset {
		mm -= femaleMonthOffset
	}
	if mm < 1 || mm > 12 || dd < 1 || dd > 31 {
		return false
	}

	if len(d) == 9 {
		// Issued before 1954, no check digit; the year must fit that era.
		yy, _ := strconv.Atoi(d[0:2])
		return yy < centuryPivot
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum = sum*10 + int(d[i]-'0')
		sum %= 11
	}
	check := int(d[9] - '0')
	if sum == 10 {
		return check == 0
	}
	return check == sum
}

// NormalizeBirthNumber canonicalizes to YYMMDD/XXXX with no whitespace.
func NormalizeBirthNumber(s string) string {
	d := digitsOnly(s)
	if len(d) < 9 {
		return s
	}
	return d[:6] + "/" + d[6:]
}

// BirthNumberDate decodes the full birth date encoded in a valid birth
// number, resolving the female month offset and the century pivot.
func BirthNumberDate(s string) (year, month, day int, err error) {
	d := digitsOnly(s)
	if len(d) != 9 && len(d) != 10 {
		return 0, 0, 0, fmt.Errorf("birth number %q: want 9 or 10 digits, got %d", s, len(d))
	}
	yy, _ := strconv.Atoi(d[0:2])
	month, _ = strconv.Atoi(d[2:4])
	day, _ = strconv.Atoi(d[4:6])
	if month > femaleMonthOffset {
		month -= femaleMonthOffset
	}
	switch {
	case len(d) == 9:
		year = 1900 + yy
	case yy < centuryPivot:
		year = 2000 + yy
	default:
		year = 1900 + yy
	}
	return year, month, day, nil
}
