// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classifier

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizePhone canonicalizes Czech phone numbers to +420XXXXXXXXX.
func NormalizePhone(s string) string {
	d := digitsOnly(s)
	d = strings.TrimPrefix(d, "00420")
	d = strings.TrimPrefix(d, "420")
	if len(d) != 9 {
		return s
	}
	return "+420" + d
}

// NormalizeAmount strips thousands separators and canonicalizes the
// currency token, e.g. "7 850 000 Kč" -> "7850000 CZK".
func NormalizeAmount(s string) string {
	t := strings.TrimSpace(s)
	currency := "CZK"
	switch {
	case strings.HasSuffix(t, "Kč"):
		t = strings.TrimSuffix(t, "Kč")
	case strings.HasSuffix(t, "CZK"):
		t = strings.TrimSuffix(t, "CZK")
	case strings.HasSuffix(t, ",-"):
		t = strings.TrimSuffix(t, ",-")
	case strings.HasSuffix(t, "EUR"):
		t, currency = strings.TrimSuffix(t, "EUR"), "EUR"
	case strings.HasSuffix(t, "€"):
		t, currency = strings.TrimSuffix(t, "€"), "EUR"
	}
	t = strings.TrimSpace(t)

	// Decimal part is comma-separated; thousands may use space, NBSP or dot.
	intPart, decPart, hasDec := strings.Cut(t, ",")
	intPart = digitsOnly(intPart)
	if intPart == "" {
		return s
	}
	if hasDec && digitsOnly(decPart) != "" {
		return intPart + "." + digitsOnly(decPart) + " " + currency
	}
	return intPart + " " + currency
}

func validateDateNumeric(s string) bool {
	_, err := parseDateNumeric(s)
	return err == nil
}

func parseDateNumeric(s string) (string, error) {
	parts := strings.SplitN(s, ".", 3)
	if len(parts) != 3 {
		return "", fmt.Errorf("date %q: want d.m.yyyy", s)
	}
	day, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, _ := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, _ := strconv.Atoi(strings.TrimSpace(parts[2]))
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 1000 {
		return "", fmt.Errorf("date %q out of range", s)
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}

// NormalizeDate canonicalizes numeric and Czech month-name dates to ISO
// yyyy-mm-dd form. Unparseable input is returned unchanged.
func NormalizeDate(s string) string {
	t := strings.TrimSpace(s)
	if iso, err := parseDateNumeric(t); err == nil {
		return iso
	}
	fields := strings.Fields(strings.ReplaceAll(t, ".", ". "))
	if len(fields) == 3 {
		day, _ := strconv.Atoi(strings.TrimSuffix(fields[0], "."))
		month := czechMonths[strings.ToLower(fields[1])]
		year, _ := strconv.Atoi(fields[2])
		if day >= 1 && day <= 31 && month != 0 && year >= 1000 {
			return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		}
	}
	return s
}
