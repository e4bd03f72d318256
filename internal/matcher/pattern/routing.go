// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"strings"
	"unicode"

	"contract-search/internal/document"
	"contract-search/internal/search"
)

// route maps a normalized query keyword to the types and clauses worth
// scanning. Keeping this table keyed by keyword keeps pattern matching from
// running every type's regexes on every query.
type route struct {
	types   []search.ValueType
	clauses []Clause
}

var routingTable = map[string]route{
	"cena":        {[]search.ValueType{search.TypeAmount}, []Clause{ClausePurchasePrice}},
	"castka":      {[]search.ValueType{search.TypeAmount}, []Clause{ClausePurchasePrice}},
	"kupni":       {[]search.ValueType{search.TypeAmount}, []Clause{ClausePurchasePrice}},
	"uhrada":      {[]search.ValueType{search.TypeAmount, search.TypeAccount}, []Clause{ClausePaymentTerms}},
	"zaloha":      {[]search.ValueType{search.TypeAmount}, []Clause{ClausePaymentTerms}},
	"splatnost":   {[]search.ValueType{search.TypeDate, search.TypeAmount}, []Clause{ClausePaymentTerms}},
	"splatna":     {[]search.ValueType{search.TypeDate}, []Clause{ClausePaymentTerms}},
	"rodne":       {[]search.ValueType{search.TypeBirthNumber}, nil},
	"rc":          {[]search.ValueType{search.TypeBirthNumber}, nil},
	"narozeni":    {[]search.ValueType{search.TypeBirthNumber, search.TypeDate}, nil},
	"ico":         {[]search.ValueType{search.TypeCompanyID}, nil},
	"ic":          {[]search.ValueType{search.TypeCompanyID}, nil},
	"spolecnost":  {[]search.ValueType{search.TypeCompanyID, search.TypeName}, []Clause{ClauseContractingParty}},
	"firma":       {[]search.ValueType{search.TypeCompanyID, search.TypeName}, []Clause{ClauseContractingParty}},
	"iban":        {[]search.ValueType{search.TypeIBAN}, nil},
	"ucet":        {[]search.ValueType{search.TypeAccount, search.TypeIBAN}, []Clause{ClausePaymentTerms}},
	"uctu":        {[]search.ValueType{search.TypeAccount, search.TypeIBAN}, []Clause{ClausePaymentTerms}},
	"bankovni":    {[]search.ValueType{search.TypeAccount, search.TypeIBAN}, []Clause{ClausePaymentTerms}},
	"telefon":     {[]search.ValueType{search.TypePhone}, nil},
	"tel":         {[]search.ValueType{search.TypePhone}, nil},
	"mobil":       {[]search.ValueType{search.TypePhone}, nil},
	"kontakt":     {[]search.ValueType{search.TypePhone}, nil},
	"datum":       {[]search.ValueType{search.TypeDate}, nil},
	"dne":         {[]search.ValueType{search.TypeDate}, nil},
	"termin":      {[]search.ValueType{search.TypeDate}, []Clause{ClausePaymentTerms}},
	"parcela":     {[]search.ValueType{search.TypeParcel}, []Clause{ClausePropertyDescription}},
	"pozemek":     {[]search.ValueType{search.TypeParcel}, []Clause{ClausePropertyDescription}},
	"katastr":     {[]search.ValueType{search.TypeParcel, search.TypeAddress}, []Clause{ClausePropertyDescription}},
	"nemovitost":  {[]search.ValueType{search.TypeParcel, search.TypeAmount}, []Clause{ClausePropertyDescription, ClausePurchasePrice}},
	"jmeno":       {[]search.ValueType{search.TypeName}, []Clause{ClauseContractingParty}},
	"osoba":       {[]search.ValueType{search.TypeName}, []Clause{ClauseContractingParty}},
	"pan":         {[]search.ValueType{search.TypeName}, nil},
	"pani":        {[]search.ValueType{search.TypeName}, nil},
	"strana":      {[]search.ValueType{search.TypeName}, []Clause{ClauseContractingParty}},
	"prodavajici": {[]search.ValueType{search.TypeName}, []Clause{ClauseContractingParty}},
	"kupujici":    {[]search.ValueType{search.TypeName}, []Clause{ClauseContractingParty}},
	"adresa":      {[]search.ValueType{search.TypeAddress}, nil},
	"bytem":       {[]search.ValueType{search.TypeAddress}, nil},
	"sidlo":       {[]search.ValueType{search.TypeAddress}, nil},
	"dph":         {[]search.ValueType{search.TypePercentage, search.TypeAmount}, nil},
	"urok":        {[]search.ValueType{search.TypePercentage}, nil},
	"procento":    {[]search.ValueType{search.TypePercentage}, nil},
	"sazba":       {[]search.ValueType{search.TypePercentage}, nil},
}

// RouteQuery maps a free-text query to the subset of value types and clause
// groups worth scanning. A query that routes nowhere falls back to every
// type (but no clause group) so unknown queries still get typed matches.
func RouteQuery(query string) ([]search.ValueType, []Clause) {
	typeSet := make(map[search.ValueType]bool)
	clauseSet := make(map[Clause]bool)

	words := strings.FieldsFunc(document.NormalizeString(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, tok := range words {
		r, ok := routingTable[tok]
		if !ok {
			continue
		}
		for _, t := range r.types {
			typeSet[t] = true
		}
		for _, c := range r.clauses {
			clauseSet[c] = true
		}
	}

	if len(typeSet) == 0 && len(clauseSet) == 0 {
		return search.AllTypes, nil
	}

	// Preserve specificity order for deterministic scanning.
	var types []search.ValueType
	for _, t := range search.AllTypes {
		if typeSet[t] {
			types = append(types, t)
		}
	}
	var clauses []Clause
	for _, c := range AllClauses {
		if clauseSet[c] {
			clauses = append(clauses, c)
		}
	}
	return types, clauses
}
