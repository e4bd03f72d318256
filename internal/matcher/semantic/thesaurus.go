// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package semantic

// stopWords are filtered out of queries before term extraction. Keys are in
// normalized (diacritics-free, lowercase) form.
var stopWords = map[string]bool{
	"a": true, "v": true, "ve": true, "na": true, "se": true, "s": true,
	"z": true, "ze": true, "o": true, "do": true, "k": true, "ke": true,
	"u": true, "za": true, "je": true, "jsou": true, "byl": true,
	"byla": true, "bylo": true, "byt": true, "ktery": true, "ktera": true,
	"ktere": true, "tento": true, "tato": true, "toto": true, "ten": true,
	"ta": true, "to": true, "i": true, "nebo": true, "ale": true,
	"pro": true, "pri": true, "po": true, "od": true, "dle": true,
	"podle": true, "jako": true, "tak": true, "vsech": true, "jeho": true,
	"jeji": true, "jejich": true, "co": true, "jak": true, "kde": true,
}

// thesaurus is the closed synonym table used for query expansion and the
// direct-relation step of the similarity ladder. Keys and values are in
// normalized form.
var thesaurus = map[string][]string{
	"cena":        {"castka", "hodnota", "suma", "uplata", "kupni cena", "odmena"},
	"kupni cena":  {"cena", "castka", "kupni", "uhrada"},
	"castka":      {"cena", "suma", "hodnota", "obnos"},
	"smlouva":     {"dohoda", "kontrakt", "ujednani", "smluvni vztah"},
	"prodavajici": {"prevodce", "zcizitel", "prodejce", "vlastnik"},
	"kupujici":    {"nabyvatel", "kupec", "zakaznik"},
	"najemce":     {"najemnik", "uzivatel"},
	"pronajimatel": {"vlastnik", "majitel"},
	"nemovitost":  {"pozemek", "parcela", "budova", "stavba", "byt", "dum"},
	"pozemek":     {"parcela", "nemovitost", "zahrada"},
	"ucet":        {"bankovni ucet", "cislo uctu", "iban", "bankovni spojeni"},
	"platba":      {"uhrada", "zaplaceni", "splatka", "prevod"},
	"uhrada":      {"platba", "zaplaceni", "splaceni"},
	"splatnost":   {"termin platby", "datum splatnosti", "lhuta"},
	"rodne cislo": {"rc", "identifikace", "osobni cislo"},
	"ico":         {"identifikacni cislo", "ic", "firma"},
	"telefon":     {"tel", "mobil", "kontakt", "telefonni cislo"},
	"adresa":      {"bydliste", "sidlo", "misto"},
	"datum":       {"den", "termin", "lhuta"},
	"podpis":      {"signatura", "podepsani"},
	"zaloha":      {"akontace", "zalohova platba", "predplatba"},
	"sankce":      {"pokuta", "penale", "smluvni pokuta", "urok z prodleni"},
	"vymera":      {"plocha", "rozloha"},
	"vlastnik":    {"majitel", "drzitel", "prodavajici"},
}

// Intent classifies the coarse purpose of a query.
type Intent string

const (
	IntentSearch   Intent = "search"
	IntentAmount   Intent = "amount"
	IntentPerson   Intent = "person"
	IntentDate     Intent = "date"
	IntentLocation Intent = "location"
	IntentPhone    Intent = "phone"
	IntentDocument Intent = "document"
)

// intentKeywords drive detection: an intent's confidence is the fraction of
// its keyword list present in the query. Normalized form.
var intentKeywords = map[Intent][]string{
	IntentAmount:   {"cena", "castka", "kc", "czk", "kolik", "suma", "hodnota", "zaplatit", "uhrada"},
	IntentPerson:   {"kdo", "jmeno", "osoba", "pan", "pani", "prodavajici", "kupujici", "rodne"},
	IntentDate:     {"kdy", "datum", "dne", "termin", "splatnost", "lhuta"},
	IntentLocation: {"kde", "adresa", "misto", "bydliste", "sidlo", "katastr", "parcela", "pozemek"},
	IntentPhone:    {"telefon", "tel", "mobil", "kontakt", "cislo"},
	IntentDocument: {"smlouva", "dokument", "listina", "priloha", "clanek", "odstavec"},
	IntentSearch:   {"najdi", "vyhledej", "hledam", "zobraz", "kde je"},
}

// curatedTrigrams are domain phrases emitted as single terms when present.
var curatedTrigrams = []string{
	"kupni cena nemovitosti",
	"smluvni pokuta ve",
	"urok z prodleni",
	"cislo bankovniho uctu",
	"katastralni uzemi obce",
	"list vlastnictvi cislo",
}
