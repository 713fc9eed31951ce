// Package des implements the core of the DES (Déclaration Européenne de
// Services) report: reporting periods, customer country and VAT resolution,
// and per-customer aggregation of paid invoices over the designated EU
// country set.
package des

import "sort"

// HomeCountry is the filer's own country. It is deliberately absent from
// designatedCountries, so domestic invoices never enter the report.
const HomeCountry = "FR"

// designatedCountries maps ISO 3166-1 alpha-2 codes to French display names
// for the EU member states in scope for the DES (all members except France).
var designatedCountries = map[string]string{
	"AT": "Autriche",
	"BE": "Belgique",
	"BG": "Bulgarie",
	"HR": "Croatie",
	"CY": "Chypre",
	"CZ": "Tchéquie",
	"DK": "Danemark",
	"EE": "Estonie",
	"FI": "Finlande",
	"DE": "Allemagne",
	"GR": "Grèce",
	"HU": "Hongrie",
	"IE": "Irlande",
	"IT": "Italie",
	"LV": "Lettonie",
	"LT": "Lituanie",
	"LU": "Luxembourg",
	"MT": "Malte",
	"NL": "Pays-Bas",
	"PL": "Pologne",
	"PT": "Portugal",
	"RO": "Roumanie",
	"SK": "Slovaquie",
	"SI": "Slovénie",
	"ES": "Espagne",
	"SE": "Suède",
}

// CountryName returns the display name for a designated country code, and
// whether the code is in scope for the report.
func CountryName(code string) (string, bool) {
	name, ok := designatedCountries[code]
	return name, ok
}

// CountryCodes returns the designated country codes in ascending order.
func CountryCodes() []string {
	codes := make([]string, 0, len(designatedCountries))
	for code := range designatedCountries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
