package portal

import "sort"

// district -> talukas reference data, a compact set of Maharashtra districts
// for the demo. Used by the presentation layer to populate location selects.
var locationData = map[string][]string{
	"Pune":            {"Baramati", "Junnar", "Maval", "Mulshi", "Daund", "Indapur", "Bhor", "Haveli"},
	"Mumbai City":     {"Colaba", "Byculla", "Malabar Hill"},
	"Mumbai Suburban": {"Andheri", "Borivali", "Kurla"},
	"Nagpur":          {"Kamptee", "Umred", "Katol", "Hingna"},
	"Nashik":          {"Sinnar", "Malegaon", "Niphad", "Baglan"},
	"Aurangabad":      {"Kannad", "Sillod", "Paithan"},
	"Solapur":         {"Pandharpur", "Barshi", "Mohol"},
	"Kolhapur":        {"Karveer", "Panhala", "Hatkanangale"},
	"Satara":          {"Karad", "Wai", "Patan"},
	"Sangli":          {"Tasgaon", "Miraj", "Jat"},
	"Ahmednagar":      {"Shrirampur", "Sangamner", "Kopargaon"},
	"Amravati":        {"Achalpur", "Daryapur", "Morshi"},
	"Chandrapur":      {"Warora", "Bhadrawati", "Mul"},
	"Latur":           {"Ausa", "Udgir", "Renapur"},
	"Beed":            {"Ashti", "Georai", "Ambajogai"},
}

// Districts returns all known districts, sorted for stable output
func Districts() []string {
	res := make([]string, 0, len(locationData))
	for d := range locationData {
		res = append(res, d)
	}
	sort.Strings(res)
	return res
}

// Talukas returns the talukas of a district, empty for an unknown district
func Talukas(district string) []string {
	talukas, ok := locationData[district]
	if !ok {
		return []string{}
	}
	res := make([]string, len(talukas))
	copy(res, talukas)
	return res
}
