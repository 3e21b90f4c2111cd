package parser

import (
	"strings"
)

// cityAliases maps spoken city names and IATA codes to canonical city names
var cityAliases = map[string]string{
	"bangalore": "Bangalore",
	"bengaluru": "Bangalore",
	"blr":       "Bangalore",
	"jeddah":    "Jeddah",
	"jed":       "Jeddah",
	"riyadh":    "Riyadh",
	"ruh":       "Riyadh",
	"dubai":     "Dubai",
	"dxb":       "Dubai",
	"mumbai":    "Mumbai",
	"bom":       "Mumbai",
	"delhi":     "Delhi",
	"del":       "Delhi",
}

// cityCodes maps canonical city names (and their aliases) to IATA airport codes
var cityCodes = map[string]string{
	"bangalore": "BLR",
	"bengaluru": "BLR",
	"blr":       "BLR",
	"jeddah":    "JED",
	"jed":       "JED",
	"riyadh":    "RUH",
	"ruh":       "RUH",
	"dubai":     "DXB",
	"dxb":       "DXB",
	"mumbai":    "BOM",
	"bom":       "BOM",
	"delhi":     "DEL",
	"del":       "DEL",
}

// NormalizeCity canonicalizes a location as sent by the voice widget.
// Widgets frequently send "Bengaluru BLR", so only the first token is
// kept before the alias lookup. Unknown cities pass through unchanged.
func NormalizeCity(raw string) string {
	city := strings.TrimSpace(raw)
	if city == "" {
		return ""
	}
	if fields := strings.Fields(city); len(fields) > 1 {
		city = fields[0]
	}
	if canonical, ok := cityAliases[strings.ToLower(city)]; ok {
		return canonical
	}
	return city
}

// AirportCode resolves a city name to its IATA code. Unknown cities are
// upper-cased and returned as-is so three-letter codes survive the lookup.
func AirportCode(city string) string {
	if code, ok := cityCodes[strings.ToLower(strings.TrimSpace(city))]; ok {
		return code
	}
	return strings.ToUpper(strings.TrimSpace(city))
}
