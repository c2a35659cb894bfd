package currency

import (
	"sort"
	"strings"

	"github.com/wonny/screener/internal/contracts"
)

// DefaultCurrency is used for unknown regions and multi-region filters
const DefaultCurrency = "USD"

// regionCurrencies maps a screener region code to its trading currency
// ⭐ SSOT: 지역 → 통화 매핑
var regionCurrencies = map[string]string{
	"ar": "ARS", // Argentina
	"at": "EUR", // Austria
	"au": "AUD", // Australia
	"be": "EUR", // Belgium
	"br": "BRL", // Brazil
	"ca": "CAD", // Canada
	"ch": "CHF", // Switzerland
	"cl": "CLP", // Chile
	"cn": "CNY", // China
	"co": "COP", // Colombia
	"cz": "CZK", // Czech Republic
	"de": "EUR", // Germany
	"dk": "DKK", // Denmark
	"ee": "EUR", // Estonia
	"eg": "EGP", // Egypt
	"es": "EUR", // Spain
	"fi": "EUR", // Finland
	"fr": "EUR", // France
	"gb": "GBP", // United Kingdom
	"gr": "EUR", // Greece
	"hk": "HKD", // Hong Kong
	"hu": "HUF", // Hungary
	"id": "IDR", // Indonesia
	"ie": "EUR", // Ireland
	"il": "ILS", // Israel
	"in": "INR", // India
	"is": "ISK", // Iceland
	"it": "EUR", // Italy
	"jp": "JPY", // Japan
	"kr": "KRW", // South Korea
	"kw": "KWD", // Kuwait
	"lk": "LKR", // Sri Lanka
	"lt": "EUR", // Lithuania
	"lv": "EUR", // Latvia
	"mx": "MXN", // Mexico
	"my": "MYR", // Malaysia
	"nl": "EUR", // Netherlands
	"no": "NOK", // Norway
	"nz": "NZD", // New Zealand
	"pe": "PEN", // Peru
	"ph": "PHP", // Philippines
	"pk": "PKR", // Pakistan
	"pl": "PLN", // Poland
	"pt": "EUR", // Portugal
	"qa": "QAR", // Qatar
	"ro": "RON", // Romania
	"ru": "RUB", // Russia
	"sa": "SAR", // Saudi Arabia
	"se": "SEK", // Sweden
	"sg": "SGD", // Singapore
	"sr": "SRD", // Suriname
	"th": "THB", // Thailand
	"tr": "TRY", // Turkey
	"tw": "TWD", // Taiwan
	"us": "USD", // United States
	"ve": "VES", // Venezuela
	"vn": "VND", // Vietnam
	"za": "ZAR", // South Africa
}

// CurrencyForRegion returns the currency of a region code, USD when unknown
func CurrencyForRegion(region string) string {
	if code, ok := regionCurrencies[strings.ToLower(strings.TrimSpace(region))]; ok {
		return code
	}
	return DefaultCurrency
}

// IsKnownRegion reports whether the region code is in the table
func IsKnownRegion(region string) bool {
	_, ok := regionCurrencies[strings.ToLower(strings.TrimSpace(region))]
	return ok
}

// ResolveRegionCurrency returns the normalization currency for a region filter value.
// A list of regions is not currency-adjusted and resolves to USD.
func ResolveRegionCurrency(v contracts.FilterValue) string {
	s, ok := v.Single()
	if !ok {
		return DefaultCurrency
	}
	return CurrencyForRegion(s.String())
}

// Regions returns all known region codes, sorted
func Regions() []string {
	out := make([]string, 0, len(regionCurrencies))
	for r := range regionCurrencies {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
