package fields

import (
	"sort"
	"strings"
)

// conversionFieldList are currency-denominated and get normalized before submission
// ⭐ SSOT: 통화 환산 대상 필드
var conversionFieldList = []string{
	"eodprice",
	"intradayprice",
	"intradaypricechange",
	"intradaymarketcap",
	"lastclosemarketcap.lasttwelvemonths",
	"totalrevenues.lasttwelvemonths",
	"ebit.lasttwelvemonths",
	"ebitda.lasttwelvemonths",
	"grossprofit.lasttwelvemonths",
	"netincomeis.lasttwelvemonths",
	"operatingincome.lasttwelvemonths",
	"basicepscontinuingoperations.lasttwelvemonths",
	"dilutedepscontinuingoperations.lasttwelvemonths",
	"netepsbasic.lasttwelvemonths",
	"netepsdiluted.lasttwelvemonths",
	"totalassets.lasttwelvemonths",
	"totalcashandshortterminvestments.lasttwelvemonths",
	"totalcommonequity.lasttwelvemonths",
	"totalcurrentassets.lasttwelvemonths",
	"totalcurrentliabilities.lasttwelvemonths",
	"totaldebt.lasttwelvemonths",
	"totalequity.lasttwelvemonths",
	"cashfromoperations.lasttwelvemonths",
	"capitalexpenditure.lasttwelvemonths",
	"leveredfreecashflow.lasttwelvemonths",
	"unleveredfreecashflow.lasttwelvemonths",
	"lastclosetevebit.lasttwelvemonths",
	"lastclosetevebitda.lasttwelvemonths",
	"valuation",
	"forward_dividend_per_share",
}

var conversionFields = func() map[string]struct{} {
	set := make(map[string]struct{}, len(conversionFieldList))
	for _, name := range conversionFieldList {
		set[name] = struct{}{}
	}
	return set
}()

// NeedsConversion reports whether a field's values are currency amounts
func NeedsConversion(field string) bool {
	_, ok := conversionFields[strings.ToLower(strings.TrimSpace(field))]
	return ok
}

// ConversionFields returns the currency-denominated field names, sorted
func ConversionFields() []string {
	out := make([]string, 0, len(conversionFields))
	for name := range conversionFields {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
