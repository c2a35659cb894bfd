package fields

import (
	"fmt"

	"github.com/wonny/screener/internal/contracts"
)

// Field describes a screenable field and the phrases users say for it
type Field struct {
	Name     string   `json:"name"`
	Aliases  []string `json:"aliases"`
	Currency bool     `json:"currency"`
}

func f(name string, aliases ...string) Field {
	return Field{Name: name, Aliases: aliases, Currency: NeedsConversion(name)}
}

var equityFields = []Field{
	f("exchange", "stock exchange", "trading venue"),
	f("industry", "business category", "sector group"),
	f("peer_group", "peer group", "comparison group", "industry peer"),
	f("region", "country", "geography", "market region"),
	f("sector", "market sector", "industry sector"),

	f("eodprice", "closing price", "end of day price", "eod price"),
	f("fiftytwowkpercentchange", "52-week change", "yearly percent change"),
	f("intradaymarketcap", "market cap (intraday)", "realtime market cap"),
	f("intradayprice", "live price", "real-time price"),
	f("intradaypricechange", "price change (today)", "daily change", "change %"),

	f("lastclose52weekhigh.lasttwelvemonths", "52-week high", "year high"),
	f("lastclose52weeklow.lasttwelvemonths", "52-week low", "year low"),
	f("lastclosemarketcap.lasttwelvemonths", "market cap (close)", "company value"),
	f("percentchange", "percent change", "return", "% change"),
	f("avgdailyvol3m", "average volume", "3-month volume average"),
	f("beta", "beta", "volatility"),
	f("dayvolume", "today's volume", "traded volume"),
	f("eodvolume", "end of day volume", "daily volume"),

	f("pctheldinsider", "insider ownership", "held by insiders"),
	f("pctheldinst", "institutional ownership", "held by institutions"),
	f("days_to_cover_short.value", "days to cover", "short interest ratio"),
	f("short_interest.value", "short interest", "total shares short"),
	f("short_interest_percentage_change.value", "short interest change %"),
	f("short_percentage_of_float.value", "% of float short", "short % float"),
	f("short_percentage_of_shares_outstanding.value", "% of shares short", "short % outstanding"),

	f("bookvalueshare.lasttwelvemonths", "book value per share", "bvps"),
	f("lastclosemarketcaptotalrevenue.lasttwelvemonths", "market cap / revenue", "price/sales"),
	f("lastclosepriceearnings.lasttwelvemonths", "p/e ratio", "price to earnings", "pe ratio"),
	f("lastclosepricetangiblebookvalue.lasttwelvemonths", "price/tangible book value", "ptbv"),
	f("lastclosetevtotalrevenue.lasttwelvemonths", "ev/revenue", "enterprise value to revenue"),
	f("pegratio_5y", "peg ratio", "p/e growth ratio"),
	f("peratio.lasttwelvemonths", "trailing p/e", "pe ratio"),
	f("pricebookratio.quarterly", "price/book", "p/b ratio"),

	f("consecutive_years_of_dividend_growth_count", "dividend growth streak", "years of dividend increases"),
	f("forward_dividend_per_share", "forward dividend", "expected dividend"),
	f("forward_dividend_yield", "forward yield", "estimated dividend yield"),

	f("returnonassets.lasttwelvemonths", "return on assets", "roa"),
	f("returnonequity.lasttwelvemonths", "return on equity", "roe"),
	f("returnontotalcapital.lasttwelvemonths", "return on capital", "rotc"),
	f("ebitdainterestexpense.lasttwelvemonths", "ebitda / interest", "interest coverage (ebitda)"),
	f("ebitinterestexpense.lasttwelvemonths", "ebit / interest", "interest coverage (ebit)"),
	f("lastclosetevebit.lasttwelvemonths", "ev/ebit", "enterprise value / ebit"),
	f("lastclosetevebitda.lasttwelvemonths", "ev/ebitda", "enterprise value / ebitda"),

	f("ltdebtequity.lasttwelvemonths", "long-term debt/equity", "lt debt to equity"),
	f("netdebtebitda.lasttwelvemonths", "net debt/ebitda", "leverage ratio"),
	f("totaldebtebitda.lasttwelvemonths", "total debt/ebitda"),
	f("totaldebtequity.lasttwelvemonths", "debt to equity", "debt/equity"),

	f("altmanzscoreusingtheaveragestockinformationforaperiod.lasttwelvemonths", "altman z-score", "bankruptcy score"),
	f("currentratio.lasttwelvemonths", "current ratio", "liquidity ratio"),
	f("operatingcashflowtocurrentliabilities.lasttwelvemonths", "ocf to liabilities", "cash flow coverage"),
	f("quickratio.lasttwelvemonths", "quick ratio", "acid test ratio"),

	f("basicepscontinuingoperations.lasttwelvemonths", "basic eps", "earnings per share (basic)"),
	f("dilutedeps1yrgrowth.lasttwelvemonths", "eps growth", "diluted eps growth"),
	f("dilutedepscontinuingoperations.lasttwelvemonths", "diluted eps", "eps continuing ops"),

	f("ebit.lasttwelvemonths", "ebit", "earnings before interest & tax"),
	f("ebitda.lasttwelvemonths", "ebitda", "earnings before interest, tax, depreciation, amortization"),
	f("ebitda1yrgrowth.lasttwelvemonths", "ebitda growth", "ebitda 1y change"),
	f("ebitdamargin.lasttwelvemonths", "ebitda margin", "ebitda % margin"),

	f("epsgrowth.lasttwelvemonths", "eps growth", "earnings growth"),
	f("grossprofit.lasttwelvemonths", "gross profit"),
	f("grossprofitmargin.lasttwelvemonths", "gross margin", "gross profit margin"),
	f("netepsbasic.lasttwelvemonths", "net eps", "basic eps"),
	f("netepsdiluted.lasttwelvemonths", "net eps diluted", "diluted eps"),

	f("netincome1yrgrowth.lasttwelvemonths", "net income growth", "profit growth"),
	f("netincomeis.lasttwelvemonths", "net income", "bottom line"),
	f("netincomemargin.lasttwelvemonths", "net margin", "net profit margin"),
	f("operatingincome.lasttwelvemonths", "operating income", "operating profit"),

	f("quarterlyrevenuegrowth.quarterly", "revenue growth", "sales growth"),
	f("totalrevenues.lasttwelvemonths", "total revenue", "sales"),
	f("totalrevenues1yrgrowth.lasttwelvemonths", "revenue growth 1y", "sales growth 1y"),

	f("totalassets.lasttwelvemonths", "total assets"),
	f("totalcashandshortterminvestments.lasttwelvemonths", "cash and equivalents", "cash reserves"),
	f("totalcommonequity.lasttwelvemonths", "common equity"),
	f("totalcommonsharesoutstanding.lasttwelvemonths", "shares outstanding", "common shares"),
	f("totalcurrentassets.lasttwelvemonths", "current assets"),
	f("totalcurrentliabilities.lasttwelvemonths", "current liabilities"),
	f("totaldebt.lasttwelvemonths", "total debt"),
	f("totalequity.lasttwelvemonths", "total equity", "shareholder equity"),
	f("totalsharesoutstanding", "total shares", "shares issued"),

	f("capitalexpenditure.lasttwelvemonths", "capex", "capital expenditures"),
	f("cashfromoperations.lasttwelvemonths", "operating cash flow"),
	f("cashfromoperations1yrgrowth.lasttwelvemonths", "cash flow growth"),
	f("leveredfreecashflow.lasttwelvemonths", "levered FCF", "free cash flow (levered)"),
	f("leveredfreecashflow1yrgrowth.lasttwelvemonths", "levered FCF growth"),
	f("unleveredfreecashflow.lasttwelvemonths", "unlevered FCF", "free cash flow (unlevered)"),

	f("environmental_score", "environmental score", "esg - environmental"),
	f("esg_score", "esg score", "environmental social governance"),
	f("governance_score", "governance score", "esg - governance"),
	f("highest_controversy", "controversy level", "controversy rating"),
	f("social_score", "social score", "esg - social"),
}

var fundFields = []Field{
	f("annualreturnnavy1categoryrank", "1-year return rank", "category rank (1Y)", "annual return rank"),
	f("categoryname", "fund category", "investment category", "category name"),
	f("exchange", "stock exchange", "fund exchange", "trading platform"),
	f("initialinvestment", "minimum investment", "initial buy-in", "first investment amount"),
	f("performanceratingoverall", "overall performance rating", "rating", "fund rating", "morningstar rating"),
	f("riskratingoverall", "risk rating", "risk level", "overall risk score"),
	f("eodprice", "closing price", "end of day price", "eod price"),
	f("intradayprice", "current price", "real-time price", "intraday value"),
	f("intradaypricechange", "price change today", "daily change", "change in price"),
}

// EquityFields returns the fields available to equity screens
func EquityFields() []Field {
	return clone(equityFields)
}

// FundFields returns the fields available to fund screens
func FundFields() []Field {
	return clone(fundFields)
}

// ForMode returns the field list for an equity or fund request
func ForMode(mode contracts.Mode) ([]Field, error) {
	switch mode {
	case contracts.ModeEquity:
		return EquityFields(), nil
	case contracts.ModeFund:
		return FundFields(), nil
	}
	return nil, fmt.Errorf("mode %q has no field catalog", mode)
}

func clone(in []Field) []Field {
	out := make([]Field, len(in))
	for i, fl := range in {
		fl.Aliases = append([]string(nil), fl.Aliases...)
		out[i] = fl
	}
	return out
}
