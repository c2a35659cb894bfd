package catalog

import (
	c "github.com/wonny/screener/internal/contracts"
)

const (
	fieldExchange  = "exchange"
	fieldRegion    = "region"
	fieldSector    = "sector"
	fieldIndustry  = "industry"
	fieldMarketCap = "intradaymarketcap"
	fieldPrice     = "intradayprice"
	fieldChange    = "percentchange"
	fieldDayVolume = "dayvolume"
	fieldEODVolume = "eodvolume"
	fieldNetAssets = "fundnetassets"
)

// anyOf matches any of the string values: or(eq(field, v1), eq(field, v2)...)
func anyOf(field string, values ...string) *c.Combinator {
	children := make([]c.QueryNode, len(values))
	for i, v := range values {
		children[i] = c.Eq(field, c.String(v))
	}
	return c.Or(children...)
}

// anyNum matches any of the numeric values
func anyNum(field string, values ...float64) *c.Combinator {
	children := make([]c.QueryNode, len(values))
	for i, v := range values {
		children[i] = c.Eq(field, c.Number(v))
	}
	return c.Or(children...)
}

func eqStr(field, value string) *c.Leaf {
	return c.Eq(field, c.String(value))
}

// usMajorExchanges is NASDAQ + NYSE
func usMajorExchanges() *c.Combinator {
	return anyOf(fieldExchange, "NMS", "NYQ")
}

// midCapAndUp is market cap >= 2B in the service's three tiers
func midCapAndUp() *c.Combinator {
	return c.Or(
		c.Between(fieldMarketCap, 2e9, 1e10),
		c.Between(fieldMarketCap, 1e10, 1e11),
		c.Gt(fieldMarketCap, 1e11),
	)
}

// notOTC excludes over-the-counter and unlisted venues
func notOTC() *c.Combinator {
	return c.MustNot(
		eqStr(fieldExchange, "PNK"),
		eqStr(fieldExchange, "OQB"),
		eqStr(fieldExchange, "OQX"),
		eqStr(fieldExchange, "OEM"),
		eqStr(fieldExchange, "OGM"),
		eqStr(fieldExchange, "XXX"),
		eqStr(fieldExchange, "OBB"),
	)
}

// growthTiers is field >= 25 in the service's three growth buckets
func growthTiers(field string) *c.Combinator {
	return c.Or(
		c.Between(field, 25, 50),
		c.Between(field, 50, 100),
		c.Gt(field, 100),
	)
}

// fundQuality is the shared rating/investment/rank screen for mutual funds
func fundQuality() []c.QueryNode {
	return []c.QueryNode{
		anyNum("performanceratingoverall", 4, 5),
		c.Lt("initialinvestment", 100001),
		c.Lt("annualreturnnavy1categoryrank", 50),
	}
}

func lowRisk() *c.Combinator {
	return anyNum("riskratingoverall", 1, 3, 2)
}
