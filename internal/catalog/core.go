package catalog

import (
	c "github.com/wonny/screener/internal/contracts"
)

func coreEntries() []Entry {
	return []Entry{
		{
			Name: "day_gainers",
			Query: c.And(
				c.Gt(fieldChange, 3),
				eqStr(fieldRegion, "us"),
				midCapAndUp(),
				c.Gte(fieldPrice, 5),
				c.Gt(fieldDayVolume, 15000),
				notOTC(),
			),
			SortField: fieldChange,
		},
		{
			Name: "day_losers",
			Query: c.And(
				c.Lt(fieldChange, -2.5),
				eqStr(fieldRegion, "us"),
				midCapAndUp(),
				c.Gte(fieldPrice, 5),
				c.Gt(fieldDayVolume, 20000),
				notOTC(),
			),
			SortField:     fieldChange,
			SortAscending: true,
		},
		{
			Name: "most_actives",
			Query: c.And(
				eqStr(fieldRegion, "us"),
				midCapAndUp(),
				c.Gt(fieldDayVolume, 5000000),
				notOTC(),
			),
			SortField: fieldDayVolume,
		},
		{
			Name: "aggressive_small_caps",
			Query: c.And(
				c.Gt("epsgrowth.lasttwelvemonths", 25),
				c.Lt(fieldMarketCap, 2e9),
				usMajorExchanges(),
			),
			SortField: fieldEODVolume,
		},
		{
			Name: "growth_technology_stocks",
			Query: c.And(
				growthTiers("quarterlyrevenuegrowth.quarterly"),
				growthTiers("epsgrowth.lasttwelvemonths"),
				eqStr(fieldSector, "Technology"),
				usMajorExchanges(),
			),
			SortField: fieldEODVolume,
		},
		{
			Name: "undervalued_growth_stocks",
			Query: c.And(
				c.Or(c.Between("peratio.lasttwelvemonths", 0, 20)),
				c.Or(c.Lt("pegratio_5y", 1)),
				growthTiers("epsgrowth.lasttwelvemonths"),
				usMajorExchanges(),
			),
			SortField: fieldEODVolume,
		},
		{
			Name: "undervalued_large_caps",
			Query: c.And(
				c.Between("peratio.lasttwelvemonths", 0, 20),
				c.Lt("pegratio_5y", 1),
				c.Between(fieldMarketCap, 1e10, 1e11),
				usMajorExchanges(),
			),
			SortField: fieldEODVolume,
		},
		{
			Name: "small_cap_gainers",
			Query: c.And(
				c.Gt(fieldChange, 5),
				c.Lt(fieldMarketCap, 2e9),
				usMajorExchanges(),
			),
			SortField: fieldEODVolume,
		},
		{
			Name: "most_shorted_stocks",
			Query: c.And(
				c.Or(eqStr(fieldRegion, "us")),
				c.Gt(fieldPrice, 1),
				c.Gt("avgdailyvol3m", 200000),
			),
			SortField: "short_percentage_of_shares_outstanding.value",
		},
		{
			Name: "mega_cap_hc",
			Query: c.And(
				c.Or(eqStr(fieldRegion, "us")),
				c.Or(c.Between(fieldMarketCap, 1e10, 1e11)),
				c.Gt(fieldPrice, 5),
				c.Or(eqStr(fieldSector, "Healthcare")),
			),
			SortField: fieldMarketCap,
		},
		{
			Name:      "most_watched_tickers",
			Query:     c.And(c.Gt("portfolioheldcount", 1000)),
			SortField: "portfolioheldcount",
		},
		{
			Name: "top_energy_us",
			Query: c.And(
				c.Gt(fieldPrice, 5),
				c.Or(eqStr(fieldSector, "Energy")),
				anyOf(fieldExchange, "NMS", "NYQ", "NAS"),
			),
			SortField: fieldMarketCap,
		},
		{
			Name:      "top_etfs_us",
			Title:     "Top ETFs US",
			QuoteType: c.QuoteTypeETF,
			Query: c.And(
				c.Gt(fieldPrice, 10),
				anyNum("performanceratingoverall", 5, 4),
				c.Or(eqStr(fieldRegion, "us")),
			),
			SortField: fieldChange,
		},

		// Mutual funds
		{
			Name:      "conservative_foreign_funds",
			QuoteType: c.QuoteTypeMutualFund,
			Query: c.And(append(
				[]c.QueryNode{anyOf("categoryname",
					"Foreign Large Value",
					"Foreign Large Blend",
					"Foreign Large Growth",
					"Foreign Small/Mid Growth",
					"Foreign Small/Mid Blend",
					"Foreign Small/Mid Value",
				)},
				append(fundQuality(), lowRisk(), anyOf(fieldExchange, "NAS"))...,
			)...),
			SortField: fieldNetAssets,
		},
		{
			Name:      "high_yield_bond",
			QuoteType: c.QuoteTypeMutualFund,
			Query: c.And(append(
				fundQuality(),
				lowRisk(),
				anyOf("categoryname", "High Yield Bond"),
				anyOf(fieldExchange, "NAS"),
			)...),
			SortField: fieldNetAssets,
		},
		fundCategory("portfolio_anchors", "Large Blend"),
		fundCategory("solid_large_growth_funds", "Large Growth"),
		fundCategory("solid_midcap_growth_funds", "Mid-Cap Growth"),
		{
			Name:      "top_mutual_funds",
			QuoteType: c.QuoteTypeMutualFund,
			Query: c.And(
				c.Gt(fieldPrice, 15),
				anyNum("performanceratingoverall", 4, 5),
				c.Gt("initialinvestment", 1000),
				anyOf(fieldExchange, "NAS"),
			),
			SortField: fieldChange,
		},
	}
}

// fundCategory is a quality fund screen restricted to one Morningstar category
func fundCategory(name, category string) Entry {
	children := []c.QueryNode{anyOf("categoryname", category)}
	children = append(children, fundQuality()...)
	children = append(children, anyOf(fieldExchange, "NAS"))

	return Entry{
		Name:      name,
		QuoteType: c.QuoteTypeMutualFund,
		Query:     c.And(children...),
		SortField: fieldNetAssets,
	}
}
