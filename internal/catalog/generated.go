package catalog

import (
	c "github.com/wonny/screener/internal/contracts"
)

// regionGroups are the multi-region variants of the market movers screens
var regionGroups = []struct {
	suffix  string
	regions []string
}{
	{"americas", []string{"ca", "mx", "us", "ar", "br", "cl", "pe", "sr", "ve"}},
	{"asia", []string{"cn", "hk", "id", "in", "jp", "kr", "my", "ph", "pk", "sg", "tw", "th", "vn"}},
	{"europe", []string{"at", "be", "ch", "cz", "de", "dk", "es", "fi", "fr", "gb", "gr", "hu", "ie", "it", "nl", "no", "pl", "pt", "ru", "se", "tr"}},
}

// singleRegions have per-country variants
var singleRegions = []string{"au", "br", "ca", "de", "es", "fr", "gb", "hk", "in", "it", "nz", "sg"}

// fundExchanges is the primary fund venue per region for top_mutual_funds_<region>
var fundExchanges = map[string]string{
	"au": "ASX",
	"br": "SAO",
	"ca": "TOR",
	"de": "GER",
	"es": "MCE",
	"fr": "PAR",
	"gb": "LSE",
	"hk": "HKG",
	"in": "BSE",
	"it": "MIL",
	"nz": "NZE",
	"sg": "SES",
	"us": "NAS",
}

func regionalEntries() []Entry {
	var out []Entry

	for _, g := range regionGroups {
		minVolume := 15000.0
		if g.suffix == "europe" {
			minVolume = 20000
		}

		out = append(out,
			Entry{
				Name:      "day_gainers_" + g.suffix,
				Query:     c.And(c.Gt(fieldChange, 3), anyOf(fieldRegion, g.regions...), midCapAndUp(), c.Gt(fieldDayVolume, minVolume)),
				SortField: fieldChange,
			},
			Entry{
				Name:          "day_losers_" + g.suffix,
				Query:         c.And(c.Lt(fieldChange, -2.5), anyOf(fieldRegion, g.regions...), midCapAndUp(), c.Gt(fieldDayVolume, minVolume)),
				SortField:     fieldChange,
				SortAscending: true,
			},
			Entry{
				Name:      "most_actives_" + g.suffix,
				Query:     c.And(anyOf(fieldRegion, g.regions...), midCapAndUp(), c.Gt(fieldDayVolume, 5000000)),
				SortField: fieldDayVolume,
			},
		)
	}

	for _, r := range singleRegions {
		out = append(out,
			Entry{
				Name:      "day_gainers_" + r,
				Query:     c.And(c.Gt(fieldChange, 2.5), eqStr(fieldRegion, r)),
				SortField: fieldChange,
			},
			Entry{
				Name:          "day_losers_" + r,
				Query:         c.And(c.Lt(fieldChange, -2.5), eqStr(fieldRegion, r)),
				SortField:     fieldChange,
				SortAscending: true,
			},
			Entry{
				Name:      "most_actives_" + r,
				Query:     c.And(eqStr(fieldRegion, r), midCapAndUp()),
				SortField: fieldDayVolume,
			},
		)
	}

	for _, r := range append(append([]string(nil), singleRegions...), "us") {
		out = append(out, Entry{
			Name:      "top_mutual_funds_" + r,
			QuoteType: c.QuoteTypeMutualFund,
			Query:     c.And(anyOf(fieldExchange, fundExchanges[r])),
			SortField: fieldChange,
		})
	}

	return out
}

// sectors are the service's sector values; each gets an ms_<sector> screen
var sectors = []string{
	"Basic Materials",
	"Communication Services",
	"Consumer Cyclical",
	"Consumer Defensive",
	"Energy",
	"Financial Services",
	"Healthcare",
	"Industrials",
	"Real Estate",
	"Technology",
	"Utilities",
}

func sectorEntries() []Entry {
	out := make([]Entry, 0, len(sectors))
	for _, s := range sectors {
		out = append(out, Entry{
			Name: "ms_" + Normalize(s),
			Query: c.And(
				c.Gt(fieldPrice, 5),
				c.Or(eqStr(fieldSector, s)),
				anyOf(fieldExchange, "NMS", "NYQ", "NAS"),
			),
			SortField: fieldMarketCap,
		})
	}
	return out
}

// industries maps an industry screen to its sector and the service's industry label
var industries = []struct {
	name     string
	sector   string
	industry string
}{
	{"advertising_agencies", "Communication Services", "Advertising Agencies"},
	{"aluminum", "Basic Materials", "Aluminum"},
	{"asset_management", "Financial Services", "Asset Management"},
	{"auto_parts", "Consumer Cyclical", "Auto Parts"},
	{"beverages_brewers", "Consumer Defensive", "Beverages—Brewers"},
	{"biotechnology", "Healthcare", "Biotechnology"},
	{"communication_equipment", "Technology", "Communication Equipment"},
	{"confectioners", "Consumer Defensive", "Confectioners"},
	{"conglomerates", "Industrials", "Conglomerates"},
	{"copper", "Basic Materials", "Copper"},
	{"credit_services", "Financial Services", "Credit Services"},
	{"department_stores", "Consumer Cyclical", "Department Stores"},
	{"education_training_services", "Consumer Defensive", "Education & Training Services"},
	{"farm_products", "Consumer Defensive", "Farm Products"},
	{"gold", "Basic Materials", "Gold"},
	{"grocery_stores", "Consumer Defensive", "Grocery Stores"},
	{"information_technology_services", "Technology", "Information Technology Services"},
	{"insurance_brokers", "Financial Services", "Insurance Brokers"},
	{"lodging", "Consumer Cyclical", "Lodging"},
	{"lumber_wood_production", "Basic Materials", "Lumber & Wood Production"},
	{"medical_instruments_supplies", "Healthcare", "Medical Instruments & Supplies"},
	{"metal_fabrication", "Industrials", "Metal Fabrication"},
	{"oil_gas_equipment_services", "Energy", "Oil & Gas Equipment & Services"},
	{"oil_gas_refining_marketing", "Energy", "Oil & Gas Refining & Marketing"},
	{"packaging_containers", "Consumer Cyclical", "Packaging & Containers"},
	{"paper_paper_products", "Basic Materials", "Paper & Paper Products"},
	{"personal_services", "Consumer Cyclical", "Personal Services"},
	{"pollution_treatment_controls", "Industrials", "Pollution & Treatment Controls"},
	{"railroads", "Industrials", "Railroads"},
	{"real_estate_development", "Real Estate", "Real Estate—Development"},
	{"recreational_vehicles", "Consumer Cyclical", "Recreational Vehicles"},
	{"reit_diversified", "Real Estate", "REIT—Diversified"},
	{"reit_healthcare_facilities", "Real Estate", "REIT—Healthcare Facilities"},
	{"reit_hotel_motel", "Real Estate", "REIT—Hotel & Motel"},
	{"reit_industrial", "Real Estate", "REIT—Industrial"},
	{"reit_office", "Real Estate", "REIT—Office"},
	{"reit_residential", "Real Estate", "REIT—Residential"},
	{"reit_retail", "Real Estate", "REIT—Retail"},
	{"rental_leasing_services", "Industrials", "Rental & Leasing Services"},
	{"residential_construction", "Consumer Cyclical", "Residential Construction"},
	{"resorts_casinos", "Consumer Cyclical", "Resorts & Casinos"},
	{"restaurants", "Consumer Cyclical", "Restaurants"},
	{"scientific_technical_instruments", "Technology", "Scientific & Technical Instruments"},
	{"security_protection_services", "Industrials", "Security & Protection Services"},
	{"semiconductor_equipment_materials", "Technology", "Semiconductor Equipment & Materials"},
	{"silver", "Basic Materials", "Silver"},
	{"specialty_chemicals", "Basic Materials", "Specialty Chemicals"},
	{"trucking", "Industrials", "Trucking"},
	{"waste_management", "Industrials", "Waste Management"},
}

func industryEntries() []Entry {
	out := make([]Entry, 0, len(industries))
	for _, ind := range industries {
		out = append(out, Entry{
			Name: ind.name,
			Query: c.And(
				c.Gt(fieldPrice, 5),
				eqStr(fieldSector, ind.sector),
				eqStr(fieldIndustry, ind.industry),
				usMajorExchanges(),
			),
			SortField: fieldDayVolume,
		})
	}
	return out
}
