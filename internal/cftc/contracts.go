package cftc

import (
	"sort"

	"CotLens/internal/domain/repository"
)

// The CFTC renames contracts over time (a large batch was renamed in
// February 2022). Each symbol therefore maps to every contract name it has
// carried, and queries run against all of them so history is not truncated
// at a rename boundary.
//
// New names can be discovered with:
//
//	SELECT DISTINCT market_and_exchange_names WHERE market_and_exchange_names LIKE '%NATURAL GAS%'

// legacyContracts maps symbols to contract names in the Legacy Futures Only
// dataset.
var legacyContracts = map[string][]string{
	// Energy. All renamed in Feb 2022.
	"CL": {
		"CRUDE OIL, LIGHT SWEET - NEW YORK MERCANTILE EXCHANGE",
		"WTI-PHYSICAL - NEW YORK MERCANTILE EXCHANGE",
	},
	"NG": {
		"NATURAL GAS - NEW YORK MERCANTILE EXCHANGE",
		"NAT GAS NYME - NEW YORK MERCANTILE EXCHANGE",
	},
	"RB": {
		"GASOLINE BLENDSTOCK (RBOB) - NEW YORK MERCANTILE EXCHANGE",
		"GASOLINE RBOB - NEW YORK MERCANTILE EXCHANGE",
	},
	"HO": {
		"NO. 2 HEATING OIL, N.Y. HARBOR - NEW YORK MERCANTILE EXCHANGE",
		"#2 HEATING OIL- NY HARBOR-ULSD - NEW YORK MERCANTILE EXCHANGE",
		"NY HARBOR ULSD - NEW YORK MERCANTILE EXCHANGE",
	},
	"BZ": {
		"BRENT CRUDE OIL LAST DAY - NEW YORK MERCANTILE EXCHANGE",
		"BRENT LAST DAY - NEW YORK MERCANTILE EXCHANGE",
	},

	// Metals.
	"GC": {"GOLD - COMMODITY EXCHANGE INC."},
	"SI": {"SILVER - COMMODITY EXCHANGE INC."},
	"HG": {"COPPER-GRADE #1 - COMMODITY EXCHANGE INC."},
	"PL": {"PLATINUM - NEW YORK MERCANTILE EXCHANGE"},
	"PA": {"PALLADIUM - NEW YORK MERCANTILE EXCHANGE"},

	// Grains.
	"ZC": {"CORN - CHICAGO BOARD OF TRADE"},
	"ZS": {"SOYBEANS - CHICAGO BOARD OF TRADE"},
	"ZW": {"WHEAT-SRW - CHICAGO BOARD OF TRADE"},
	"ZM": {"SOYBEAN MEAL - CHICAGO BOARD OF TRADE"},
	"ZL": {"SOYBEAN OIL - CHICAGO BOARD OF TRADE"},
	"ZO": {"OATS - CHICAGO BOARD OF TRADE"},
	"KE": {"WHEAT-HRW - CHICAGO BOARD OF TRADE"},
	"ZR": {"ROUGH RICE - CHICAGO BOARD OF TRADE"},

	// Softs.
	"CT": {"COTTON NO. 2 - ICE FUTURES U.S."},
	"KC": {"COFFEE C - ICE FUTURES U.S."},
	"SB": {"SUGAR NO. 11 - ICE FUTURES U.S."},
	"CC": {"COCOA - ICE FUTURES U.S."},
	"OJ": {"FRZN CONCENTRATED ORANGE JUICE - ICE FUTURES U.S."},

	// Livestock.
	"LE": {"LIVE CATTLE - CHICAGO MERCANTILE EXCHANGE"},
	"HE": {"LEAN HOGS - CHICAGO MERCANTILE EXCHANGE"},
	"GF": {"FEEDER CATTLE - CHICAGO MERCANTILE EXCHANGE"},

	// Equity indices.
	"ES":  {"E-MINI S&P 500 - CHICAGO MERCANTILE EXCHANGE"},
	"NQ":  {"NASDAQ MINI - CHICAGO MERCANTILE EXCHANGE"},
	"YM":  {"DOW JONES INDUSTRIAL AVG- x $5 - CHICAGO BOARD OF TRADE"},
	"RTY": {"RUSSELL E-MINI - CHICAGO MERCANTILE EXCHANGE"},
	"VX":  {"VIX FUTURES - CBOE FUTURES EXCHANGE"},
	"SP":  {"S&P 500 STOCK INDEX - CHICAGO MERCANTILE EXCHANGE"},
	"NKD": {"NIKKEI STOCK AVERAGE - CHICAGO MERCANTILE EXCHANGE"},

	// Currencies. Several renamed in Feb 2022.
	"6E": {"EURO FX - CHICAGO MERCANTILE EXCHANGE"},
	"6J": {
		"JAPANESE YEN - CHICAGO MERCANTILE EXCHANGE",
		"JPN YEN - CHICAGO MERCANTILE EXCHANGE",
	},
	"6B": {
		"BRITISH POUND STERLING - CHICAGO MERCANTILE EXCHANGE",
		"BRITISH POUND - CHICAGO MERCANTILE EXCHANGE",
	},
	"6A": {
		"AUSTRALIAN DOLLAR - CHICAGO MERCANTILE EXCHANGE",
		"AUD DOLLAR - CHICAGO MERCANTILE EXCHANGE",
	},
	"6C": {
		"CANADIAN DOLLAR - CHICAGO MERCANTILE EXCHANGE",
		"CAD DOLLAR - CHICAGO MERCANTILE EXCHANGE",
	},
	"6S": {
		"SWISS FRANC - CHICAGO MERCANTILE EXCHANGE",
		"CHF FRANC - CHICAGO MERCANTILE EXCHANGE",
	},
	"6N": {
		"NEW ZEALAND DOLLAR - CHICAGO MERCANTILE EXCHANGE",
		"NZ DOLLAR - CHICAGO MERCANTILE EXCHANGE",
	},
	"6M": {
		"MEXICAN PESO - CHICAGO MERCANTILE EXCHANGE",
		"MXN PESO - CHICAGO MERCANTILE EXCHANGE",
	},
	"DX": {
		"U.S. DOLLAR INDEX - ICE FUTURES U.S.",
		"USD INDEX - ICE FUTURES U.S.",
	},
	"BTC": {"BITCOIN - CHICAGO MERCANTILE EXCHANGE"},

	// Treasuries and rates.
	"ZB":  {"U.S. TREASURY BONDS - CHICAGO BOARD OF TRADE"},
	"ZN":  {"10-YEAR U.S. TREASURY NOTES - CHICAGO BOARD OF TRADE"},
	"ZF":  {"5-YEAR U.S. TREASURY NOTES - CHICAGO BOARD OF TRADE"},
	"ZT":  {"2-YEAR U.S. TREASURY NOTES - CHICAGO BOARD OF TRADE"},
	"UB":  {"ULTRA U.S. TREASURY BONDS - CHICAGO BOARD OF TRADE"},
	"TN":  {"ULTRA 10-YEAR U.S. TREASURY NOTES - CHICAGO BOARD OF TRADE"},
	"ED":  {"EURODOLLAR - CHICAGO MERCANTILE EXCHANGE"},
	"SR3": {"3-MONTH SOFR - CHICAGO MERCANTILE EXCHANGE"},
}

// tffContracts maps symbols to contract names in the Traders in Financial
// Futures dataset. TFF covers financials only and uses different names than
// Legacy for several contracts.
var tffContracts = map[string][]string{
	"ES": {
		"E-MINI S&P 500 STOCK INDEX - CHICAGO MERCANTILE EXCHANGE",
		"E-MINI S&P 500 - CHICAGO MERCANTILE EXCHANGE",
	},
	"NQ": {
		"NASDAQ-100 STOCK INDEX (MINI) - CHICAGO MERCANTILE EXCHANGE",
		"NASDAQ MINI - CHICAGO MERCANTILE EXCHANGE",
	},
	"YM": {
		"DJIA x $5 - CHICAGO BOARD OF TRADE",
		"DOW JONES INDUSTRIAL AVG- x $5 - CHICAGO BOARD OF TRADE",
	},
	"RTY": {
		"RUSSELL 2000 MINI - CHICAGO MERCANTILE EXCHANGE",
		"RUSSELL E-MINI - CHICAGO MERCANTILE EXCHANGE",
	},
	"VX":  {"VIX FUTURES - CBOE FUTURES EXCHANGE"},
	"NKD": {"NIKKEI STOCK AVERAGE - CHICAGO MERCANTILE EXCHANGE"},
	"SP":  {"S&P 500 STOCK INDEX - CHICAGO MERCANTILE EXCHANGE"},

	"6E": {"EURO FX - CHICAGO MERCANTILE EXCHANGE"},
	"6J": {
		"JAPANESE YEN - CHICAGO MERCANTILE EXCHANGE",
		"JPN YEN - CHICAGO MERCANTILE EXCHANGE",
	},
	"6B": {
		"BRITISH POUND STERLING - CHICAGO MERCANTILE EXCHANGE",
		"BRITISH POUND - CHICAGO MERCANTILE EXCHANGE",
	},
	"6A": {
		"AUSTRALIAN DOLLAR - CHICAGO MERCANTILE EXCHANGE",
		"AUD DOLLAR - CHICAGO MERCANTILE EXCHANGE",
	},
	"6C": {
		"CANADIAN DOLLAR - CHICAGO MERCANTILE EXCHANGE",
		"CAD DOLLAR - CHICAGO MERCANTILE EXCHANGE",
	},
	"6S": {
		"SWISS FRANC - CHICAGO MERCANTILE EXCHANGE",
		"CHF FRANC - CHICAGO MERCANTILE EXCHANGE",
	},
	"6N": {
		"NEW ZEALAND DOLLAR - CHICAGO MERCANTILE EXCHANGE",
		"NZ DOLLAR - CHICAGO MERCANTILE EXCHANGE",
	},
	"6M": {
		"MEXICAN PESO - CHICAGO MERCANTILE EXCHANGE",
		"MXN PESO - CHICAGO MERCANTILE EXCHANGE",
	},
	"DX": {
		"U.S. DOLLAR INDEX - ICE FUTURES U.S.",
		"USD INDEX - ICE FUTURES U.S.",
	},
	"BTC": {"BITCOIN - CHICAGO MERCANTILE EXCHANGE"},

	"ZB": {
		"UST BOND - CHICAGO BOARD OF TRADE",
		"U.S. TREASURY BONDS - CHICAGO BOARD OF TRADE",
	},
	"ZN": {
		"10 YR UST NOTE - CHICAGO BOARD OF TRADE",
		"10-YEAR U.S. TREASURY NOTES - CHICAGO BOARD OF TRADE",
	},
	"ZF": {
		"5 YR UST NOTE - CHICAGO BOARD OF TRADE",
		"5-YEAR U.S. TREASURY NOTES - CHICAGO BOARD OF TRADE",
	},
	"ZT": {
		"2 YR UST NOTE - CHICAGO BOARD OF TRADE",
		"2-YEAR U.S. TREASURY NOTES - CHICAGO BOARD OF TRADE",
	},
	"UB": {
		"ULTRA UST BOND - CHICAGO BOARD OF TRADE",
		"ULTRA U.S. TREASURY BONDS - CHICAGO BOARD OF TRADE",
	},
	"TN": {
		"ULTRA 10 YR UST NOTE - CHICAGO BOARD OF TRADE",
		"ULTRA 10-YEAR U.S. TREASURY NOTES - CHICAGO BOARD OF TRADE",
	},
	"ED": {"EURODOLLAR - CHICAGO MERCANTILE EXCHANGE"},
	"SR3": {
		"3M SOFR - CHICAGO MERCANTILE EXCHANGE",
		"3-MONTH SOFR - CHICAGO MERCANTILE EXCHANGE",
	},
}

// disaggContracts maps symbols to contract names in the Disaggregated
// dataset. Disaggregated covers physical commodities only.
var disaggContracts = map[string][]string{
	"CL": {
		"CRUDE OIL, LIGHT SWEET - NEW YORK MERCANTILE EXCHANGE",
		"WTI-PHYSICAL - NEW YORK MERCANTILE EXCHANGE",
	},
	"NG": {
		"NATURAL GAS - NEW YORK MERCANTILE EXCHANGE",
		"NAT GAS NYME - NEW YORK MERCANTILE EXCHANGE",
	},
	"RB": {
		"GASOLINE BLENDSTOCK (RBOB) - NEW YORK MERCANTILE EXCHANGE",
		"GASOLINE RBOB - NEW YORK MERCANTILE EXCHANGE",
	},
	"HO": {
		"NO. 2 HEATING OIL, N.Y. HARBOR - NEW YORK MERCANTILE EXCHANGE",
		"#2 HEATING OIL- NY HARBOR-ULSD - NEW YORK MERCANTILE EXCHANGE",
		"NY HARBOR ULSD - NEW YORK MERCANTILE EXCHANGE",
	},
	"BZ": {
		"BRENT CRUDE OIL LAST DAY - NEW YORK MERCANTILE EXCHANGE",
		"BRENT LAST DAY - NEW YORK MERCANTILE EXCHANGE",
	},

	"GC": {"GOLD - COMMODITY EXCHANGE INC."},
	"SI": {"SILVER - COMMODITY EXCHANGE INC."},
	"HG": {
		"COPPER-GRADE #1 - COMMODITY EXCHANGE INC.",
		"COPPER- #1 - COMMODITY EXCHANGE INC.",
	},
	"PL": {"PLATINUM - NEW YORK MERCANTILE EXCHANGE"},
	"PA": {"PALLADIUM - NEW YORK MERCANTILE EXCHANGE"},

	"ZC": {"CORN - CHICAGO BOARD OF TRADE"},
	"ZS": {"SOYBEANS - CHICAGO BOARD OF TRADE"},
	"ZW": {
		"WHEAT-SRW - CHICAGO BOARD OF TRADE",
		"WHEAT - CHICAGO BOARD OF TRADE",
	},
	"ZM": {"SOYBEAN MEAL - CHICAGO BOARD OF TRADE"},
	"ZL": {"SOYBEAN OIL - CHICAGO BOARD OF TRADE"},
	"ZO": {"OATS - CHICAGO BOARD OF TRADE"},
	"KE": {
		"WHEAT-HRW - CHICAGO BOARD OF TRADE",
		"WHEAT-HRW - KANSAS CITY BOARD OF TRADE",
	},
	"ZR": {"ROUGH RICE - CHICAGO BOARD OF TRADE"},

	"CT": {"COTTON NO. 2 - ICE FUTURES U.S."},
	"KC": {"COFFEE C - ICE FUTURES U.S."},
	"SB": {"SUGAR NO. 11 - ICE FUTURES U.S."},
	"CC": {"COCOA - ICE FUTURES U.S."},
	"OJ": {"FRZN CONCENTRATED ORANGE JUICE - ICE FUTURES U.S."},

	"LE": {"LIVE CATTLE - CHICAGO MERCANTILE EXCHANGE"},
	"HE": {"LEAN HOGS - CHICAGO MERCANTILE EXCHANGE"},
	"GF": {"FEEDER CATTLE - CHICAGO MERCANTILE EXCHANGE"},
}

func contractsFor(rt repository.ReportType) map[string][]string {
	switch rt {
	case repository.ReportTFF:
		return tffContracts
	case repository.ReportDisaggregated:
		return disaggContracts
	default:
		return legacyContracts
	}
}

// contractNames returns every historical contract name for a symbol under a
// report type, or nil for unknown symbols.
func contractNames(symbol string, rt repository.ReportType) []string {
	return contractsFor(rt)[symbol]
}

func symbolsFor(rt repository.ReportType) []string {
	m := contractsFor(rt)
	out := make([]string, 0, len(m))
	for s := range m {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
