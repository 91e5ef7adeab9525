package cftc

import "CotLens/internal/domain/repository"

// categoryField names the long/short columns of one trader category in a
// Socrata dataset. Change columns are only present in the legacy dataset and
// only consumed by latest-report processing.
type categoryField struct {
	Label       string
	Long        string
	Short       string
	ChangeLong  string
	ChangeShort string
}

var legacyFields = []categoryField{
	{
		Label:       "non_commercial",
		Long:        "noncomm_positions_long_all",
		Short:       "noncomm_positions_short_all",
		ChangeLong:  "change_in_noncomm_long_all",
		ChangeShort: "change_in_noncomm_short_all",
	},
	{
		Label:       "commercial",
		Long:        "comm_positions_long_all",
		Short:       "comm_positions_short_all",
		ChangeLong:  "change_in_comm_long_all",
		ChangeShort: "change_in_comm_short_all",
	},
	{
		Label:       "non_reportable",
		Long:        "nonrept_positions_long_all",
		Short:       "nonrept_positions_short_all",
		ChangeLong:  "change_in_nonrept_long_all",
		ChangeShort: "change_in_nonrept_short_all",
	},
}

var disaggregatedFields = []categoryField{
	{
		Label: "producer_merchant",
		Long:  "prod_merc_positions_long",
		Short: "prod_merc_positions_short",
	},
	{
		Label: "swap_dealer",
		Long:  "swap_positions_long_all",
		// The dataset really does have a double underscore here.
		Short: "swap__positions_short_all",
	},
	{
		Label: "managed_money",
		Long:  "m_money_positions_long_all",
		Short: "m_money_positions_short_all",
	},
	{
		Label: "other_reportable",
		Long:  "other_rept_positions_long",
		Short: "other_rept_positions_short",
	},
}

var tffFields = []categoryField{
	{
		Label: "dealer",
		Long:  "dealer_positions_long_all",
		Short: "dealer_positions_short_all",
	},
	{
		Label: "asset_manager",
		Long:  "asset_mgr_positions_long",
		Short: "asset_mgr_positions_short",
	},
	{
		Label: "leveraged_funds",
		Long:  "lev_money_positions_long",
		Short: "lev_money_positions_short",
	},
	{
		Label: "other_reportable",
		Long:  "other_rept_positions_long",
		Short: "other_rept_positions_short",
	},
}

func fieldsFor(rt repository.ReportType) []categoryField {
	switch rt {
	case repository.ReportTFF:
		return tffFields
	case repository.ReportDisaggregated:
		return disaggregatedFields
	default:
		return legacyFields
	}
}

func categoryLabels(rt repository.ReportType) []string {
	fields := fieldsFor(rt)
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Label
	}
	return out
}
