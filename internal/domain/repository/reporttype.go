package repository

// ReportType identifies which CFTC COT report family a query targets.
type ReportType string

const (
	ReportLegacy        ReportType = "legacy"
	ReportDisaggregated ReportType = "disaggregated"
	ReportTFF           ReportType = "tff"
)

// IsValidReportType returns true if rt is a supported report type.
func IsValidReportType(rt ReportType) bool {
	switch rt {
	case ReportLegacy, ReportDisaggregated, ReportTFF:
		return true
	default:
		return false
	}
}

// DefaultReportType returns the default report type.
func DefaultReportType() ReportType { return ReportLegacy }

// NormalizeReportType converts a raw string to a valid report type (or default).
func NormalizeReportType(s string) ReportType {
	if s == "" {
		return DefaultReportType()
	}
	rt := ReportType(s)
	if IsValidReportType(rt) {
		return rt
	}
	return DefaultReportType()
}
