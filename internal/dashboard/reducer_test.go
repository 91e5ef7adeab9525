package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"CotLens/internal/domain/models"
	"CotLens/internal/domain/repository"
)

type staticProvider struct{}

func (staticProvider) HistoricalSeries(context.Context, string, repository.ReportType) ([]models.WeeklyRow, error) {
	return nil, nil
}

func (staticProvider) LatestReport(context.Context, string) (*models.LatestReport, error) {
	return nil, nil
}

func (staticProvider) Symbols(rt repository.ReportType) []string {
	switch rt {
	case repository.ReportTFF:
		return []string{"6E", "ES"}
	case repository.ReportDisaggregated:
		return []string{"CL", "GC"}
	default:
		return []string{"6E", "CL", "ES", "GC"}
	}
}

func (staticProvider) Categories(rt repository.ReportType) []string {
	switch rt {
	case repository.ReportTFF:
		return []string{"dealer", "asset_manager", "leveraged_funds", "other_reportable"}
	case repository.ReportDisaggregated:
		return []string{"producer_merchant", "swap_dealer", "managed_money", "other_reportable"}
	default:
		return []string{"non_commercial", "commercial", "non_reportable"}
	}
}

func newTestReducer() *Reducer {
	return NewReducer(staticProvider{})
}

func TestDefaultView(t *testing.T) {
	v := newTestReducer().DefaultView()

	assert.Equal(t, "CL", v.Symbol)
	assert.Equal(t, "legacy", v.ReportType)
	assert.Equal(t, "non_commercial", v.Category)
	assert.Equal(t, 156, v.LookbackWeeks)
}

func TestReduceSetSymbol(t *testing.T) {
	r := newTestReducer()
	v := r.DefaultView()

	v = r.Reduce(v, Action{Type: ActionSetSymbol, Value: " gc "})
	assert.Equal(t, "GC", v.Symbol)

	// Unknown symbols leave the view unchanged.
	v = r.Reduce(v, Action{Type: ActionSetSymbol, Value: "NOPE"})
	assert.Equal(t, "GC", v.Symbol)
}

func TestReduceSetReportRemapsCategoryAndSymbol(t *testing.T) {
	r := newTestReducer()
	v := r.DefaultView()

	v = r.Reduce(v, Action{Type: ActionSetReport, Value: "tff"})
	assert.Equal(t, "tff", v.ReportType)
	assert.Equal(t, "dealer", v.Category, "legacy category does not exist under tff")
	assert.Equal(t, "6E", v.Symbol, "CL is not a financial future")

	// other_reportable exists under both disaggregated and tff.
	v = r.Reduce(v, Action{Type: ActionSetCategory, Value: "other_reportable"})
	v = r.Reduce(v, Action{Type: ActionSetReport, Value: "disaggregated"})
	assert.Equal(t, "other_reportable", v.Category)
}

func TestReduceSetReportInvalidFallsBackToLegacy(t *testing.T) {
	r := newTestReducer()
	v := r.DefaultView()
	v = r.Reduce(v, Action{Type: ActionSetReport, Value: "tff"})

	v = r.Reduce(v, Action{Type: ActionSetReport, Value: "bogus"})
	assert.Equal(t, "legacy", v.ReportType)
	assert.Equal(t, "non_commercial", v.Category)
}

func TestReduceSetCategory(t *testing.T) {
	r := newTestReducer()
	v := r.DefaultView()

	v = r.Reduce(v, Action{Type: ActionSetCategory, Value: "commercial"})
	assert.Equal(t, "commercial", v.Category)

	// Categories from another report family are rejected.
	v = r.Reduce(v, Action{Type: ActionSetCategory, Value: "managed_money"})
	assert.Equal(t, "commercial", v.Category)
}

func TestReduceSetLookbackClamps(t *testing.T) {
	r := newTestReducer()
	v := r.DefaultView()

	v = r.Reduce(v, Action{Type: ActionSetLookback, Lookback: 52})
	assert.Equal(t, 52, v.LookbackWeeks)

	v = r.Reduce(v, Action{Type: ActionSetLookback, Lookback: 1})
	assert.Equal(t, 10, v.LookbackWeeks)

	v = r.Reduce(v, Action{Type: ActionSetLookback, Lookback: 100000})
	assert.Equal(t, 2600, v.LookbackWeeks)
}

func TestReduceReset(t *testing.T) {
	r := newTestReducer()
	v := r.DefaultView()
	v = r.Reduce(v, Action{Type: ActionSetSymbol, Value: "GC"})
	v = r.Reduce(v, Action{Type: ActionSetLookback, Lookback: 52})

	v = r.Reduce(v, Action{Type: ActionReset})
	assert.Equal(t, r.DefaultView(), v)
}

func TestReduceIsPure(t *testing.T) {
	r := newTestReducer()
	before := r.DefaultView()
	snapshot := before

	_ = r.Reduce(before, Action{Type: ActionSetSymbol, Value: "GC"})
	assert.Equal(t, snapshot, before)
}
