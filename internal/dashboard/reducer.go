package dashboard

import (
	"strings"

	"CotLens/internal/domain/models"
	"CotLens/internal/domain/repository"
	"CotLens/internal/stats"
)

// ActionType enumerates view state transitions.
type ActionType string

const (
	ActionSetSymbol   ActionType = "set_symbol"
	ActionSetReport   ActionType = "set_report"
	ActionSetCategory ActionType = "set_category"
	ActionSetLookback ActionType = "set_lookback"
	ActionReset       ActionType = "reset"
)

const (
	minLookback = 10
	maxLookback = 2600 // 50 years of weekly reports
)

// Action is one requested change to a dashboard view.
type Action struct {
	Type     ActionType
	Value    string
	Lookback int
}

// Reducer applies actions to view states. It is pure: every transition
// returns a new state and never mutates its input. Category membership per
// report type comes from the data provider so the reducer cannot drift from
// what the API actually serves.
type Reducer struct {
	categories map[repository.ReportType][]string
	symbols    map[repository.ReportType][]string
}

func NewReducer(provider repository.ReportProvider) *Reducer {
	r := &Reducer{
		categories: make(map[repository.ReportType][]string),
		symbols:    make(map[repository.ReportType][]string),
	}
	for _, rt := range []repository.ReportType{repository.ReportLegacy, repository.ReportDisaggregated, repository.ReportTFF} {
		r.categories[rt] = provider.Categories(rt)
		r.symbols[rt] = provider.Symbols(rt)
	}
	return r
}

// DefaultView is the view served before a user saves anything.
func (r *Reducer) DefaultView() models.ViewState {
	rt := repository.DefaultReportType()
	return models.ViewState{
		Symbol:        "CL",
		ReportType:    string(rt),
		Category:      r.categories[rt][0],
		LookbackWeeks: stats.DefaultLookbackWeeks,
	}
}

// Reduce returns the state after applying one action. Invalid values leave
// the relevant field unchanged rather than producing a broken view.
func (r *Reducer) Reduce(s models.ViewState, a Action) models.ViewState {
	switch a.Type {
	case ActionSetSymbol:
		symbol := strings.ToUpper(strings.TrimSpace(a.Value))
		if r.hasSymbol(repository.ReportType(s.ReportType), symbol) {
			s.Symbol = symbol
		}

	case ActionSetReport:
		rt := repository.NormalizeReportType(a.Value)
		if string(rt) == s.ReportType {
			return s
		}
		s.ReportType = string(rt)
		// Categories differ between report families; keep the selection
		// only if it still exists.
		if !contains(r.categories[rt], s.Category) {
			s.Category = r.categories[rt][0]
		}
		if !r.hasSymbol(rt, s.Symbol) {
			s.Symbol = r.symbols[rt][0]
		}

	case ActionSetCategory:
		if contains(r.categories[repository.ReportType(s.ReportType)], a.Value) {
			s.Category = a.Value
		}

	case ActionSetLookback:
		s.LookbackWeeks = clamp(a.Lookback, minLookback, maxLookback)

	case ActionReset:
		return r.DefaultView()
	}
	return s
}

func (r *Reducer) hasSymbol(rt repository.ReportType, symbol string) bool {
	return contains(r.symbols[rt], symbol)
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
