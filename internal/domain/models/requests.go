package models

// Requests for the HTTP endpoints. Defined in domain for consistency and reuse.

type PositioningRequest struct {
	Symbol   string `query:"symbol" json:"symbol" validate:"required"`
	Report   string `query:"report" json:"report" default:"legacy" validate:"oneof=legacy disaggregated tff"`
	Category string `query:"category" json:"category"`
	Lookback int    `query:"lookback" json:"lookback" default:"156" validate:"gte=10,lte=2600"`
}

type HistoryRequest struct {
	Symbol   string `query:"symbol" json:"symbol" validate:"required"`
	Report   string `query:"report" json:"report" default:"legacy" validate:"oneof=legacy disaggregated tff"`
	Category string `query:"category" json:"category"`
	Lookback int    `query:"lookback" json:"lookback" default:"156" validate:"gte=10,lte=2600"`
}

type ZScoreRequest struct {
	Symbol   string `query:"symbol" json:"symbol" validate:"required"`
	Report   string `query:"report" json:"report" default:"legacy" validate:"oneof=legacy disaggregated tff"`
	Category string `query:"category" json:"category"`
	Window   int    `query:"window" json:"window" default:"52" validate:"gte=2,lte=2600"`
}

type VelocityRequest struct {
	Symbol    string `query:"symbol" json:"symbol" validate:"required"`
	Report    string `query:"report" json:"report" default:"legacy" validate:"oneof=legacy disaggregated tff"`
	Category  string `query:"category" json:"category"`
	Smoothing int    `query:"smoothing" json:"smoothing" default:"4" validate:"gte=1,lte=52"`
}

type ChartRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	Report string `query:"report" json:"report" default:"legacy" validate:"oneof=legacy disaggregated tff"`
}

type LatestReportRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
}

type SymbolsRequest struct {
	Report string `query:"report" json:"report" default:"legacy" validate:"oneof=legacy disaggregated tff"`
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Phone    string `json:"phone" validate:"required,e164"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyConfirmRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// ViewActionRequest applies one state transition to the caller's saved view.
type ViewActionRequest struct {
	Action string `json:"action" validate:"required,oneof=set_symbol set_report set_category set_lookback reset"`
	Value  string `json:"value"`
}
