package models

import "time"

// User is a registered dashboard account.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Phone         string    `json:"phone"`
	PhoneVerified bool      `json:"phone_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// VerificationCode is a short-lived one-time code sent to a user's phone.
type VerificationCode struct {
	UserID    string
	Code      string
	ExpiresAt time.Time
}

// ViewState is a user's saved dashboard configuration.
type ViewState struct {
	Symbol        string `json:"symbol"`
	ReportType    string `json:"report_type"`
	Category      string `json:"category"`
	LookbackWeeks int    `json:"lookback_weeks"`
}
