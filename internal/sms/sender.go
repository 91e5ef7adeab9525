package sms

import (
	"context"
	"fmt"

	httpx "CotLens/pkg/http"
	"CotLens/pkg/logger"
)

// GatewaySender delivers verification codes through an HTTP SMS gateway.
type GatewaySender struct {
	http   *httpx.Client
	log    *logger.Logger
	url    string
	apiKey string
	from   string
}

type message struct {
	To   string `json:"to"`
	From string `json:"from"`
	Body string `json:"body"`
}

func NewGatewaySender(hc *httpx.Client, log *logger.Logger, url, apiKey, from string) *GatewaySender {
	return &GatewaySender{http: hc, log: log, url: url, apiKey: apiKey, from: from}
}

// SendCode posts a verification message to the gateway.
func (s *GatewaySender) SendCode(ctx context.Context, phone, code string) error {
	err := s.http.SendAndParse(ctx, &httpx.RequestOptions{
		Method: httpx.MethodPost,
		URL:    s.url,
		Headers: map[string]string{
			"Authorization": "Bearer " + s.apiKey,
			"Content-Type":  "application/json",
		},
		Body: message{
			To:   phone,
			From: s.from,
			Body: fmt.Sprintf("Your verification code is %s", code),
		},
	}, nil)
	if err != nil {
		return fmt.Errorf("sms gateway: %w", err)
	}
	s.log.Debug("sms sent", logger.String("to", phone))
	return nil
}

// NoopSender logs codes instead of sending them. Used in development when
// no gateway is configured.
type NoopSender struct {
	log *logger.Logger
}

func NewNoopSender(log *logger.Logger) *NoopSender {
	return &NoopSender{log: log}
}

func (s *NoopSender) SendCode(_ context.Context, phone, code string) error {
	s.log.Info("sms delivery disabled, code logged",
		logger.String("to", phone),
		logger.String("code", code))
	return nil
}
