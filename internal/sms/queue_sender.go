package sms

import (
	"context"
	"fmt"

	"CotLens/pkg/logger"
	"CotLens/pkg/queue"
)

// MessageType identifies verification SMS messages on the queue.
const MessageType = "sms.verification"

type verificationPayload struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// QueuedSender enqueues verification codes instead of delivering them
// inline. A queue worker picks them up and retries on gateway failures.
type QueuedSender struct {
	q queue.QueueService
}

func NewQueuedSender(q queue.QueueService) *QueuedSender {
	return &QueuedSender{q: q}
}

func (s *QueuedSender) SendCode(ctx context.Context, phone, code string) error {
	if err := s.q.PublishMessage(ctx, MessageType, verificationPayload{Phone: phone, Code: code}); err != nil {
		return fmt.Errorf("enqueue sms: %w", err)
	}
	return nil
}

// Sender is the delivery half of the queue path.
type Sender interface {
	SendCode(ctx context.Context, phone, code string) error
}

// DeliveryJob drains queued verification messages through a gateway sender.
type DeliveryJob struct {
	sender Sender
	log    *logger.Logger
}

func NewDeliveryJob(sender Sender, log *logger.Logger) *DeliveryJob {
	return &DeliveryJob{sender: sender, log: log}
}

func (j *DeliveryJob) Name() string { return "sms_delivery" }

func (j *DeliveryJob) Type() string { return MessageType }

func (j *DeliveryJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[verificationPayload](payload)
	if err != nil {
		return fmt.Errorf("sms payload: %w", err)
	}
	if err := j.sender.SendCode(ctx, p.Phone, p.Code); err != nil {
		j.log.Warn("sms delivery failed", logger.String("to", p.Phone), logger.Error(err))
		return err
	}
	return nil
}
