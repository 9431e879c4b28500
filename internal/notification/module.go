// Package notification turns domain events into outgoing messages. Inquiry
// e-mail is queued for the scheduler worker when a queue is configured and
// sent inline otherwise.
package notification

import (
	"context"
	"strings"

	"estate_portal_backend/internal/email"
	"estate_portal_backend/internal/events"
	"estate_portal_backend/internal/scheduler"
	"estate_portal_backend/platform/logger"
)

// Config is what the module reads from configuration.
type Config interface {
	GetAppBaseURL() string
}

// Module handles notification events.
type Module struct {
	queue   scheduler.InquiryNotifier
	sender  email.Sender
	baseURL string
	log     *logger.Logger
}

// New creates the notification module. queue may be nil.
func New(queue scheduler.InquiryNotifier, sender email.Sender, cfg Config, log *logger.Logger) *Module {
	if sender == nil {
		sender = email.NoopSender{}
	}
	return &Module{
		queue:   queue,
		sender:  sender,
		baseURL: strings.TrimRight(cfg.GetAppBaseURL(), "/"),
		log:     log,
	}
}

// RegisterHandlers subscribes the module to the event bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.InquirySubmitted{}.EventName(), m)
	bus.Subscribe(events.InvestmentCreated{}.EventName(), m)
	bus.Subscribe(events.InvestmentProgressUpdated{}.EventName(), m)
}

// Handle routes events to the matching handler.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.InquirySubmitted:
		return m.handleInquirySubmitted(ctx, e)
	case events.InvestmentCreated:
		m.log.Info("investment recorded", "eventId", e.ID(), "investmentId", e.InvestmentID, "listingId", e.ListingID, "amount", e.Amount)
	case events.InvestmentProgressUpdated:
		m.log.Info("investment progress updated", "eventId", e.ID(), "investmentId", e.InvestmentID, "stage", e.Stage, "percentage", e.Percentage)
	}
	return nil
}

func (m *Module) handleInquirySubmitted(ctx context.Context, e events.InquirySubmitted) error {
	payload := scheduler.InquiryNotifyPayload{
		InquiryID:     e.InquiryID.String(),
		ListingID:     e.ListingID.String(),
		ListingName:   e.ListingName,
		BuilderEmail:  e.BuilderEmail,
		CustomerName:  e.CustomerName,
		CustomerEmail: e.CustomerEmail,
		CustomerPhone: e.CustomerPhone,
		Message:       e.Message,
	}

	if m.queue != nil {
		if err := m.queue.EnqueueInquiryNotification(ctx, payload); err != nil {
			m.log.Error("failed to enqueue inquiry notification", "eventId", e.ID(), "inquiryId", e.InquiryID, "error", err)
			return err
		}
		return nil
	}

	n := email.InquiryNotification{
		ListingName:   e.ListingName,
		ListingURL:    m.baseURL + "/properties/" + e.ListingID.String(),
		CustomerName:  e.CustomerName,
		CustomerEmail: e.CustomerEmail,
		CustomerPhone: e.CustomerPhone,
		Message:       e.Message,
	}
	if e.BuilderEmail != "" {
		if err := m.sender.SendInquiryNotification(ctx, e.BuilderEmail, n); err != nil {
			m.log.Error("failed to send inquiry notification", "inquiryId", e.InquiryID, "error", err)
			return err
		}
	}
	if e.CustomerEmail != "" {
		if err := m.sender.SendInquiryAcknowledgement(ctx, e.CustomerEmail, n); err != nil {
			m.log.Warn("inquiry acknowledgement failed", "inquiryId", e.InquiryID, "error", err)
		}
	}
	return nil
}
