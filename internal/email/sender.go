// Package email renders and delivers notification e-mail.
package email

import (
	"context"
)

// InquiryNotification is what both sides of an inquiry e-mail need.
type InquiryNotification struct {
	ListingName   string
	ListingURL    string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Message       string
}

type Sender interface {
	SendInquiryNotification(ctx context.Context, toEmail string, n InquiryNotification) error
	SendInquiryAcknowledgement(ctx context.Context, toEmail string, n InquiryNotification) error
}

type NoopSender struct{}

func (NoopSender) SendInquiryNotification(context.Context, string, InquiryNotification) error {
	return nil
}

func (NoopSender) SendInquiryAcknowledgement(context.Context, string, InquiryNotification) error {
	return nil
}
