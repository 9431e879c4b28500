package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type inquiryEmailData struct {
	baseEmailData
	InquiryNotification
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func renderInquiryReceived(n InquiryNotification) (string, string, error) {
	content, err := renderEmailTemplate("inquiry_received.html", inquiryEmailData{
		baseEmailData: baseEmailData{
			Title:    "New inquiry",
			Heading:  "You have a new inquiry",
			CTALabel: "View listing",
			CTAURL:   n.ListingURL,
		},
		InquiryNotification: n,
	})
	return fmt.Sprintf(subjectInquiryReceivedFmt, n.ListingName), content, err
}

func renderInquiryAck(n InquiryNotification) (string, string, error) {
	content, err := renderEmailTemplate("inquiry_ack.html", inquiryEmailData{
		baseEmailData: baseEmailData{
			Title:    "Inquiry received",
			Heading:  "Thanks for your inquiry",
			CTALabel: "View listing",
			CTAURL:   n.ListingURL,
		},
		InquiryNotification: n,
	})
	return fmt.Sprintf(subjectInquiryAckFmt, n.ListingName), content, err
}
