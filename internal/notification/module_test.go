package notification

import (
	"context"
	"testing"

	"estate_portal_backend/internal/email"
	"estate_portal_backend/internal/events"
	"estate_portal_backend/internal/scheduler"
	platformevents "estate_portal_backend/platform/events"
	"estate_portal_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct{}

func (testConfig) GetAppBaseURL() string { return "https://estate.test/" }

type testQueue struct {
	payloads []scheduler.InquiryNotifyPayload
}

func (q *testQueue) EnqueueInquiryNotification(_ context.Context, p scheduler.InquiryNotifyPayload) error {
	q.payloads = append(q.payloads, p)
	return nil
}

type testSender struct {
	notified []string
	acked    []string
	urls     []string
}

func (s *testSender) SendInquiryNotification(_ context.Context, to string, n email.InquiryNotification) error {
	s.notified = append(s.notified, to)
	s.urls = append(s.urls, n.ListingURL)
	return nil
}

func (s *testSender) SendInquiryAcknowledgement(_ context.Context, to string, _ email.InquiryNotification) error {
	s.acked = append(s.acked, to)
	return nil
}

func submitted() events.InquirySubmitted {
	return events.InquirySubmitted{
		BaseEvent:     events.NewBaseEvent(),
		InquiryID:     uuid.New(),
		ListingID:     uuid.MustParse("00000000-0000-0000-0000-000000000009"),
		ListingName:   "Palm Grove",
		BuilderID:     uuid.New(),
		BuilderEmail:  "sales@palmgrove.test",
		CustomerName:  "Asha Rao",
		CustomerEmail: "asha@example.com",
	}
}

func TestInquiryIsQueuedWhenQueueConfigured(t *testing.T) {
	queue := &testQueue{}
	sender := &testSender{}
	m := New(queue, sender, testConfig{}, logger.Discard())

	bus := platformevents.NewInMemoryBus(logger.Discard())
	m.RegisterHandlers(bus)

	e := submitted()
	require.NoError(t, bus.PublishSync(context.Background(), e))

	require.Len(t, queue.payloads, 1)
	assert.Equal(t, e.InquiryID.String(), queue.payloads[0].InquiryID)
	assert.Equal(t, "sales@palmgrove.test", queue.payloads[0].BuilderEmail)
	assert.Empty(t, sender.notified)
}

func TestInquiryIsSentInlineWithoutQueue(t *testing.T) {
	sender := &testSender{}
	m := New(nil, sender, testConfig{}, logger.Discard())

	require.NoError(t, m.Handle(context.Background(), submitted()))

	assert.Equal(t, []string{"sales@palmgrove.test"}, sender.notified)
	assert.Equal(t, []string{"asha@example.com"}, sender.acked)
	assert.Equal(t, []string{"https://estate.test/properties/00000000-0000-0000-0000-000000000009"}, sender.urls)
}

func TestInvestmentEventsAreAccepted(t *testing.T) {
	m := New(nil, nil, testConfig{}, logger.Discard())
	assert.NoError(t, m.Handle(context.Background(), events.InvestmentProgressUpdated{Stage: "structure", Percentage: 40}))
}
