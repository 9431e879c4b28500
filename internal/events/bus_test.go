package events

import (
	"context"
	"testing"

	"estate_portal_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInMemoryBusDeliversDomainEvents(t *testing.T) {
	var bus Bus = NewInMemoryBus(logger.Discard())

	var got InquirySubmitted
	bus.Subscribe(InquirySubmitted{}.EventName(), HandlerFunc(func(_ context.Context, e Event) error {
		got = e.(InquirySubmitted)
		return nil
	}))

	sent := InquirySubmitted{BaseEvent: NewBaseEvent(), InquiryID: uuid.New(), ListingName: "Palm Grove"}
	require.NoError(t, bus.PublishSync(context.Background(), sent))
	assert.Equal(t, sent.InquiryID, got.InquiryID)
	assert.Equal(t, "Palm Grove", got.ListingName)
}
