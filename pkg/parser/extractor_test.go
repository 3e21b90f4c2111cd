package parser

import (
	"testing"
	"time"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBookingRoundTrip(t *testing.T) {
	e := NewExtractor(logger.NewNopLogger())

	transcript := []entity.Utterance{
		{Role: "user", Message: "My name is Sarah. I want to fly from Bangalore to Jeddah on December 28 and return on January 5 with 2 passengers."},
		{Role: "assistant", Message: "Your booking is confirmed on Air India flight AI 969 departing 13:45 and arriving 17:00 in Economy Class. The total price is ₹29,100. Your booking reference is ABC1234567."},
	}

	booking, reason := e.ExtractBooking(transcript)
	require.NotNil(t, booking)
	assert.Empty(t, reason)

	assert.Equal(t, "Air India", booking.Airline)
	assert.Equal(t, "AI 969", booking.FlightNumber)
	assert.Equal(t, "Bangalore", booking.DepartureLocation)
	assert.Equal(t, "Jeddah", booking.Destination)
	assert.Equal(t, "December 28", booking.DepartureDate)
	assert.Equal(t, "January 5", booking.ReturnDate)
	assert.Equal(t, "13:45", booking.DepartureTime)
	assert.Equal(t, "17:00", booking.ArrivalTime)
	assert.Equal(t, 29100, booking.Price)
	assert.Equal(t, 2, booking.Travelers)
	assert.Equal(t, "Economy", booking.CabinClass)
	assert.Equal(t, "ABC1234567", booking.BookingID)
	assert.Equal(t, entity.BookingConfirmed, booking.Status)
	assert.True(t, booking.IsRoundTrip())
}

func TestExtractBookingDefaults(t *testing.T) {
	e := NewExtractor(logger.NewNopLogger())

	transcript := []entity.Utterance{
		{Role: "assistant", Message: "Your booking from Bangalore to Dubai is confirmed."},
	}

	booking, reason := e.ExtractBooking(transcript)
	require.NotNil(t, booking)
	assert.Empty(t, reason)

	assert.Equal(t, 1, booking.Travelers)
	assert.Equal(t, "Economy", booking.CabinClass)
	assert.Equal(t, "₹", booking.Currency)
	assert.Equal(t, entity.BookingConfirmed, booking.Status)
	assert.False(t, booking.IsRoundTrip())
}

func TestExtractBookingSynthesizedReference(t *testing.T) {
	fixed := time.Date(2025, 12, 1, 10, 30, 0, 0, time.UTC)
	e := NewExtractorWithClock(logger.NewNopLogger(), func() time.Time { return fixed })

	transcript := []entity.Utterance{
		{Role: "assistant", Message: "Your booking from Bangalore to Dubai is confirmed."},
	}

	booking, reason := e.ExtractBooking(transcript)
	require.NotNil(t, booking)
	assert.Empty(t, reason)
	assert.Equal(t, "BK_20251201103000", booking.BookingID)

	// Same clock, same reference
	again, _ := e.ExtractBooking(transcript)
	require.NotNil(t, again)
	assert.Equal(t, booking.BookingID, again.BookingID)
}

func TestExtractBookingEmptyTranscript(t *testing.T) {
	e := NewExtractor(logger.NewNopLogger())

	booking, reason := e.ExtractBooking(nil)
	assert.Nil(t, booking)
	assert.Equal(t, RejectEmptyTranscript, reason)
}

func TestExtractBookingNoConfirmation(t *testing.T) {
	e := NewExtractor(logger.NewNopLogger())

	transcript := []entity.Utterance{
		{Role: "user", Message: "I want to fly from Bangalore to Jeddah next month."},
		{Role: "assistant", Message: "There are several flights available on that route."},
	}

	booking, reason := e.ExtractBooking(transcript)
	assert.Nil(t, booking)
	assert.Equal(t, RejectNoConfirmation, reason)
}

func TestExtractBookingMissingRoute(t *testing.T) {
	e := NewExtractor(logger.NewNopLogger())

	transcript := []entity.Utterance{
		{Role: "assistant", Message: "Your booking is confirmed. Thank you for calling."},
	}

	booking, reason := e.ExtractBooking(transcript)
	assert.Nil(t, booking)
	assert.Equal(t, RejectMissingRoute, reason)
}

func TestExtractBookingInquiryOnly(t *testing.T) {
	e := NewExtractor(logger.NewNopLogger())

	// Booking keyword and a route are present, but the conversation is a
	// short greeting with an inquiry phrase
	transcript := []entity.Utterance{
		{Role: "assistant", Message: "Welcome to the agency, how can I help you with your booking today?"},
		{Role: "user", Message: "I was thinking about a flight from Bangalore to Jeddah."},
	}

	booking, reason := e.ExtractBooking(transcript)
	assert.Nil(t, booking)
	assert.Equal(t, RejectInquiryOnly, reason)
}

func TestExtractBookingLongInquiryPassesGate(t *testing.T) {
	e := NewExtractor(logger.NewNopLogger())
	e.inquiryWordLimit = 5

	// The inquiry phrase no longer disqualifies once the conversation
	// exceeds the word limit
	transcript := []entity.Utterance{
		{Role: "assistant", Message: "Welcome, how can I help? Your booking from Bangalore to Jeddah is confirmed now, thank you very much."},
	}

	booking, reason := e.ExtractBooking(transcript)
	require.NotNil(t, booking)
	assert.Empty(t, reason)
}

func TestExtractBookingSkipsSystemUtterances(t *testing.T) {
	e := NewExtractor(logger.NewNopLogger())

	transcript := []entity.Utterance{
		{Role: "system", Message: "Your booking from Bangalore to Jeddah is confirmed."},
		{Role: "user", Message: "Hello there."},
	}

	booking, reason := e.ExtractBooking(transcript)
	assert.Nil(t, booking)
	assert.Equal(t, RejectNoConfirmation, reason)
}

func TestExtractBookingRouteFromUserUtterance(t *testing.T) {
	e := NewExtractor(logger.NewNopLogger())

	transcript := []entity.Utterance{
		{Role: "user", Message: "I am flying from Riyadh to Dubai."},
		{Role: "assistant", Message: "Great, your booking is confirmed."},
	}

	booking, reason := e.ExtractBooking(transcript)
	require.NotNil(t, booking)
	assert.Empty(t, reason)
	assert.Equal(t, "Riyadh", booking.DepartureLocation)
	assert.Equal(t, "Dubai", booking.Destination)
}

func TestExtractBookingCleansRouteAndTimeCaptures(t *testing.T) {
	e := NewExtractor(logger.NewNopLogger())

	// The case-insensitive route capture can swallow the word after the
	// city, and the optional am/pm suffix leaves a trailing space on times;
	// both get cleaned before they reach the booking
	transcript := []entity.Utterance{
		{Role: "assistant", Message: "Your booking from Bangalore to Dubai this Friday is confirmed, departing 09:15 and arriving 11:30."},
	}

	booking, reason := e.ExtractBooking(transcript)
	require.NotNil(t, booking)
	assert.Empty(t, reason)
	assert.Equal(t, "Bangalore", booking.DepartureLocation)
	assert.Equal(t, "Dubai", booking.Destination)
	assert.Equal(t, "09:15", booking.DepartureTime)
	assert.Equal(t, "11:30", booking.ArrivalTime)
}

func TestExtractBookingPriceVariants(t *testing.T) {
	e := NewExtractor(logger.NewNopLogger())

	cases := []struct {
		text  string
		price int
	}{
		{"The fare is Rs. 28,450 and your booking from Bangalore to Jeddah is confirmed.", 28450},
		{"That costs 17650 rupees. Your booking from Bangalore to Dubai is confirmed.", 17650},
		{"Your booking from Bangalore to Riyadh is confirmed at INR 30,200.", 30200},
	}

	for _, tc := range cases {
		booking, reason := e.ExtractBooking([]entity.Utterance{{Role: "assistant", Message: tc.text}})
		require.NotNil(t, booking, tc.text)
		assert.Empty(t, reason)
		assert.Equal(t, tc.price, booking.Price, tc.text)
	}
}
