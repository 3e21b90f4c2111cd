package parser

import (
	"strings"
	"testing"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func newTestSummarizer() *Summarizer {
	return NewSummarizer("Attar Travel Agency", logger.NewNopLogger())
}

func TestSummarizeRoundTripBooking(t *testing.T) {
	s := newTestSummarizer()

	transcript := []entity.Utterance{
		{Role: "user", Message: "My name is Sarah and I need a flight."},
		{Role: "assistant", Message: "Your booking from Bangalore to Jeddah is confirmed."},
	}
	booking := &entity.BookingRecord{
		BookingID:         "ABC1234567",
		DepartureLocation: "Bangalore",
		Destination:       "Jeddah",
		DepartureDate:     "2025-12-28",
		ReturnDate:        "2026-01-05",
		CabinClass:        "Economy",
		Travelers:         2,
	}

	summary := s.Summarize(transcript, booking)

	assert.Equal(t, "Sarah contacted Attar Travel Agency and successfully booked a round-trip flight from Bangalore to Jeddah.", summary.MainTopic)
	assert.Contains(t, summary.KeyPoints, "Selected departure date: 2025-12-28")
	assert.Contains(t, summary.KeyPoints, "Selected return date: 2026-01-05")
	assert.LessOrEqual(t, len(summary.KeyPoints), 5)
	assert.Contains(t, summary.ActionsTaken, "Sarah's flight from Bangalore to Jeddah in Economy Class for 2 passengers")
	assert.Contains(t, summary.ActionsTaken, "#ABC1234567")
	assert.Contains(t, summary.NextSteps, "Sarah will receive a detailed email")
}

func TestSummarizeOneWayBooking(t *testing.T) {
	s := newTestSummarizer()

	transcript := []entity.Utterance{
		{Role: "assistant", Message: "Your booking from Bangalore to Dubai is confirmed."},
	}
	booking := &entity.BookingRecord{
		BookingID:         "BK_20251201103000",
		DepartureLocation: "Bangalore",
		Destination:       "Dubai",
		CabinClass:        "Economy",
		Travelers:         1,
	}

	summary := s.Summarize(transcript, booking)

	assert.Contains(t, summary.MainTopic, "one-way flight from Bangalore to Dubai")
	assert.NotContains(t, summary.ActionsTaken, "passengers")
}

func TestSummarizeItineraryOutranksFlight(t *testing.T) {
	s := newTestSummarizer()

	// Both itinerary and flight words appear; itinerary wins
	transcript := []entity.Utterance{
		{Role: "user", Message: strings.Repeat("word ", 60) + "I would like an itinerary for my trip to Riyadh, including a flight and sightseeing."},
	}

	summary := s.Summarize(transcript, nil)

	assert.Contains(t, summary.MainTopic, "multi-day trip planning and itinerary options for Saudi Arabia")
	assert.Contains(t, summary.KeyPoints, "Discussed multi-day trip planning and itinerary options")
}

func TestSummarizeShortGreeting(t *testing.T) {
	s := newTestSummarizer()

	transcript := []entity.Utterance{
		{Role: "user", Message: "Hello."},
		{Role: "assistant", Message: "Hi, good morning."},
	}

	summary := s.Summarize(transcript, nil)

	assert.Contains(t, summary.MainTopic, "Initial contact established with Attar Travel Agency")
	assert.Equal(t, []string{
		"Initial greeting and introduction to services",
		"Established contact with travel assistant",
		"Expressed interest in travel planning",
	}, summary.KeyPoints)
	assert.Contains(t, summary.ActionsTaken, "No booking was completed")
}

func TestSummarizeNameStoplist(t *testing.T) {
	s := newTestSummarizer()

	// "I'm booking" must not yield "Booking" as the customer name, and the
	// cascade stops after the first matching pattern
	transcript := []entity.Utterance{
		{Role: "user", Message: "I'm booking a flight to Jeddah today please."},
	}

	summary := s.Summarize(transcript, nil)
	assert.Contains(t, summary.MainTopic, "Traveler contacted")
}

func TestSummarizeNameFromUserOnly(t *testing.T) {
	s := newTestSummarizer()

	// The assistant introduces itself; only user utterances count for names
	transcript := []entity.Utterance{
		{Role: "assistant", Message: "Hello, my name is Robo and I can search flights for you."},
		{Role: "user", Message: "My name is Priya, I need a flight please, looking at travel dates and prices for next month."},
	}

	summary := s.Summarize(transcript, nil)
	assert.Contains(t, summary.MainTopic, "Priya contacted")
}

func TestSummarizeEmptyTranscriptWithBooking(t *testing.T) {
	s := newTestSummarizer()

	booking := &entity.BookingRecord{
		BookingID:         "XYZ9876543",
		DepartureLocation: "Bangalore",
		Destination:       "Riyadh",
		DepartureDate:     "2025-12-28",
		CabinClass:        "Economy",
	}

	summary := s.Summarize(nil, booking)

	assert.Equal(t, "A one-way flight booking from Bangalore to Riyadh.", summary.MainTopic)
	assert.Contains(t, summary.ActionsTaken, "#XYZ9876543")
}

func TestSummarizeEmptyTranscriptNoBooking(t *testing.T) {
	s := newTestSummarizer()

	summary := s.Summarize(nil, nil)

	assert.Contains(t, summary.MainTopic, "No conversation data available")
	assert.Empty(t, summary.KeyPoints)
}
