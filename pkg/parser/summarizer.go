package parser

import (
	"fmt"
	"regexp"
	"strings"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/pkg/logger"
)

// Conversations shorter than this are treated as greetings
const defaultShortWordLimit = 50

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:my name is|I'm|this is|call me)\s+(\w+)`),
	regexp.MustCompile(`(?i)name\s+is\s+(\w+)`),
}

// nameStoplist filters common words and the assistant persona out of name
// matches
var nameStoplist = map[string]bool{
	"help": true, "me": true, "booking": true, "flight": true,
	"travel": true, "alex": true, "assistant": true, "atar": true, "attar": true,
}

var itineraryWords = []string{
	"itinerary", "trip plan", "day plan", "day trip", "multi-day",
	"tour package", "visit", "sightseeing",
}

var saudiWords = []string{"saudi", "riyadh", "jeddah", "mecca", "medina"}

var saudiDestinationWords = []string{
	"riyadh", "jeddah", "mecca", "medina", "dammam",
	"edge of the world", "diriyah", "abha",
}

// Summarizer builds deterministic structured summaries from call
// transcripts. No language model is involved, the same transcript always
// yields the same summary.
type Summarizer struct {
	agencyName     string
	shortWordLimit int
	logger         logger.Logger
}

// NewSummarizer creates a summarizer that names the given agency in its
// generated text
func NewSummarizer(agencyName string, logger logger.Logger) *Summarizer {
	return &Summarizer{
		agencyName:     agencyName,
		shortWordLimit: defaultShortWordLimit,
		logger:         logger,
	}
}

// Summarize produces the structured summary of a call. A nil booking
// means the call ended without a reservation and is summarized as an
// inquiry instead.
func (s *Summarizer) Summarize(transcript []entity.Utterance, booking *entity.BookingRecord) entity.ConversationSummary {
	if len(transcript) == 0 {
		if booking != nil {
			return s.summaryFromBooking(booking)
		}
		return entity.ConversationSummary{
			MainTopic: "No conversation data available. Please complete a call to generate a summary.",
		}
	}

	userText := joinMessages(transcript, true)
	conversationText := joinMessages(transcript, false)

	customerName := s.extractCustomerName(userText)

	summary := entity.ConversationSummary{
		MainTopic:    s.mainTopic(conversationText, booking, customerName),
		KeyPoints:    s.keyPoints(conversationText, booking),
		ActionsTaken: s.actionsTaken(booking, customerName),
		NextSteps: fmt.Sprintf("%s will receive a detailed email shortly with payment instructions and all booking details. No further assistance was requested at this time.",
			customerName),
	}

	s.logger.Info("Generated structured summary", "customer", customerName, "hasBooking", booking != nil)
	return summary
}

// extractCustomerName looks for a name in user utterances only, so the
// assistant introducing itself never becomes the customer
func (s *Summarizer) extractCustomerName(userText string) string {
	for _, pattern := range namePatterns {
		m := pattern.FindStringSubmatch(userText)
		if m == nil {
			continue
		}
		candidate := capitalize(m[1])
		if !nameStoplist[strings.ToLower(candidate)] {
			s.logger.Info("Detected customer name", "name", candidate)
			return candidate
		}
		break
	}
	return "Traveler"
}

func (s *Summarizer) mainTopic(conversationText string, booking *entity.BookingRecord, customerName string) string {
	if booking != nil {
		tripType := "one-way"
		if booking.IsRoundTrip() {
			tripType = "round-trip"
		}
		if booking.DepartureLocation != "" && booking.Destination != "" {
			return fmt.Sprintf("%s contacted %s and successfully booked a %s flight from %s to %s.",
				customerName, s.agencyName, tripType, booking.DepartureLocation, booking.Destination)
		}
		return fmt.Sprintf("%s contacted %s and completed a flight booking.", customerName, s.agencyName)
	}

	lower := strings.ToLower(conversationText)

	// Trip planning outranks a plain flight inquiry
	if containsAny(lower, itineraryWords) {
		if containsAny(lower, saudiWords) {
			return fmt.Sprintf("%s contacted %s to discuss multi-day trip planning and itinerary options for Saudi Arabia.",
				customerName, s.agencyName)
		}
		return fmt.Sprintf("%s contacted %s to discuss trip planning and itinerary options.", customerName, s.agencyName)
	}
	if containsAny(lower, []string{"flight", "fly", "airplane", "airline"}) {
		return fmt.Sprintf("%s contacted %s to inquire about flight bookings and travel options.", customerName, s.agencyName)
	}
	if containsAny(lower, []string{"hotel", "accommodation", "stay", "room"}) {
		return fmt.Sprintf("%s contacted %s to discuss accommodation options.", customerName, s.agencyName)
	}
	if wordCount(conversationText) < s.shortWordLimit {
		return fmt.Sprintf("Initial contact established with %s. %s was greeted and introduced to available travel services.",
			s.agencyName, customerName)
	}
	return fmt.Sprintf("%s contacted %s for travel assistance and information.", customerName, s.agencyName)
}

func (s *Summarizer) keyPoints(conversationText string, booking *entity.BookingRecord) []string {
	var points []string

	if booking != nil {
		if booking.DepartureDate != "" {
			points = append(points, fmt.Sprintf("Selected departure date: %s", booking.DepartureDate))
		}
		if booking.ReturnDate != "" {
			points = append(points, fmt.Sprintf("Selected return date: %s", booking.ReturnDate))
		}
		points = append(points, fmt.Sprintf("Selected %s class", booking.CabinClass))
		if booking.Travelers > 1 {
			points = append(points, fmt.Sprintf("Booking for %d passengers", booking.Travelers))
		}
		points = append(points,
			"Provided travel preferences and passenger details",
			"Confirmed flight details and pricing")
	} else {
		lower := strings.ToLower(conversationText)

		if containsAny(lower, itineraryWords) {
			points = append(points, "Discussed multi-day trip planning and itinerary options")
			if containsAny(lower, saudiDestinationWords) {
				points = append(points, "Explored specific Saudi Arabia destinations and attractions")
			}
			if containsAny(lower, []string{"activity", "activities", "things to do", "what to see"}) {
				points = append(points, "Discussed activities and experiences during the trip")
			}
			if containsAny(lower, []string{"day", "days", "night", "nights"}) {
				points = append(points, "Reviewed trip duration and daily schedule options")
			}
		} else {
			if containsAny(lower, []string{"flight", "fly", "airplane"}) {
				points = append(points, "Inquired about flight options and availability")
			}
			if containsAny(lower, []string{"destination", "going to", "travel to"}) {
				points = append(points, "Discussed potential travel destinations")
			}
			if containsAny(lower, []string{"date", "when", "day", "time"}) {
				points = append(points, "Asked about travel dates and timing")
			}
			if containsAny(lower, []string{"price", "cost", "fare", "budget"}) {
				points = append(points, "Inquired about pricing and costs")
			}
			if containsAny(lower, []string{"economy", "business", "first class"}) {
				points = append(points, "Discussed cabin class options")
			}
			if containsAny(lower, []string{"hotel", "accommodation", "stay"}) {
				points = append(points, "Asked about accommodation options")
			}
		}

		// A short or empty exchange is reported as a greeting
		if len(points) == 0 || wordCount(conversationText) < s.shortWordLimit {
			points = []string{
				"Initial greeting and introduction to services",
				"Established contact with travel assistant",
				"Expressed interest in travel planning",
			}
		}
	}

	if len(points) > 5 {
		points = points[:5]
	}
	return points
}

func (s *Summarizer) actionsTaken(booking *entity.BookingRecord, customerName string) string {
	if booking == nil {
		return "The conversation was an initial inquiry. Travel information and assistance were provided. No booking was completed during this call."
	}

	from := booking.DepartureLocation
	if from == "" {
		from = "departure city"
	}
	to := booking.Destination
	if to == "" {
		to = "destination"
	}

	action := fmt.Sprintf("A reservation was successfully made for %s's flight from %s to %s in %s Class",
		customerName, from, to, booking.CabinClass)
	if booking.Travelers > 1 {
		action += fmt.Sprintf(" for %d passengers", booking.Travelers)
	}
	action += fmt.Sprintf(". The confirmation number #%s was provided.", booking.BookingID)
	return action
}

// summaryFromBooking covers the degenerate case of a booking arriving
// without any transcript
func (s *Summarizer) summaryFromBooking(booking *entity.BookingRecord) entity.ConversationSummary {
	tripType := "one-way"
	if booking.IsRoundTrip() {
		tripType = "round-trip"
	}

	departureDate := booking.DepartureDate
	if departureDate == "" {
		departureDate = "TBD"
	}
	bookingID := booking.BookingID
	if bookingID == "" {
		bookingID = "PENDING"
	}

	return entity.ConversationSummary{
		MainTopic: fmt.Sprintf("A %s flight booking from %s to %s.", tripType, booking.DepartureLocation, booking.Destination),
		KeyPoints: []string{
			fmt.Sprintf("Selected departure date: %s", departureDate),
			fmt.Sprintf("Selected %s class", booking.CabinClass),
			"Confirmed flight details and pricing",
		},
		ActionsTaken: fmt.Sprintf("A flight reservation was successfully created with confirmation number #%s.", bookingID),
		NextSteps:    "Detailed booking confirmation and payment instructions will be sent via email shortly.",
	}
}
