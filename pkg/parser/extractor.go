package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/pkg/logger"
)

// Gate rejection reasons, used as metric labels
const (
	RejectEmptyTranscript = "empty_transcript"
	RejectNoConfirmation  = "no_confirmation"
	RejectMissingRoute    = "missing_route"
	RejectInquiryOnly     = "inquiry_only"
)

// Conversations with an inquiry phrase below this word count are greetings,
// not bookings
const defaultInquiryWordLimit = 100

var (
	airlineRe      = regexp.MustCompile(`(?i)(Air India|IndiGo|SpiceJet|Vistara|Emirates|Qatar Airways|Turkish Airlines|Saudi Airlines|Saudia|Flynas|Etihad|Lufthansa)`)
	flightNumberRe = regexp.MustCompile(`\b([A-Z]{2}[\s-]?\d{2,4})\b`)
	timeRe         = regexp.MustCompile(`\b(\d{1,2}:\d{2}\s*(?:AM|PM|am|pm|a|p)?)\b`)
	priceRe        = regexp.MustCompile(`(?i)(?:₹|Rs\.?|INR|rupees?)\s*(\d+(?:,\d+)?)|(\d+(?:,\d+)?)\s*(?:₹|Rs\.?|INR|rupees?)`)
	passengerRe    = regexp.MustCompile(`(?i)(\d+)\s+(?:passenger|traveler|person|people)`)
	cabinClassRe   = regexp.MustCompile(`(?i)\b(Economy|Business|First)\s+(?:Class|class)?`)
	bookingRefRe   = regexp.MustCompile(`\b([A-Z]{2,3}[-_]?\d{6,10})\b`)
)

// routePatterns are tried in order, most explicit phrasing first. The bare
// "X to Y" form comes after the "from X to Y" variants so it only fires when
// nothing better matched.
var routePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:from|leaving|departing from|traveling from|flying from)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?|[A-Z]{3})\s+(?:to|towards|destination|going to)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?|[A-Z]{3})`),
	regexp.MustCompile(`(?i)([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?|[A-Z]{3})\s+to\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?|[A-Z]{3})`),
	regexp.MustCompile(`(?i)(?:origin|from|departure)[\s:]+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?|[A-Z]{3})[,\s]+(?:destination|to|arrival)[\s:]+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?|[A-Z]{3})`),
	regexp.MustCompile(`(?i)(?:flight|travel|go|trip)\s+from\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?|[A-Z]{3})\s+(?:to|→)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?|[A-Z]{3})`),
}

const monthAlternation = `(?:January|February|March|April|May|June|July|August|September|October|November|December)`

const spelledOrdinal = `(?:first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth|eleventh|twelfth|thirteenth|fourteenth|fifteenth|sixteenth|seventeenth|eighteenth|nineteenth|twentieth|twenty-first|twenty-second|twenty-third|twenty-fourth|twenty-fifth|twenty-sixth|twenty-seventh|twenty-eighth|twenty-ninth|thirtieth|thirty-first)`

// datePatterns are collected in document order: the first hit becomes the
// departure date, the second the return date
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(\d{1,2}(?:st|nd|rd|th)?\s+` + monthAlternation + `(?:\s+\d{4})?)\b`),
	regexp.MustCompile(`(?i)\b(` + monthAlternation + `\s+\d{1,2}(?:st|nd|rd|th)?(?:\s+\d{4})?)\b`),
	regexp.MustCompile(`\b(\d{2}/\d{2}/\d{4})\b`),
	regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`),
	regexp.MustCompile(`(?i)\b(` + monthAlternation + `\s+` + spelledOrdinal + `(?:\s+\d{4})?)\b`),
}

// bookingKeywords signal that a reservation was actually made, not just
// discussed
var bookingKeywords = []string{
	"booked", "reserved", "confirmed", "confirmation", "booking",
	"reservation made", "successfully made", "your booking",
	"booking number", "confirmation number", "booking reference",
	"booking id", "pnr", "ticket",
}

// inquiryPhrases appear in greetings and open-ended offers of help
var inquiryPhrases = []string{
	"planning to travel", "would you like", "can i help",
	"may i help", "how can i help", "welcome to", "are you planning",
}

// Extractor mines confirmed bookings out of call transcripts. Field
// extraction is best effort and independent per field; a validation gate
// decides at the end whether the conversation contained a real booking.
type Extractor struct {
	logger           logger.Logger
	now              func() time.Time
	inquiryWordLimit int
}

// NewExtractor creates a booking extractor
func NewExtractor(logger logger.Logger) *Extractor {
	return &Extractor{
		logger:           logger,
		now:              time.Now,
		inquiryWordLimit: defaultInquiryWordLimit,
	}
}

// NewExtractorWithClock creates a booking extractor with an injectable
// clock, so synthesized booking references are reproducible in tests
func NewExtractorWithClock(logger logger.Logger, now func() time.Time) *Extractor {
	e := NewExtractor(logger)
	e.now = now
	return e
}

// ExtractBooking returns the booking found in the transcript, or nil with
// a rejection reason when the gate decides no booking was made. Malformed
// transcripts never produce an error, only an absent booking.
func (e *Extractor) ExtractBooking(transcript []entity.Utterance) (*entity.BookingRecord, string) {
	if len(transcript) == 0 {
		return nil, RejectEmptyTranscript
	}

	conversationText := joinMessages(transcript, false)
	userText := joinMessages(transcript, true)

	booking := &entity.BookingRecord{
		Currency:   "₹",
		Travelers:  1,
		CabinClass: "Economy",
		Status:     entity.BookingConfirmed,
	}

	if m := airlineRe.FindStringSubmatch(conversationText); m != nil {
		booking.Airline = m[1]
	}

	if m := flightNumberRe.FindStringSubmatch(conversationText); m != nil {
		booking.FlightNumber = m[1]
	}

	// Route: try the combined text first, then user utterances alone
	e.extractRoute(conversationText, booking)
	if booking.DepartureLocation == "" || booking.Destination == "" {
		e.extractRoute(userText, booking)
	}

	dates := collectDates(conversationText)
	if len(dates) >= 1 {
		booking.DepartureDate = dates[0]
	}
	if len(dates) >= 2 {
		booking.ReturnDate = dates[1]
	}

	times := timeRe.FindAllStringSubmatch(conversationText, -1)
	if len(times) >= 1 {
		booking.DepartureTime = strings.TrimSpace(times[0][1])
	}
	if len(times) >= 2 {
		booking.ArrivalTime = strings.TrimSpace(times[1][1])
	}

	if m := priceRe.FindStringSubmatch(conversationText); m != nil {
		priceStr := m[1]
		if priceStr == "" {
			priceStr = m[2]
		}
		if price, err := strconv.Atoi(strings.ReplaceAll(priceStr, ",", "")); err == nil {
			booking.Price = price
		}
	}

	if m := passengerRe.FindStringSubmatch(conversationText); m != nil {
		if travelers, err := strconv.Atoi(m[1]); err == nil {
			booking.Travelers = travelers
		}
	}

	if m := cabinClassRe.FindStringSubmatch(conversationText); m != nil {
		booking.CabinClass = capitalize(m[1])
	}

	if m := bookingRefRe.FindStringSubmatch(conversationText); m != nil {
		booking.BookingID = m[1]
	} else {
		booking.BookingID = "BK_" + e.now().Format("20060102150405")
	}

	// Validation gate: all conditions must hold before the extraction
	// counts as a booking
	lower := strings.ToLower(conversationText)

	if !containsAny(lower, bookingKeywords) {
		e.logger.Info("No booking confirmation found in conversation")
		return nil, RejectNoConfirmation
	}

	if booking.DepartureLocation == "" || booking.Destination == "" {
		e.logger.Info("Missing departure or destination, no booking extracted")
		return nil, RejectMissingRoute
	}

	if containsAny(lower, inquiryPhrases) && wordCount(conversationText) < e.inquiryWordLimit {
		e.logger.Info("Detected inquiry or greeting only, no actual booking made")
		return nil, RejectInquiryOnly
	}

	e.logger.Info("Extracted booking",
		"airline", booking.Airline,
		"from", booking.DepartureLocation,
		"to", booking.Destination,
		"bookingId", booking.BookingID)

	return booking, ""
}

// routeStopWords are connectives the case-insensitive two-word city capture
// can swallow ("to Jeddah on December 28" captures "Jeddah on")
var routeStopWords = map[string]bool{
	"on": true, "in": true, "at": true, "for": true, "the": true,
	"this": true, "next": true, "today": true, "tomorrow": true,
	"is": true, "was": true, "and": true, "with": true, "by": true,
}

// extractRoute fills departure and destination from the first route pattern
// that matches
func (e *Extractor) extractRoute(text string, booking *entity.BookingRecord) {
	for _, pattern := range routePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			booking.DepartureLocation = cleanPlace(m[1])
			booking.Destination = cleanPlace(m[2])
			return
		}
	}
}

// cleanPlace trims a trailing connective off a captured place name
func cleanPlace(s string) string {
	fields := strings.Fields(s)
	if len(fields) > 1 && routeStopWords[strings.ToLower(fields[len(fields)-1])] {
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

// collectDates gathers every date mention in document order across all
// supported formats
func collectDates(text string) []string {
	var dates []string
	for _, pattern := range datePatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			dates = append(dates, m[1])
		}
	}
	return dates
}

// joinMessages concatenates utterance text, skipping system prompts.
// With userOnly set, assistant turns are skipped too.
func joinMessages(transcript []entity.Utterance, userOnly bool) string {
	var parts []string
	for _, u := range transcript {
		role := strings.ToLower(u.Role)
		if role == entity.RoleSystem {
			continue
		}
		if userOnly && role != entity.RoleUser {
			continue
		}
		if u.Message != "" {
			parts = append(parts, u.Message)
		}
	}
	return strings.Join(parts, " ")
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
