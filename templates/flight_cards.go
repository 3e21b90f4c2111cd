package templates

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tripvoice-service/internal/domain/entity"
)

// pricePrinter renders prices with thousands separators ("28,450")
var pricePrinter = message.NewPrinter(language.English)

// currencySymbol maps ISO currency codes to display symbols. Unknown
// codes are shown as-is with a trailing space, never converted.
func currencySymbol(code string) string {
	switch code {
	case "INR", "₹", "":
		return "₹"
	case "USD", "$":
		return "$"
	case "SAR":
		return "SAR "
	case "AED":
		return "AED "
	case "EUR":
		return "€"
	default:
		return code + " "
	}
}

// FormatPrice renders an amount with its currency symbol and separators
func FormatPrice(amount int, currency string) string {
	return currencySymbol(currency) + pricePrinter.Sprintf("%d", amount)
}

// FlightCards converts flight offers to widget display cards. The input
// order is preserved and at most limit cards are produced.
func FlightCards(flights []entity.Flight, limit int, bookingURLBase string) []entity.DisplayCard {
	if limit > 0 && len(flights) > limit {
		flights = flights[:limit]
	}

	cards := make([]entity.DisplayCard, 0, len(flights))
	for _, flight := range flights {
		flightID := flight.ID
		if flightID == "" {
			flightID = "default"
		}

		cards = append(cards, entity.DisplayCard{
			Title:    fmt.Sprintf("%s → %s", flight.Origin, flight.Destination),
			Subtitle: fmt.Sprintf("%s | %s", flight.Airline, flight.FlightNumber),
			Footer: fmt.Sprintf("⏰ %s - %s | 💰 %s | ⏱️ %s",
				flight.DepartureTime, flight.ArrivalTime,
				FormatPrice(flight.Price, flight.Currency), flight.Duration),
			Buttons: []entity.CardButton{
				{
					Text: "Book Now ✈️",
					URL:  fmt.Sprintf("%s/flight/%s", bookingURLBase, flightID),
				},
			},
		})
	}

	return cards
}
