package templates

import (
	"fmt"
	"html"
	"strings"

	"tripvoice-service/internal/domain/entity"
)

// FormatSummary renders a structured summary as the sectioned text shown
// in the widget and in emails
func FormatSummary(summary entity.ConversationSummary) string {
	var b strings.Builder

	b.WriteString("◆ Main Topic/Purpose of the call\n\n")
	b.WriteString(summary.MainTopic)
	b.WriteString("\n\n◆ Key Points Discussed\n\n")
	for _, point := range summary.KeyPoints {
		b.WriteString("• ")
		b.WriteString(point)
		b.WriteString("\n")
	}
	b.WriteString("\n◆ Actions Taken\n\n")
	b.WriteString(summary.ActionsTaken)
	b.WriteString("\n\n◆ Next Steps\n\n")
	b.WriteString(summary.NextSteps)

	return b.String()
}

// SummaryEmailSubject builds the subject line for a call summary email
func SummaryEmailSubject(agencyName string, summary *entity.CallSummary) string {
	if summary.Booking != nil {
		return fmt.Sprintf("%s - Booking Confirmation #%s", agencyName, summary.Booking.BookingID)
	}
	return fmt.Sprintf("%s - Your Call Summary", agencyName)
}

// SummaryEmailText renders the plain text body of a call summary email
func SummaryEmailText(agencyName string, summary *entity.CallSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dear %s,\n\n", summary.UserName)
	fmt.Fprintf(&b, "Thank you for contacting %s. Here is a summary of your call", agencyName)
	if summary.Timestamp != "" {
		fmt.Fprintf(&b, " on %s", summary.Timestamp)
	}
	b.WriteString(".\n\n")

	b.WriteString(summary.Summary)
	b.WriteString("\n")

	if booking := summary.Booking; booking != nil {
		b.WriteString("\n--- Booking Details ---\n")
		fmt.Fprintf(&b, "Confirmation: #%s\n", booking.BookingID)
		if booking.Airline != "" {
			fmt.Fprintf(&b, "Airline: %s", booking.Airline)
			if booking.FlightNumber != "" {
				fmt.Fprintf(&b, " (%s)", booking.FlightNumber)
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Route: %s → %s\n", booking.DepartureLocation, booking.Destination)
		if booking.DepartureDate != "" {
			fmt.Fprintf(&b, "Departure: %s", booking.DepartureDate)
			if booking.DepartureTime != "" {
				fmt.Fprintf(&b, " at %s", booking.DepartureTime)
			}
			b.WriteString("\n")
		}
		if booking.ReturnDate != "" {
			fmt.Fprintf(&b, "Return: %s\n", booking.ReturnDate)
		}
		fmt.Fprintf(&b, "Class: %s\n", booking.CabinClass)
		fmt.Fprintf(&b, "Passengers: %d\n", booking.Travelers)
		if booking.Price > 0 {
			fmt.Fprintf(&b, "Price: %s\n", FormatPrice(booking.Price, booking.Currency))
		}
	}

	if len(summary.Transcript) > 0 {
		b.WriteString("\n--- Conversation Transcript ---\n")
		for _, u := range summary.Transcript {
			if strings.EqualFold(u.Role, entity.RoleSystem) || u.Message == "" {
				continue
			}
			fmt.Fprintf(&b, "%s: %s\n", speakerLabel(u.Role), u.Message)
		}
	}

	fmt.Fprintf(&b, "\nWarm regards,\n%s\n", agencyName)

	return b.String()
}

// SummaryEmailHTML renders the HTML body of a call summary email
func SummaryEmailHTML(agencyName string, summary *entity.CallSummary) string {
	var b strings.Builder

	b.WriteString(`<html><body style="font-family: Arial, sans-serif; color: #333;">`)
	fmt.Fprintf(&b, "<p>Dear %s,</p>", html.EscapeString(summary.UserName))
	fmt.Fprintf(&b, "<p>Thank you for contacting %s. Here is a summary of your call", html.EscapeString(agencyName))
	if summary.Timestamp != "" {
		fmt.Fprintf(&b, " on %s", html.EscapeString(summary.Timestamp))
	}
	b.WriteString(".</p>")

	s := summary.Structured
	b.WriteString("<h3>◆ Main Topic/Purpose of the call</h3>")
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(s.MainTopic))
	b.WriteString("<h3>◆ Key Points Discussed</h3><ul>")
	for _, point := range s.KeyPoints {
		fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(point))
	}
	b.WriteString("</ul>")
	b.WriteString("<h3>◆ Actions Taken</h3>")
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(s.ActionsTaken))
	b.WriteString("<h3>◆ Next Steps</h3>")
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(s.NextSteps))

	if booking := summary.Booking; booking != nil {
		b.WriteString(`<h3>Booking Details</h3><table style="border-collapse: collapse;">`)
		writeRow(&b, "Confirmation", "#"+booking.BookingID)
		if booking.Airline != "" {
			airline := booking.Airline
			if booking.FlightNumber != "" {
				airline += " (" + booking.FlightNumber + ")"
			}
			writeRow(&b, "Airline", airline)
		}
		writeRow(&b, "Route", fmt.Sprintf("%s → %s", booking.DepartureLocation, booking.Destination))
		if booking.DepartureDate != "" {
			writeRow(&b, "Departure", booking.DepartureDate)
		}
		if booking.ReturnDate != "" {
			writeRow(&b, "Return", booking.ReturnDate)
		}
		writeRow(&b, "Class", booking.CabinClass)
		writeRow(&b, "Passengers", fmt.Sprintf("%d", booking.Travelers))
		if booking.Price > 0 {
			writeRow(&b, "Price", FormatPrice(booking.Price, booking.Currency))
		}
		b.WriteString("</table>")
	}

	if len(summary.Transcript) > 0 {
		b.WriteString("<h3>Conversation Transcript</h3>")
		for _, u := range summary.Transcript {
			if strings.EqualFold(u.Role, entity.RoleSystem) || u.Message == "" {
				continue
			}
			fmt.Fprintf(&b, "<p><strong>%s:</strong> %s</p>",
				speakerLabel(u.Role), html.EscapeString(u.Message))
		}
	}

	fmt.Fprintf(&b, "<p>Warm regards,<br>%s</p>", html.EscapeString(agencyName))
	b.WriteString("</body></html>")

	return b.String()
}

func writeRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, `<tr><td style="padding: 4px 12px 4px 0;"><strong>%s</strong></td><td>%s</td></tr>`,
		html.EscapeString(label), html.EscapeString(value))
}

func speakerLabel(role string) string {
	if strings.EqualFold(role, entity.RoleUser) {
		return "Customer"
	}
	return "Assistant"
}
