package entity

import (
	"time"
)

// Booking lifecycle status
const (
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// BookingRecord is a flight booking reconstructed from a conversation
type BookingRecord struct {
	ID                string    `json:"id,omitempty" bson:"_id,omitempty"`
	BookingID         string    `json:"booking_id" bson:"bookingId"`
	Airline           string    `json:"airline,omitempty" bson:"airline,omitempty"`
	FlightNumber      string    `json:"flight_number,omitempty" bson:"flightNumber,omitempty"`
	DepartureLocation string    `json:"departure_location" bson:"departureLocation"`
	Destination       string    `json:"destination" bson:"destination"`
	DepartureTime     string    `json:"departure_time,omitempty" bson:"departureTime,omitempty"`
	ArrivalTime       string    `json:"arrival_time,omitempty" bson:"arrivalTime,omitempty"`
	DepartureDate     string    `json:"departure_date,omitempty" bson:"departureDate,omitempty"`
	ReturnDate        string    `json:"return_date,omitempty" bson:"returnDate,omitempty"`
	Duration          string    `json:"duration,omitempty" bson:"duration,omitempty"`
	Price             int       `json:"price,omitempty" bson:"price,omitempty"`
	Currency          string    `json:"currency" bson:"currency"`
	Travelers         int       `json:"num_travelers" bson:"numTravelers"`
	CabinClass        string    `json:"service_details" bson:"cabinClass"`
	CustomerName      string    `json:"customer_name,omitempty" bson:"customerName,omitempty"`
	CustomerEmail     string    `json:"customer_email,omitempty" bson:"customerEmail,omitempty"`
	CustomerPhone     string    `json:"customer_phone,omitempty" bson:"customerPhone,omitempty"`
	CallID            string    `json:"call_id,omitempty" bson:"callId,omitempty"`
	Status            string    `json:"status" bson:"status"`
	CreatedAt         time.Time `json:"created_at,omitempty" bson:"createdAt"`
	UpdatedAt         time.Time `json:"updated_at,omitempty" bson:"updatedAt"`
}

// IsRoundTrip reports whether the booking has a return leg
func (b *BookingRecord) IsRoundTrip() bool {
	return b.ReturnDate != ""
}
