package entity

// User intents recognized by the dialogue engine
const (
	IntentSearchFlights  = "search_flights"
	IntentFlightStatus   = "flight_status"
	IntentGeneralInquiry = "general_inquiry"
)

// FlightQuery is a structured flight search request extracted from
// a natural language utterance
type FlightQuery struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date,omitempty"`
	Passengers    int    `json:"passengers"`
	CabinClass    string `json:"cabin_class"`
	Intent        string `json:"intent"`
}

// Baggage describes the allowance attached to a fare
type Baggage struct {
	Checked string `json:"checked" bson:"checked"`
	Cabin   string `json:"cabin" bson:"cabin"`
}

// Flight is a bookable flight offer from the inventory
type Flight struct {
	ID             string  `json:"id"`
	Airline        string  `json:"airline"`
	FlightNumber   string  `json:"flight_number"`
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	OriginCode     string  `json:"origin_code"`
	DestCode       string  `json:"destination_code"`
	DepartureTime  string  `json:"departure_time"`
	ArrivalTime    string  `json:"arrival_time"`
	DepartureDate  string  `json:"departure_date"`
	Duration       string  `json:"duration"`
	Stops          int     `json:"stops"`
	Price          int     `json:"price"`
	Currency       string  `json:"currency"`
	CabinClass     string  `json:"cabin_class"`
	SeatsAvailable int     `json:"seats_available"`
	Baggage        Baggage `json:"baggage"`
}
