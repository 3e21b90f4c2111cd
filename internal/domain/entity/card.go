package entity

// CardButton is an action attached to a display card
type CardButton struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// DisplayCard is the widget-renderable representation of a flight offer
type DisplayCard struct {
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle"`
	Footer   string       `json:"footer"`
	Buttons  []CardButton `json:"buttons"`
}

// CardResponse is the payload shape the chat widget expects
type CardResponse struct {
	Type  string        `json:"type"`
	Cards []DisplayCard `json:"cards"`
}
