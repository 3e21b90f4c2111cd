package dialogue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/internal/domain/repository"
	"tripvoice-service/pkg/logger"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrUnparseable is returned when the language model output cannot be
// interpreted as a flight query
var ErrUnparseable = errors.New("unparseable dialogue engine output")

const extractionSystemPrompt = `You are a travel assistant that extracts flight search parameters from user queries.

Extract flight details from the user's message:
- Origin and destination (city names or airport codes)
- Departure date and return date (convert relative dates like 'tomorrow', 'next week' to YYYY-MM-DD)
- Number of passengers
- Cabin class preference (economy, premium_economy, business, first)
- User intent (search_flights, flight_status, or general_inquiry)

Current date: %s

Respond with a single JSON object and nothing else, using these keys:
{"origin": string, "destination": string, "departure_date": string, "return_date": string, "passengers": integer, "cabin_class": string, "intent": string}
Omit keys you cannot determine. The "intent" key is always required.

Examples:
- "I want to fly from Mumbai to Dubai tomorrow" -> origin: Mumbai, destination: Dubai, departure_date: tomorrow's date
- "Find business class flights for 2 from NYC to London next Monday" -> origin: NYC, destination: London, passengers: 2, cabin_class: business
- "What's the status of flight AI 123?" -> intent: flight_status`

const replySystemPrompt = `You are a friendly travel assistant.
Provide helpful, concise responses about flights.
Keep responses under 2 sentences unless detailed information is needed.`

const replyFallback = "I can help you search for flights. Please provide your origin, destination, and travel dates."

// OpenAIEngine implements DialogueEngine on the OpenAI chat completions API
type OpenAIEngine struct {
	client openai.Client
	model  string
	logger logger.Logger
	now    func() time.Time
}

// NewOpenAIEngine creates a new dialogue engine
func NewOpenAIEngine(apiKey, model string, logger logger.Logger) repository.DialogueEngine {
	return &OpenAIEngine{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		logger: logger,
		now:    time.Now,
	}
}

// ExtractQuery turns a free-form utterance into a structured flight query
func (e *OpenAIEngine) ExtractQuery(ctx context.Context, message string) (*entity.FlightQuery, error) {
	logMsg := message
	if len(logMsg) > 100 {
		logMsg = logMsg[:100] + "..."
	}
	e.logger.Info("Processing query with dialogue engine", "query", logMsg)

	systemPrompt := fmt.Sprintf(extractionSystemPrompt, e.now().Format("2006-01-02"))

	resp, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(message),
		},
		Model: e.model,
		// Low temperature for consistent extraction
		Temperature: openai.Float(0.1),
	})
	if err != nil {
		return nil, fmt.Errorf("dialogue engine request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrUnparseable
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)

	var query entity.FlightQuery
	if err := json.Unmarshal([]byte(content), &query); err != nil {
		e.logger.Warn("Dialogue engine returned malformed JSON", "content", content)
		return nil, ErrUnparseable
	}

	if query.Intent == "" {
		query.Intent = entity.IntentGeneralInquiry
	}
	if query.Passengers <= 0 {
		query.Passengers = 1
	}
	if query.CabinClass == "" {
		query.CabinClass = "economy"
	}

	e.logger.Info("Extracted flight query",
		"intent", query.Intent,
		"origin", query.Origin,
		"destination", query.Destination,
		"departureDate", query.DepartureDate)

	return &query, nil
}

// GenerateReply produces a short natural language response about the
// given flight options. Errors degrade to a canned reply so the voice
// flow keeps moving.
func (e *OpenAIEngine) GenerateReply(ctx context.Context, message string, flights []entity.Flight, extra string) (string, error) {
	userContent := message
	if len(flights) > 0 {
		sample := flights
		if len(sample) > 3 {
			sample = sample[:3]
		}
		data, err := json.Marshal(sample)
		if err == nil {
			userContent += "\n\nAvailable flights: " + string(data)
		}
	}
	if extra != "" {
		userContent += "\n\nContext: " + extra
	}

	resp, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(replySystemPrompt),
			openai.UserMessage(userContent),
		},
		Model:               e.model,
		Temperature:         openai.Float(0.7),
		MaxCompletionTokens: openai.Int(200),
	})
	if err != nil {
		e.logger.Error("Failed to generate reply", "error", err)
		return replyFallback, nil
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return replyFallback, nil
	}
	return resp.Choices[0].Message.Content, nil
}

// stripCodeFence removes a markdown code fence the model sometimes wraps
// around JSON output
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
