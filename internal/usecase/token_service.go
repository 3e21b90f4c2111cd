package usecase

import (
	"fmt"
	"time"

	"tripvoice-service/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

// RoomTokenService mints access tokens for the voice room infrastructure
type RoomTokenService struct {
	apiKey    string
	apiSecret string
	ttl       time.Duration
	logger    logger.Logger
	now       func() time.Time
}

// NewRoomTokenService creates a new token service
func NewRoomTokenService(apiKey, apiSecret string, ttl time.Duration, logger logger.Logger) *RoomTokenService {
	return &RoomTokenService{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
	}
}

// videoGrant is the room permission block embedded in the token
type videoGrant struct {
	Room         string `json:"room"`
	RoomJoin     bool   `json:"roomJoin"`
	CanPublish   bool   `json:"canPublish"`
	CanSubscribe bool   `json:"canSubscribe"`
}

// MintToken issues an HS256 room access token for the given identity
func (s *RoomTokenService) MintToken(roomName, identity string) (string, error) {
	if s.apiKey == "" || s.apiSecret == "" {
		return "", fmt.Errorf("room API credentials not configured")
	}
	if roomName == "" || identity == "" {
		return "", fmt.Errorf("room name and identity are required")
	}

	now := s.now()
	claims := jwt.MapClaims{
		"iss": s.apiKey,
		"sub": identity,
		"nbf": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
		"video": videoGrant{
			Room:         roomName,
			RoomJoin:     true,
			CanPublish:   true,
			CanSubscribe: true,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.apiSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign room token: %w", err)
	}

	s.logger.Info("Room token minted",
		"room", roomName,
		"identity", identity,
		"ttl", s.ttl)
	return signed, nil
}
