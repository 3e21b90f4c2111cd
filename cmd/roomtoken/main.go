package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"tripvoice-service/internal/usecase"
	"tripvoice-service/pkg/logger"

	"github.com/joho/godotenv"
)

// Mints a room access token from the command line, handy for testing the
// voice widget without the HTTP API.
func main() {
	godotenv.Load()

	room := flag.String("room", "", "room name to join")
	identity := flag.String("identity", "cli-user", "participant identity")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if *room == "" {
		fmt.Fprintln(os.Stderr, "usage: roomtoken -room <name> [-identity <id>] [-ttl <duration>]")
		os.Exit(2)
	}

	apiKey := os.Getenv("ROOM_API_KEY")
	apiSecret := os.Getenv("ROOM_API_SECRET")
	if apiKey == "" || apiSecret == "" {
		fmt.Fprintln(os.Stderr, "ROOM_API_KEY and ROOM_API_SECRET must be set")
		os.Exit(1)
	}

	svc := usecase.NewRoomTokenService(apiKey, apiSecret, *ttl, logger.NewNopLogger())
	token, err := svc.MintToken(*room, *identity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to mint token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
