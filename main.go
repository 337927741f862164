/* main.go
 * The "main" method for running the killboard bot. For details about the bot see `readme.md`
 * Usage: go run . [-interval=<seconds>] [-playerDelay=<seconds>]
 * Authors: Zachary Bower
 */

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	api "killboard-bot/api/api"
	bot "killboard-bot/bot"
	web "killboard-bot/web"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine in production where the platform injects real env vars
	_ = godotenv.Load()

	// Flags
	intervalPtr := flag.Int("interval", 60, "Killboard poll interval in seconds")
	playerDelayPtr := flag.Int("playerDelay", 2, "Delay between per-player event fetches in seconds")
	flag.Parse()

	discordToken := os.Getenv("DISCORD_BOT_TOKEN")
	mongoURI := os.Getenv("MONGO_CONNECTION_STRING")
	channelID := os.Getenv("KILLBOARD_CHANNEL_ID")
	guildID := os.Getenv("ALBION_GUILD_ID")
	apiBaseURL := os.Getenv("GAME_API_BASE_URL")
	healthAddr := envOrDefault("HEALTH_ADDR", ":8080")

	if discordToken == "" {
		log.Fatal("FATAL: DISCORD_BOT_TOKEN environment variable is missing")
	}

	// A broken or missing database degrades the bot (no tracking, no registration) but must not
	// prevent the chat commands that only need the game API
	var apiPtr *api.API
	if mongoURI == "" {
		log.Println("WARNING: MONGO_CONNECTION_STRING not set. Database features will be disabled.")
		apiPtr = api.NewAPIWithoutStore(apiBaseURL, guildID)
	} else {
		var err error
		apiPtr, err = api.NewAPI("killboard_bot", mongoURI, apiBaseURL, guildID)
		if err != nil {
			log.Printf("WARNING: error connecting to MongoDB: %v. Database features will be disabled.", err)
			apiPtr = api.NewAPIWithoutStore(apiBaseURL, guildID)
		} else {
			log.Println("Successfully connected to MongoDB.")
			defer func() {
				if err := apiPtr.Store.Disconnect(context.TODO()); err != nil {
					log.Printf("error disconnecting from MongoDB: %v", err)
				}
			}()
		}
	}

	// The health endpoint is an independent task; its failure is logged, never fatal to the bot
	go func() {
		if err := web.Start(web.Config{Addr: healthAddr}); err != nil {
			log.Printf("health server stopped: %v", err)
		}
	}()

	// Init bot and run
	b, err := bot.NewBot(discordToken, apiPtr, channelID)
	if err != nil {
		log.Fatalf("failed to initialize bot: %v", err)
	}
	b.PollInterval = time.Duration(*intervalPtr) * time.Second
	b.PlayerDelay = time.Duration(*playerDelayPtr) * time.Second

	if err := b.Run(); err != nil {
		log.Fatalf("bot exited with error: %v", err)
	}
}
