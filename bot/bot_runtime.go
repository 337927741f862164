//go:build !test

/* bot_runtime.go
 * Contains runtime-only Discord bot methods that use *discordgo.Session directly.
 * Delegates to testable handlers in handlers.go to avoid code duplication.
 * Authors: Zachary Bower
 */

package bot

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"killboard-bot/poller"

	"github.com/bwmarrin/discordgo"
)

// Run starts the Discord bot, starts the killboard poller once the session is open, and blocks
// until the process receives an interrupt
func (b *Bot) Run() error {
	// create a session
	discord, err := discordgo.New("Bot " + b.BotToken)
	if err != nil {
		return err
	}

	// add an event handler
	discord.AddHandler(b.newMessage)

	// open session
	if err := discord.Open(); err != nil {
		return err
	}
	defer discord.Close() // close session, after function termination

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The poller only starts once both the session and the database are up; with either missing
	// the bot still serves chat commands
	if b.PollerEnabled() {
		sink := NewDiscordSink(discord, b.KillboardChannelID)
		p := poller.New(b.APIPtr.Store, b.APIPtr.Store, b.APIPtr.Client, sink)
		p.SetInterval(b.PollInterval)
		p.SetPlayerDelay(b.PlayerDelay)
		go p.Start(ctx)
		log.Println("Killboard tracking is now active")
	} else {
		if !b.APIPtr.StoreAvailable() {
			log.Println("WARNING: Killboard tracking disabled (DB connection failed)")
		}
		if b.KillboardChannelID == "" {
			log.Println("WARNING: Killboard tracking disabled (KILLBOARD_CHANNEL_ID not set)")
		}
	}

	// keep bot running until there is NO os interruption (ctrl + C)
	log.Println("Killboard Bot started")
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	return nil
}

// newMessage delegates to the testable newMessageHandler
// *discordgo.Session implements DiscordSession interface
func (b *Bot) newMessage(discord *discordgo.Session, message *discordgo.MessageCreate) {
	b.newMessageHandler(discord, message, discord.State.User.ID)
}
