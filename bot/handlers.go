/* handlers.go
 * Contains testable handler methods that accept the DiscordSession interface. The runtime wiring
 * that binds these to a live *discordgo.Session lives in bot_runtime.go
 * Authors: Zachary Bower
 */

package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"killboard-bot/api/api"
	"killboard-bot/api/shared"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"
)

const (
	colorGreen = 0x57F287
	colorRed   = 0xED4245
	colorBlue  = 0x3498DB
	colorGold  = 0xF1C40F
)

// commandArgs splits a command message into its arguments, honouring double quoted phrases so item
// and player names containing spaces survive as one argument
func commandArgs(content string) []string {
	spaceSplitter, _ := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	fields, _ := spaceSplitter.Split(content)
	if len(fields) <= 1 {
		return nil
	}
	args := fields[1:]
	for i := range args {
		args[i] = strings.ReplaceAll(args[i], "\"", "")
		args[i] = strings.ReplaceAll(args[i], "“", "")
		args[i] = strings.ReplaceAll(args[i], "”", "")
	}
	return args
}

// helpMessageHandler handles the !help command
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Killboard Bot\n")
	res.WriteString("`!register <player name>`: Track a player's kills and deaths on the killboard channel. Registering again replaces your tracked player\n")
	res.WriteString("`!unregister`: Stop tracking your player\n")
	res.WriteString("`!price <item name>`: Look up current market prices for an item. Names with spaces can be quoted, e.g. \"Adept's Bag\"\n")
	res.WriteString("`!guildinfo`: Show information about the guild\n")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// registerHandler handles the !register command: resolves the player name against the game API and
// stores the binding for the message author
func (b *Bot) registerHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := commandArgs(message.Content)
	if len(args) == 0 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `!register <player name>`")
		return
	}
	playerName := strings.Join(args, " ")
	user := shared.User{UserID: message.Author.ID, Username: message.Author.Username}

	binding, err := b.APIPtr.RegisterPlayer(context.Background(), user, playerName)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrStoreUnavailable):
			session.ChannelMessageSend(message.ChannelID, "Database connection is not available.")
		case errors.Is(err, api.ErrPlayerNotFound):
			session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Could not find a player named `%s`.", playerName))
		default:
			log.Println(err)
			session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("An error occured registering %s", playerName))
		}
		return
	}
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("**Success!** `%s` is now being tracked.", binding.PlayerName))
}

// unregisterHandler handles the !unregister command
func (b *Bot) unregisterHandler(session DiscordSession, message *discordgo.MessageCreate) {
	user := shared.User{UserID: message.Author.ID, Username: message.Author.Username}

	removed, err := b.APIPtr.UnregisterPlayer(context.Background(), user)
	if err != nil {
		if errors.Is(err, api.ErrStoreUnavailable) {
			session.ChannelMessageSend(message.ChannelID, "Database connection is not available.")
		} else {
			log.Println(err)
			session.ChannelMessageSend(message.ChannelID, "An error occured removing your registration")
		}
		return
	}
	if removed {
		session.ChannelMessageSend(message.ChannelID, "**Removed!** You will no longer be tracked.")
	} else {
		session.ChannelMessageSend(message.ChannelID, "You are not currently registered.")
	}
}

// priceHandler handles the !price command: resolves the item and replies with an embed listing the
// per-city market prices
func (b *Bot) priceHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := commandArgs(message.Content)
	if len(args) == 0 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `!price <item name>`")
		return
	}
	itemName := strings.Join(args, " ")

	report, err := b.APIPtr.PriceCheck(context.Background(), itemName)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrItemNotFound):
			session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Could not find an item named `%s`.", itemName))
		case errors.Is(err, api.ErrNoPriceData):
			session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Could not fetch price data for `%s`.", itemName))
		default:
			log.Println(err)
			session.ChannelMessageSend(message.ChannelID, "An error occured checking prices")
		}
		return
	}

	var prices strings.Builder
	for _, p := range report.Prices {
		prices.WriteString(fmt.Sprintf("**%s:** %s silver\n", p.City, formatSilver(p.Price)))
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Price Check: %s", report.ItemName),
		Color: colorBlue,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: report.IconURL,
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Market Prices", Value: prices.String(), Inline: false},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Prices are updated periodically.",
		},
	}
	session.ChannelMessageSendEmbed(message.ChannelID, embed)
}

// guildInfoHandler handles the !guildinfo command
func (b *Bot) guildInfoHandler(session DiscordSession, message *discordgo.MessageCreate) {
	guild, err := b.APIPtr.GuildInfo(context.Background())
	if err != nil {
		if errors.Is(err, api.ErrGuildNotConfigured) {
			session.ChannelMessageSend(message.ChannelID, "The guild ID has not been configured by the bot owner.")
		} else {
			log.Println(err)
			session.ChannelMessageSend(message.ChannelID, "An error occured getting the guild info")
		}
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Guild Info: %s", guild.Name),
		Color: colorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Guild Name", Value: guild.Name, Inline: true},
			{Name: "Guild ID", Value: guild.ID, Inline: true},
			{Name: "Members", Value: fmt.Sprintf("%d", guild.MemberCount), Inline: true},
			{Name: "Kill Fame", Value: formatSilver(guild.KillFame), Inline: true},
		},
	}
	session.ChannelMessageSendEmbed(message.ChannelID, embed)
}

// newMessageHandler routes messages to the appropriate handlers.
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages
	if message.Author.ID == botUserID {
		return
	}

	// Route to appropriate handler
	switch {
	case startsWith(message.Content, "!help"):
		b.helpMessageHandler(session, message)

	case startsWith(message.Content, "!register"):
		b.registerHandler(session, message)

	case startsWith(message.Content, "!unregister"):
		b.unregisterHandler(session, message)

	case startsWith(message.Content, "!price"):
		b.priceHandler(session, message)

	case startsWith(message.Content, "!guildinfo"):
		b.guildInfoHandler(session, message)
	}
}
