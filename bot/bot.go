/* bot.go
 * Contains the Bot struct and helpers shared by the command handlers. Requires a discord bot token
 * and an APIPtr, both of which are passed in from main.go. The killboard channel id may be empty, in
 * which case the poller stays disabled and only chat commands work
 * Authors: Zachary Bower
 */

package bot

import (
	"fmt"
	"strings"
	"time"

	api "killboard-bot/api/api"
)

type Bot struct {
	BotToken           string
	APIPtr             *api.API
	KillboardChannelID string
	PollInterval       time.Duration
	PlayerDelay        time.Duration
}

// NewBot validates the required fields and returns a Bot ready to Run
// Preconditions: Receives the bot token, an API pointer and the killboard channel id (may be empty)
// Postconditions: Returns pointer to the Bot, or an error if the token is missing
func NewBot(botToken string, apiPtr *api.API, killboardChannelID string) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("apiPtr is required but none was provided")
	}

	return &Bot{
		BotToken:           botToken,
		APIPtr:             apiPtr,
		KillboardChannelID: killboardChannelID,
	}, nil
}

// PollerEnabled reports whether the killboard poller should run: it needs both a target channel and
// a reachable database behind the API
func (b *Bot) PollerEnabled() bool {
	return b.KillboardChannelID != "" && b.APIPtr.StoreAvailable()
}

// Helper function to check if a string starts with a given substring
// Preconditions: Recieves an input string and a substring
// Postconditions: Returns true if the substring is at the start of the string, else returns false
func startsWith(inputString string, substring string) bool {
	return strings.HasPrefix(inputString, substring)
}

// formatSilver renders a silver amount with thousands separators, e.g. 1234567 -> "1,234,567"
func formatSilver(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
