/* sink.go
 * Contains the Discord notification sink the poller writes killboard events to. Kept separate from
 * the command handlers so the poller depends only on the session interface and the target channel
 * Authors: Zachary Bower
 */

package bot

import (
	"context"
	"fmt"

	"killboard-bot/poller"

	"github.com/bwmarrin/discordgo"
)

// DiscordSink delivers poller notifications to the killboard channel as embeds
type DiscordSink struct {
	session   DiscordSession
	channelID string
}

// Ensure DiscordSink implements poller.Sink
var _ poller.Sink = (*DiscordSink)(nil)

// NewDiscordSink creates a sink for the given session and killboard channel
func NewDiscordSink(session DiscordSession, channelID string) *DiscordSink {
	return &DiscordSink{session: session, channelID: channelID}
}

// Send posts one killboard notification. The embed colour tracks the outcome: green for kills of a
// tracked player, red for their deaths
func (s *DiscordSink) Send(ctx context.Context, n poller.Notification) error {
	color := colorRed
	if n.Kill {
		color = colorGreen
	}

	embed := &discordgo.MessageEmbed{
		Title:       n.Title,
		Description: n.Description,
		Color:       color,
		Image: &discordgo.MessageEmbedImage{
			URL: n.ImageURL,
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Fame: %s", formatSilver(n.Fame)),
		},
	}

	if _, err := s.session.ChannelMessageSendEmbed(s.channelID, embed); err != nil {
		return fmt.Errorf("failed to send killboard embed for event %s: %w", n.EventID, err)
	}
	return nil
}
