/* sink_test.go
 * Contains unit tests for the Discord notification sink
 * Authors: Zachary Bower
 */

package bot

import (
	"context"
	"errors"
	"testing"

	"killboard-bot/poller"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscordSink_SendKill(t *testing.T) {
	mockSession := NewMockDiscordSession()
	sink := NewDiscordSink(mockSession, "kb-channel")

	err := sink.Send(context.Background(), poller.Notification{
		EventID:     "101",
		Kill:        true,
		Title:       "KILL: X got a kill!",
		Description: "**X** defeated **Y**",
		ImageURL:    "https://render.example/kill/101.png",
		Fame:        1000,
	})

	require.NoError(t, err)
	require.Len(t, mockSession.SentEmbeds, 1)
	embed := mockSession.GetLastEmbed()
	assert.Equal(t, "kb-channel", embed.ChannelID)
	assert.Equal(t, "KILL: X got a kill!", embed.Embed.Title)
	assert.Equal(t, colorGreen, embed.Embed.Color)
	assert.Equal(t, "https://render.example/kill/101.png", embed.Embed.Image.URL)
	assert.Equal(t, "Fame: 1,000", embed.Embed.Footer.Text)
}

func TestDiscordSink_SendDeath(t *testing.T) {
	mockSession := NewMockDiscordSession()
	sink := NewDiscordSink(mockSession, "kb-channel")

	err := sink.Send(context.Background(), poller.Notification{
		EventID: "102",
		Kill:    false,
		Title:   "DEATH: Y was killed!",
		Fame:    2500,
	})

	require.NoError(t, err)
	assert.Equal(t, colorRed, mockSession.GetLastEmbed().Embed.Color)
}

func TestDiscordSink_SendError(t *testing.T) {
	mockSession := NewMockDiscordSession()
	mockSession.ErrorToReturn = errors.New("channel gone")
	sink := NewDiscordSink(mockSession, "kb-channel")

	err := sink.Send(context.Background(), poller.Notification{EventID: "103"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "103")
}
