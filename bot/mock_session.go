/* mock_session.go
 * Contains mock implementation of DiscordSession for testing
 * Authors: Zachary Bower
 */

package bot

import "github.com/bwmarrin/discordgo"

// MockDiscordSession implements DiscordSession for testing purposes
type MockDiscordSession struct {
	// SentMessages stores all plain messages sent during tests
	SentMessages []MockMessage
	// SentEmbeds stores all embeds sent during tests
	SentEmbeds []MockEmbed
	// ErrorToReturn allows tests to simulate send errors
	ErrorToReturn error
}

// MockMessage represents a plain message sent to a channel
type MockMessage struct {
	ChannelID string
	Content   string
}

// MockEmbed represents an embed sent to a channel
type MockEmbed struct {
	ChannelID string
	Embed     *discordgo.MessageEmbed
}

// NewMockDiscordSession creates an empty mock session
func NewMockDiscordSession() *MockDiscordSession {
	return &MockDiscordSession{}
}

// ChannelMessageSend implements DiscordSession.ChannelMessageSend
func (m *MockDiscordSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	m.SentMessages = append(m.SentMessages, MockMessage{ChannelID: channelID, Content: content})
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

// ChannelMessageSendEmbed implements DiscordSession.ChannelMessageSendEmbed
func (m *MockDiscordSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	m.SentEmbeds = append(m.SentEmbeds, MockEmbed{ChannelID: channelID, Embed: embed})
	return &discordgo.Message{ChannelID: channelID}, nil
}

// GetLastMessage returns the most recent plain message, or nil if none were sent
func (m *MockDiscordSession) GetLastMessage() *MockMessage {
	if len(m.SentMessages) == 0 {
		return nil
	}
	return &m.SentMessages[len(m.SentMessages)-1]
}

// GetLastEmbed returns the most recent embed, or nil if none were sent
func (m *MockDiscordSession) GetLastEmbed() *MockEmbed {
	if len(m.SentEmbeds) == 0 {
		return nil
	}
	return &m.SentEmbeds[len(m.SentEmbeds)-1]
}
