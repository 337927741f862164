/* handlers_test.go
 * Contains unit tests for bot command handlers using mock Discord session and mock API collaborators
 * Authors: Zachary Bower
 */

package bot

import (
	"errors"
	"testing"

	"killboard-bot/api/api"
	"killboard-bot/api/external"
	"killboard-bot/api/store"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestBot creates a Bot instance backed by in-memory mocks
func createTestBot() (*Bot, *api.MockStore, *api.MockGameClient) {
	mockStore := api.NewMockStore()
	mockClient := &api.MockGameClient{EventsResult: make(map[string][]external.Event)}
	b := &Bot{
		BotToken:           "test_token",
		APIPtr:             &api.API{Store: mockStore, Client: mockClient, GuildID: "g-7"},
		KillboardChannelID: "kb-channel",
	}
	return b, mockStore, mockClient
}

// createMockMessage creates a mock Discord message for testing
func createMockMessage(content, userID, username, channelID string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Content:   content,
			ChannelID: channelID,
			Author: &discordgo.User{
				ID:       userID,
				Username: username,
			},
		},
	}
}

// region help tests

func TestHelpMessage(t *testing.T) {
	bot, _, _ := createTestBot()
	mockSession := NewMockDiscordSession()
	message := createMockMessage("!help", "user123", "TestUser", "channel123")

	bot.helpMessageHandler(mockSession, message)

	require.Len(t, mockSession.SentMessages, 1)
	msg := mockSession.GetLastMessage()
	assert.Equal(t, "channel123", msg.ChannelID)
	assert.Contains(t, msg.Content, "!register")
	assert.Contains(t, msg.Content, "!price")
	assert.Contains(t, msg.Content, "!guildinfo")
}

// endregion

// region register tests

func TestRegister_Success(t *testing.T) {
	bot, mockStore, mockClient := createTestBot()
	mockClient.PlayersResult = []external.Player{{ID: "p-1", Name: "Moonfang"}}
	mockSession := NewMockDiscordSession()
	message := createMockMessage("!register moonfang", "user123", "TestUser", "channel123")

	bot.registerHandler(mockSession, message)

	require.Len(t, mockSession.SentMessages, 1)
	assert.Contains(t, mockSession.GetLastMessage().Content, "Moonfang")
	assert.Contains(t, mockSession.GetLastMessage().Content, "Success")
	assert.Equal(t, "p-1", mockStore.Players["user123"].PlayerID)
}

func TestRegister_QuotedNameWithSpaces(t *testing.T) {
	bot, _, mockClient := createTestBot()
	mockClient.PlayersResult = []external.Player{{ID: "p-1", Name: "Dark Moon"}}
	mockSession := NewMockDiscordSession()
	message := createMockMessage(`!register "Dark Moon"`, "user123", "TestUser", "channel123")

	bot.registerHandler(mockSession, message)

	require.Len(t, mockSession.SentMessages, 1)
	assert.Contains(t, mockSession.GetLastMessage().Content, "Dark Moon")
}

func TestRegister_MissingArgument(t *testing.T) {
	bot, _, _ := createTestBot()
	mockSession := NewMockDiscordSession()
	message := createMockMessage("!register", "user123", "TestUser", "channel123")

	bot.registerHandler(mockSession, message)

	require.Len(t, mockSession.SentMessages, 1)
	assert.Contains(t, mockSession.GetLastMessage().Content, "Usage")
}

func TestRegister_PlayerNotFound(t *testing.T) {
	bot, _, _ := createTestBot()
	mockSession := NewMockDiscordSession()
	message := createMockMessage("!register nobody", "user123", "TestUser", "channel123")

	bot.registerHandler(mockSession, message)

	require.Len(t, mockSession.SentMessages, 1)
	assert.Contains(t, mockSession.GetLastMessage().Content, "Could not find a player")
}

func TestRegister_StoreUnavailable(t *testing.T) {
	bot, _, mockClient := createTestBot()
	bot.APIPtr.Store = nil
	mockClient.PlayersResult = []external.Player{{ID: "p-1", Name: "Moonfang"}}
	mockSession := NewMockDiscordSession()
	message := createMockMessage("!register moonfang", "user123", "TestUser", "channel123")

	bot.registerHandler(mockSession, message)

	require.Len(t, mockSession.SentMessages, 1)
	assert.Contains(t, mockSession.GetLastMessage().Content, "Database connection is not available")
}

// endregion

// region unregister tests

func TestUnregister_Success(t *testing.T) {
	bot, mockStore, _ := createTestBot()
	mockStore.Players["user123"] = store.RegisteredPlayer{OwnerID: "user123", PlayerID: "p-1"}
	mockSession := NewMockDiscordSession()
	message := createMockMessage("!unregister", "user123", "TestUser", "channel123")

	bot.unregisterHandler(mockSession, message)

	require.Len(t, mockSession.SentMessages, 1)
	assert.Contains(t, mockSession.GetLastMessage().Content, "Removed")
	assert.Empty(t, mockStore.Players)
}

func TestUnregister_NotRegistered(t *testing.T) {
	bot, _, _ := createTestBot()
	mockSession := NewMockDiscordSession()
	message := createMockMessage("!unregister", "user123", "TestUser", "channel123")

	bot.unregisterHandler(mockSession, message)

	require.Len(t, mockSession.SentMessages, 1)
	assert.Contains(t, mockSession.GetLastMessage().Content, "not currently registered")
}

// endregion

// region price tests

func TestPrice_Success(t *testing.T) {
	bot, _, mockClient := createTestBot()
	mockClient.ItemsResult = []external.Item{{ItemID: "T4_BAG", Name: "Adept's Bag"}}
	mockClient.PricesResult = []external.CityPrice{
		{City: "Caerleon", Price: 4200},
		{City: "Lymhurst", Price: 1234567},
	}
	mockSession := NewMockDiscordSession()
	message := createMockMessage("!price adept's bag", "user123", "TestUser", "channel123")

	bot.priceHandler(mockSession, message)

	require.Len(t, mockSession.SentEmbeds, 1)
	embed := mockSession.GetLastEmbed()
	assert.Equal(t, "channel123", embed.ChannelID)
	assert.Contains(t, embed.Embed.Title, "Adept's Bag")
	require.Len(t, embed.Embed.Fields, 1)
	assert.Contains(t, embed.Embed.Fields[0].Value, "Caerleon")
	assert.Contains(t, embed.Embed.Fields[0].Value, "1,234,567")
	assert.Equal(t, external.ItemIconURL("T4_BAG"), embed.Embed.Thumbnail.URL)
}

func TestPrice_ItemNotFound(t *testing.T) {
	bot, _, _ := createTestBot()
	mockSession := NewMockDiscordSession()
	message := createMockMessage("!price xyzzy", "user123", "TestUser", "channel123")

	bot.priceHandler(mockSession, message)

	require.Len(t, mockSession.SentMessages, 1)
	assert.Contains(t, mockSession.GetLastMessage().Content, "Could not find an item")
}

func TestPrice_NoPriceData(t *testing.T) {
	bot, _, mockClient := createTestBot()
	mockClient.ItemsResult = []external.Item{{ItemID: "T4_BAG", Name: "Adept's Bag"}}
	mockSession := NewMockDiscordSession()
	message := createMockMessage("!price bag", "user123", "TestUser", "channel123")

	bot.priceHandler(mockSession, message)

	require.Len(t, mockSession.SentMessages, 1)
	assert.Contains(t, mockSession.GetLastMessage().Content, "Could not fetch price data")
}

func TestPrice_MissingArgument(t *testing.T) {
	bot, _, _ := createTestBot()
	mockSession := NewMockDiscordSession()
	message := createMockMessage("!price", "user123", "TestUser", "channel123")

	bot.priceHandler(mockSession, message)

	require.Len(t, mockSession.SentMessages, 1)
	assert.Contains(t, mockSession.GetLastMessage().Content, "Usage")
}

// endregion

// region guildinfo tests

func TestGuildInfo_Success(t *testing.T) {
	bot, _, mockClient := createTestBot()
	mockClient.GuildResult = external.Guild{ID: "g-7", Name: "Labubu Squad", MemberCount: 42, KillFame: 123456}
	mockSession := NewMockDiscordSession()
	message := createMockMessage("!guildinfo", "user123", "TestUser", "channel123")

	bot.guildInfoHandler(mockSession, message)

	require.Len(t, mockSession.SentEmbeds, 1)
	embed := mockSession.GetLastEmbed()
	assert.Contains(t, embed.Embed.Title, "Labubu Squad")
}

func TestGuildInfo_NotConfigured(t *testing.T) {
	bot, _, _ := createTestBot()
	bot.APIPtr.GuildID = ""
	mockSession := NewMockDiscordSession()
	message := createMockMessage("!guildinfo", "user123", "TestUser", "channel123")

	bot.guildInfoHandler(mockSession, message)

	require.Len(t, mockSession.SentMessages, 1)
	assert.Contains(t, mockSession.GetLastMessage().Content, "has not been configured")
}

func TestGuildInfo_UpstreamError(t *testing.T) {
	bot, _, mockClient := createTestBot()
	mockClient.GuildErr = errors.New("upstream down")
	mockSession := NewMockDiscordSession()
	message := createMockMessage("!guildinfo", "user123", "TestUser", "channel123")

	bot.guildInfoHandler(mockSession, message)

	require.Len(t, mockSession.SentMessages, 1)
	assert.Contains(t, mockSession.GetLastMessage().Content, "error occured")
}

// endregion

// region routing tests

func TestNewMessageHandler_IgnoresOwnMessages(t *testing.T) {
	bot, _, _ := createTestBot()
	mockSession := NewMockDiscordSession()
	message := createMockMessage("!help", "bot-id", "KillboardBot", "channel123")

	bot.newMessageHandler(mockSession, message, "bot-id")

	assert.Empty(t, mockSession.SentMessages)
	assert.Empty(t, mockSession.SentEmbeds)
}

func TestNewMessageHandler_RoutesCommands(t *testing.T) {
	bot, _, _ := createTestBot()
	mockSession := NewMockDiscordSession()

	bot.newMessageHandler(mockSession, createMockMessage("!help", "user123", "TestUser", "c1"), "bot-id")
	require.Len(t, mockSession.SentMessages, 1)

	bot.newMessageHandler(mockSession, createMockMessage("!unregister", "user123", "TestUser", "c1"), "bot-id")
	require.Len(t, mockSession.SentMessages, 2)
	assert.Contains(t, mockSession.GetLastMessage().Content, "not currently registered")
}

func TestNewMessageHandler_IgnoresNonCommands(t *testing.T) {
	bot, _, _ := createTestBot()
	mockSession := NewMockDiscordSession()

	bot.newMessageHandler(mockSession, createMockMessage("hello there", "user123", "TestUser", "c1"), "bot-id")

	assert.Empty(t, mockSession.SentMessages)
	assert.Empty(t, mockSession.SentEmbeds)
}

// endregion
