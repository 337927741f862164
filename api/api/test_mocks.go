/* test_mocks.go
 * Contains in-memory mock implementations of the store interface and the game client, used by the
 * api, bot and poller test suites
 * Authors: Zachary Bower
 */

package api

import (
	"context"

	"killboard-bot/api/external"
	"killboard-bot/api/store"
)

// MockStore is an in-memory implementation of store.Interface. Error fields, when set, are returned
// by the corresponding method to simulate database failures.
type MockStore struct {
	Players map[string]store.RegisteredPlayer
	Events  map[string]bool
	Items   map[string]store.IndexedItem

	UpsertPlayerErr error
	RemovePlayerErr error
	ListPlayersErr  error
	IsProcessedErr  error
	MarkErr         error
	UpsertItemErr   error
	ListItemsErr    error
}

// Ensure MockStore implements store.Interface
var _ store.Interface = (*MockStore)(nil)

// NewMockStore creates an empty in-memory store
func NewMockStore() *MockStore {
	return &MockStore{
		Players: make(map[string]store.RegisteredPlayer),
		Events:  make(map[string]bool),
		Items:   make(map[string]store.IndexedItem),
	}
}

func (m *MockStore) UpsertRegisteredPlayer(ctx context.Context, player store.RegisteredPlayer) error {
	if m.UpsertPlayerErr != nil {
		return m.UpsertPlayerErr
	}
	m.Players[player.OwnerID] = player
	return nil
}

func (m *MockStore) RemoveRegisteredPlayer(ctx context.Context, ownerID string) (bool, error) {
	if m.RemovePlayerErr != nil {
		return false, m.RemovePlayerErr
	}
	_, ok := m.Players[ownerID]
	delete(m.Players, ownerID)
	return ok, nil
}

func (m *MockStore) ListRegisteredPlayers(ctx context.Context) ([]store.RegisteredPlayer, error) {
	if m.ListPlayersErr != nil {
		return nil, m.ListPlayersErr
	}
	players := make([]store.RegisteredPlayer, 0, len(m.Players))
	for _, p := range m.Players {
		players = append(players, p)
	}
	return players, nil
}

func (m *MockStore) IsEventProcessed(ctx context.Context, eventID string) (bool, error) {
	if m.IsProcessedErr != nil {
		return false, m.IsProcessedErr
	}
	return m.Events[eventID], nil
}

func (m *MockStore) MarkEventProcessed(ctx context.Context, eventID string) error {
	if m.MarkErr != nil {
		return m.MarkErr
	}
	m.Events[eventID] = true
	return nil
}

func (m *MockStore) UpsertIndexedItem(ctx context.Context, item store.IndexedItem) error {
	if m.UpsertItemErr != nil {
		return m.UpsertItemErr
	}
	m.Items[item.ItemID] = item
	return nil
}

func (m *MockStore) ListIndexedItems(ctx context.Context) ([]store.IndexedItem, error) {
	if m.ListItemsErr != nil {
		return nil, m.ListItemsErr
	}
	items := make([]store.IndexedItem, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, item)
	}
	return items, nil
}

func (m *MockStore) Disconnect(ctx context.Context) error {
	return nil
}

// MockGameClient is a canned-response implementation of GameClient. Error fields, when set, are
// returned by the corresponding method to simulate upstream failures.
type MockGameClient struct {
	PlayersResult []external.Player
	ItemsResult   []external.Item
	EventsResult  map[string][]external.Event
	PricesResult  []external.CityPrice
	GuildResult   external.Guild

	SearchPlayersErr error
	SearchItemsErr   error
	PlayerEventsErr  error
	ItemPricesErr    error
	GuildErr         error

	// SearchItemsCalls counts remote item searches so tests can assert the local index was used
	SearchItemsCalls int
}

// Ensure MockGameClient implements GameClient
var _ GameClient = (*MockGameClient)(nil)

func (m *MockGameClient) SearchPlayers(ctx context.Context, query string) ([]external.Player, error) {
	if m.SearchPlayersErr != nil {
		return nil, m.SearchPlayersErr
	}
	return m.PlayersResult, nil
}

func (m *MockGameClient) SearchItems(ctx context.Context, query string) ([]external.Item, error) {
	m.SearchItemsCalls++
	if m.SearchItemsErr != nil {
		return nil, m.SearchItemsErr
	}
	return m.ItemsResult, nil
}

func (m *MockGameClient) PlayerEvents(ctx context.Context, playerID string, limit int) ([]external.Event, error) {
	if m.PlayerEventsErr != nil {
		return nil, m.PlayerEventsErr
	}
	return m.EventsResult[playerID], nil
}

func (m *MockGameClient) ItemPrices(ctx context.Context, itemID string) ([]external.CityPrice, error) {
	if m.ItemPricesErr != nil {
		return nil, m.ItemPricesErr
	}
	return m.PricesResult, nil
}

func (m *MockGameClient) Guild(ctx context.Context, guildID string) (external.Guild, error) {
	if m.GuildErr != nil {
		return external.Guild{}, m.GuildErr
	}
	return m.GuildResult, nil
}
