/* api.go
 * This file contains the public methods for interacting with this package. For consistent results,
 * functions should only be called from this file, not the store or external sub packages directly.
 * The bot command handlers and the poller both sit on top of this layer
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"killboard-bot/api/external"
	"killboard-bot/api/shared"
	"killboard-bot/api/store"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

var (
	// ErrStoreUnavailable is returned by operations that need the database when the bot is running
	// in degraded mode (database unreachable at startup)
	ErrStoreUnavailable = errors.New("database connection is not available")

	// ErrPlayerNotFound is returned when a player search yields no results
	ErrPlayerNotFound = errors.New("player not found")

	// ErrItemNotFound is returned when an item cannot be resolved locally or remotely
	ErrItemNotFound = errors.New("item not found")

	// ErrNoPriceData is returned when a resolved item has no market price data
	ErrNoPriceData = errors.New("no price data for item")

	// ErrGuildNotConfigured is returned by GuildInfo when no guild id was configured
	ErrGuildNotConfigured = errors.New("guild id has not been configured")
)

// GameClient defines the game API methods used by this layer.
// This allows for mocking in tests.
type GameClient interface {
	SearchPlayers(ctx context.Context, query string) ([]external.Player, error)
	SearchItems(ctx context.Context, query string) ([]external.Item, error)
	PlayerEvents(ctx context.Context, playerID string, limit int) ([]external.Event, error)
	ItemPrices(ctx context.Context, itemID string) ([]external.CityPrice, error)
	Guild(ctx context.Context, guildID string) (external.Guild, error)
}

// Ensure *external.Client implements GameClient
var _ GameClient = (*external.Client)(nil)

// API provides methods for interacting with the killboard bot data layer
type API struct {
	Store   store.Interface
	Client  GameClient
	GuildID string
}

// NewAPI creates a new API instance with the provided configuration
// Preconditions: Receives dbName, mongoURI, the game API base URL (empty selects the public API) and
// the configured guild id (may be empty)
// Postconditions: Returns pointer to the API, or an error if the database is unreachable
func NewAPI(dbName string, mongoURI string, apiBaseURL string, guildID string) (*API, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName is required")
	}

	s, err := store.NewStore(dbName, mongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return &API{
		Store:   s,
		Client:  external.NewClient(apiBaseURL),
		GuildID: guildID,
	}, nil
}

// NewAPIWithoutStore creates an API instance with no database behind it. Price and guild lookups
// still work; registration and the poller do not. Used when the database is unreachable at startup,
// which degrades the bot rather than crashing it
func NewAPIWithoutStore(apiBaseURL string, guildID string) *API {
	return &API{
		Client:  external.NewClient(apiBaseURL),
		GuildID: guildID,
	}
}

// StoreAvailable reports whether database backed features are usable
func (a *API) StoreAvailable() bool {
	return a.Store != nil
}

// RegisterPlayer resolves a player name against the game API and stores the binding for the user.
// A user who registers twice has their previous binding replaced.
// It receives the Discord user issuing the command and the player name to look up.
// It returns the stored binding, ErrPlayerNotFound if the search yields nothing, or another error.
func (a *API) RegisterPlayer(ctx context.Context, user shared.User, playerName string) (store.RegisteredPlayer, error) {
	if !a.StoreAvailable() {
		return store.RegisteredPlayer{}, ErrStoreUnavailable
	}

	players, err := a.Client.SearchPlayers(ctx, playerName)
	if err != nil {
		return store.RegisteredPlayer{}, fmt.Errorf("player search failed: %w", err)
	}
	if len(players) == 0 {
		return store.RegisteredPlayer{}, ErrPlayerNotFound
	}

	// The search endpoint orders by relevance, so take the first hit like the killboard site does
	binding := store.RegisteredPlayer{
		OwnerID:    user.UserID,
		PlayerID:   players[0].ID,
		PlayerName: players[0].Name,
	}
	if err := a.Store.UpsertRegisteredPlayer(ctx, binding); err != nil {
		return store.RegisteredPlayer{}, err
	}
	return binding, nil
}

// UnregisterPlayer removes the user's tracked player binding.
// It returns true if a binding existed, false if the user was not registered, or an error.
func (a *API) UnregisterPlayer(ctx context.Context, user shared.User) (bool, error) {
	if !a.StoreAvailable() {
		return false, ErrStoreUnavailable
	}
	return a.Store.RemoveRegisteredPlayer(ctx, user.UserID)
}

// TrackedPlayers returns every registered player binding. Used by the poller at the start of a tick.
func (a *API) TrackedPlayers(ctx context.Context) ([]store.RegisteredPlayer, error) {
	if !a.StoreAvailable() {
		return nil, ErrStoreUnavailable
	}
	return a.Store.ListRegisteredPlayers(ctx)
}

// PriceCheck resolves an item name and fetches its per-city market prices. Name resolution tries the
// local item index first (fuzzy matched), then falls back to the remote search endpoint, writing the
// resolved item back into the index. The index is an optimisation so price checks still work when
// the database is down.
// It returns a PriceReport, ErrItemNotFound, ErrNoPriceData, or another error.
func (a *API) PriceCheck(ctx context.Context, itemName string) (PriceReport, error) {
	item, err := a.resolveItem(ctx, itemName)
	if err != nil {
		return PriceReport{}, err
	}

	prices, err := a.Client.ItemPrices(ctx, item.ItemID)
	if err != nil {
		return PriceReport{}, fmt.Errorf("price lookup failed: %w", err)
	}
	if len(prices) == 0 {
		return PriceReport{}, ErrNoPriceData
	}

	return PriceReport{
		ItemID:   item.ItemID,
		ItemName: item.Name,
		IconURL:  external.ItemIconURL(item.ItemID),
		Prices:   prices,
	}, nil
}

// GuildInfo fetches the metadata record for the configured guild.
// It returns the guild record, ErrGuildNotConfigured, or another error.
func (a *API) GuildInfo(ctx context.Context) (external.Guild, error) {
	if a.GuildID == "" {
		return external.Guild{}, ErrGuildNotConfigured
	}
	return a.Client.Guild(ctx, a.GuildID)
}

// resolveItem maps a human item name to a canonical item id. Local index hits avoid a remote search;
// remote hits are written back to the index for next time (best effort, failures only logged by the
// caller's error path being skipped)
func (a *API) resolveItem(ctx context.Context, itemName string) (store.IndexedItem, error) {
	if a.StoreAvailable() {
		if item, ok := a.lookupIndexedItem(ctx, itemName); ok {
			return item, nil
		}
	}

	results, err := a.Client.SearchItems(ctx, itemName)
	if err != nil {
		return store.IndexedItem{}, fmt.Errorf("item search failed: %w", err)
	}
	if len(results) == 0 {
		return store.IndexedItem{}, ErrItemNotFound
	}

	item := store.IndexedItem{ItemID: results[0].ItemID, Name: results[0].Name}
	if a.StoreAvailable() {
		// Best effort cache write; a failed upsert must not fail the price check
		_ = a.Store.UpsertIndexedItem(ctx, item)
	}
	return item, nil
}

// lookupIndexedItem fuzzy matches an item name against the local index. Matching is done on
// lowercased names with a lookup table back to the original entry, and the closest rank wins
func (a *API) lookupIndexedItem(ctx context.Context, itemName string) (store.IndexedItem, bool) {
	items, err := a.Store.ListIndexedItems(ctx)
	if err != nil || len(items) == 0 {
		return store.IndexedItem{}, false
	}

	lookup := make(map[string]store.IndexedItem, len(items))
	lowerNames := make([]string, 0, len(items))
	for _, item := range items {
		lower := strings.ToLower(item.Name)
		lookup[lower] = item
		lowerNames = append(lowerNames, lower)
	}

	ranks := fuzzy.RankFind(strings.ToLower(itemName), lowerNames)
	if len(ranks) == 0 {
		return store.IndexedItem{}, false
	}
	sort.Sort(ranks)
	return lookup[ranks[0].Target], true
}
