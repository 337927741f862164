/* external.go
 * Contains the HTTP client used to fetch data from the Albion game API, and return the results to the
 * higher level functions. All requests share one rate limiter so the bot stays inside the upstream's
 * informal request budget regardless of which code path is calling
 * Authors: Zachary Bower
 */

package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public game API root used when no override is configured
	DefaultBaseURL = "https://gameinfo.albiononline.com/api/gameinfo"

	// RenderBaseURL is the root of the image renderer used for kill scenes and item icons
	RenderBaseURL = "https://render.albiononline.com/v1"

	requestTimeout = 10 * time.Second
)

// Client is a rate limited HTTP client for the game API
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a game API client for the given base URL. An empty baseURL selects the public API.
// Preconditions: None
// Postconditions: Returns a client with a 10s per-request timeout and a shared request limiter
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		// The upstream asks integrations to stay around 1 request/sec sustained
		limiter: rate.NewLimiter(rate.Limit(1), 3),
	}
}

// SearchPlayers queries the /search endpoint and returns the matching players
// Preconditions: Receives a non-empty search string
// Postconditions: Returns the players half of the search response, or an error if the request failed
func (c *Client) SearchPlayers(ctx context.Context, query string) ([]Player, error) {
	var res searchResponse
	if err := c.get(ctx, fmt.Sprintf("/search?search=%s", url.QueryEscape(query)), &res); err != nil {
		return nil, err
	}
	return res.Players, nil
}

// SearchItems queries the /search endpoint and returns the matching items
// Preconditions: Receives a non-empty search string
// Postconditions: Returns the items half of the search response, or an error if the request failed
func (c *Client) SearchItems(ctx context.Context, query string) ([]Item, error) {
	var res searchResponse
	if err := c.get(ctx, fmt.Sprintf("/search?search=%s", url.QueryEscape(query)), &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

// PlayerEvents fetches the most recent kill/death events for a player. The API returns a bounded
// page of the newest events; no pagination is performed
// Preconditions: Receives a player id from a previous search, and a positive page size
// Postconditions: Returns up to limit events, or an error if the request failed
func (c *Client) PlayerEvents(ctx context.Context, playerID string, limit int) ([]Event, error) {
	var events []Event
	path := fmt.Sprintf("/events/player/%s?limit=%d", url.PathEscape(playerID), limit)
	if err := c.get(ctx, path, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ItemPrices fetches the per-city market prices for an item
// Preconditions: Receives a canonical item id from a previous search
// Postconditions: Returns one CityPrice per city with data, or an error if the request failed
func (c *Client) ItemPrices(ctx context.Context, itemID string) ([]CityPrice, error) {
	var prices []CityPrice
	if err := c.get(ctx, fmt.Sprintf("/prices/%s", url.PathEscape(itemID)), &prices); err != nil {
		return nil, err
	}
	return prices, nil
}

// Guild fetches the metadata record for a guild
// Preconditions: Receives a guild id
// Postconditions: Returns the guild record, or an error if the request failed
func (c *Client) Guild(ctx context.Context, guildID string) (Guild, error) {
	var guild Guild
	if err := c.get(ctx, fmt.Sprintf("/guilds/%s", url.PathEscape(guildID)), &guild); err != nil {
		return Guild{}, err
	}
	return guild, nil
}

// get performs a rate limited GET against the API and decodes the JSON response into result
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait aborted: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "KillboardBot/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("game api returned status %d for %s: %s", resp.StatusCode, path, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// KillImageURL returns the renderer URL for a kill scene image
func KillImageURL(eventID string) string {
	return fmt.Sprintf("%s/kill/%s.png", RenderBaseURL, eventID)
}

// ItemIconURL returns the renderer URL for an item icon
func ItemIconURL(itemID string) string {
	return fmt.Sprintf("%s/item/%s.png", RenderBaseURL, itemID)
}
