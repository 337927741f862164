/* models.go
 * Contains the wire-format structs returned by the Albion game API. Field names and json tags follow the
 * upstream responses, so these should not be renamed without checking against the API
 * Authors: Zachary Bower
 */

package external

import "strconv"

// Player is a player entry as returned by the /search endpoint
type Player struct {
	ID           string `json:"Id"`
	Name         string `json:"Name"`
	GuildName    string `json:"GuildName"`
	AllianceName string `json:"AllianceName"`
}

// Item is an item entry as returned by the /search endpoint
type Item struct {
	ItemID string `json:"ItemId"`
	Name   string `json:"Name"`
}

// EquipmentItem is a single equipped item on an event participant
type EquipmentItem struct {
	Type    string `json:"Type"`
	Quality int    `json:"Quality"`
}

// EventPlayer is the killer/victim/participant record embedded in an Event
type EventPlayer struct {
	ID               string                    `json:"Id"`
	Name             string                    `json:"Name"`
	GuildName        string                    `json:"GuildName"`
	AllianceName     string                    `json:"AllianceName"`
	AverageItemPower float64                   `json:"AverageItemPower"`
	Equipment        map[string]*EquipmentItem `json:"Equipment"`
}

// Event is a single kill/death occurrence reported by the game API
type Event struct {
	EventID             int64         `json:"EventId"`
	TimeStamp           string        `json:"TimeStamp"`
	TotalVictimKillFame int64         `json:"TotalVictimKillFame"`
	Killer              EventPlayer   `json:"Killer"`
	Victim              EventPlayer   `json:"Victim"`
	Participants        []EventPlayer `json:"Participants"`
}

// ID returns the event identifier as a string. The processed_events collection is keyed by this
// value, so the formatting must stay stable across releases
func (e Event) ID() string {
	return strconv.FormatInt(e.EventID, 10)
}

// CityPrice is one row of the per-city market price response
type CityPrice struct {
	City  string `json:"city"`
	Price int64  `json:"price"`
}

// Guild is the guild metadata record returned by the /guilds endpoint
type Guild struct {
	ID          string `json:"Id"`
	Name        string `json:"Name"`
	FounderName string `json:"FounderName"`
	MemberCount int    `json:"MemberCount"`
	KillFame    int64  `json:"killFame"`
	DeathFame   int64  `json:"DeathFame"`
}

// searchResponse is the combined payload returned by the /search endpoint
type searchResponse struct {
	Players []Player `json:"players"`
	Items   []Item   `json:"items"`
}
