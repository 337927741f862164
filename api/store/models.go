/* models.go
 * This file contains the structs that relate to DB objects
 * Authors: Zachary Bower
 */

package store

// RegisteredPlayer binds a Discord user to the game player they track. There is exactly one document
// per Discord user; re-registering replaces the binding rather than adding a second tracked player
type RegisteredPlayer struct {
	OwnerID    string `bson:"_id"`
	PlayerID   string `bson:"player_id"`
	PlayerName string `bson:"player_name"`
}

// ProcessedEvent is a member of the durable deduplication set. Documents are insert-only; the
// collection is never pruned
type ProcessedEvent struct {
	EventID string `bson:"_id"`
}

// IndexedItem is a cached item-name lookup entry, written whenever a remote item search resolves so
// later price checks can match names locally
type IndexedItem struct {
	ItemID string `bson:"_id"`
	Name   string `bson:"name"`
}
