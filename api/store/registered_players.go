/* registered_players.go
 * Contains the methods for interacting with the registered_players collection
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertRegisteredPlayer stores or replaces the tracked player binding for a Discord user
// Preconditions: Receives the RegisteredPlayer to store; OwnerID must be set
// Postconditions: The user's binding in the db matches player, or an error is returned
func (s *Store) UpsertRegisteredPlayer(ctx context.Context, player RegisteredPlayer) error {
	filter := bson.M{"_id": player.OwnerID}
	update := bson.M{"$set": bson.M{
		"player_id":   player.PlayerID,
		"player_name": player.PlayerName,
	}}
	opts := options.Update().SetUpsert(true)

	if _, err := s.Collections.RegisteredPlayers.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert registered player: %w", err)
	}
	return nil
}

// RemoveRegisteredPlayer deletes the tracked player binding for a Discord user
// Preconditions: Receives the Discord user id the binding is keyed by
// Postconditions: Returns true if a binding was removed, false if none existed, or an error
func (s *Store) RemoveRegisteredPlayer(ctx context.Context, ownerID string) (bool, error) {
	res, err := s.Collections.RegisteredPlayers.DeleteOne(ctx, bson.M{"_id": ownerID})
	if err != nil {
		return false, fmt.Errorf("failed to remove registered player: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// ListRegisteredPlayers returns every tracked player binding. The poller iterates this list once per
// tick; no ordering is guaranteed
// Preconditions: None
// Postconditions: Returns a slice of RegisteredPlayer, or an error if the lookup failed
func (s *Store) ListRegisteredPlayers(ctx context.Context) ([]RegisteredPlayer, error) {
	cursor, err := s.Collections.RegisteredPlayers.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("error fetching registered players from db: %w", err)
	}

	var players []RegisteredPlayer
	if err = cursor.All(ctx, &players); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of registered players: %w", err)
	}
	return players, nil
}
