/* item_index.go
 * Contains the methods for interacting with the item_index collection. The index is an opportunistic
 * cache of item names: whenever a remote item search resolves, the result is written here so later
 * price checks can match the name locally without another search round trip
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertIndexedItem stores or refreshes a cached item-name entry
// Preconditions: Receives the IndexedItem to store; ItemID must be set
// Postconditions: The index entry in the db matches item, or an error is returned
func (s *Store) UpsertIndexedItem(ctx context.Context, item IndexedItem) error {
	filter := bson.M{"_id": item.ItemID}
	update := bson.M{"$set": bson.M{"name": item.Name}}
	opts := options.Update().SetUpsert(true)

	if _, err := s.Collections.ItemIndex.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert indexed item: %w", err)
	}
	return nil
}

// ListIndexedItems returns every cached item-name entry for local fuzzy matching
// Preconditions: None
// Postconditions: Returns a slice of IndexedItem, or an error if the lookup failed
func (s *Store) ListIndexedItems(ctx context.Context) ([]IndexedItem, error) {
	cursor, err := s.Collections.ItemIndex.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("error fetching item index from db: %w", err)
	}

	var items []IndexedItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of indexed items: %w", err)
	}
	return items, nil
}
