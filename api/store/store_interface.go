/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 * Authors: Zachary Bower
 */

package store

import "context"

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	UpsertRegisteredPlayer(ctx context.Context, player RegisteredPlayer) error
	RemoveRegisteredPlayer(ctx context.Context, ownerID string) (bool, error)
	ListRegisteredPlayers(ctx context.Context) ([]RegisteredPlayer, error)

	IsEventProcessed(ctx context.Context, eventID string) (bool, error)
	MarkEventProcessed(ctx context.Context, eventID string) error

	UpsertIndexedItem(ctx context.Context, item IndexedItem) error
	ListIndexedItems(ctx context.Context) ([]IndexedItem, error)

	Disconnect(ctx context.Context) error
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// Disconnect closes the underlying MongoDB client
func (s *Store) Disconnect(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
