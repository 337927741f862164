/* processed_events.go
 * Contains the methods for interacting with the processed_events collection. This collection is the
 * deduplication set the poller consults before announcing an event: membership means a notification
 * for that event id has already been sent (or deliberately abandoned after retries)
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// IsEventProcessed reports whether a notification for the given event id has already been emitted
// Preconditions: Receives the event id string
// Postconditions: Returns true if the id is in the set, false if not, or an error if the lookup failed
func (s *Store) IsEventProcessed(ctx context.Context, eventID string) (bool, error) {
	err := s.Collections.ProcessedEvents.FindOne(ctx, bson.M{"_id": eventID}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("error checking processed event: %w", err)
	}
	return true, nil
}

// MarkEventProcessed adds an event id to the deduplication set. Inserting an id that is already
// present is not an error; the set semantics make the write idempotent
// Preconditions: Receives the event id string
// Postconditions: The id is a member of the set, or an error is returned
func (s *Store) MarkEventProcessed(ctx context.Context, eventID string) error {
	_, err := s.Collections.ProcessedEvents.InsertOne(ctx, ProcessedEvent{EventID: eventID})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to mark event processed: %w", err)
	}
	return nil
}
