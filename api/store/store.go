/* store.go
 * Contains the store struct and NewStore function. The methods for this package are split across three
 * files: registered_players.go, processed_events.go and item_index.go. Each of these files contains the
 * methods for interacting with that collection
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		RegisteredPlayers *mongo.Collection
		ProcessedEvents   *mongo.Collection
		ItemIndex         *mongo.Collection
	}
}

// Function for initialising Store. Connects to MongoDB, verifies the connection with a ping and binds
// the collection handles
// Preconditions: Receives strings containing dbName and mongoURI
// Postconditions: Returns pointer to the Store object, or an error if the database is unreachable
func NewStore(dbName string, mongoURI string) (*Store, error) {
	if dbName == "" || mongoURI == "" {
		return nil, fmt.Errorf("dbName and mongoURI cannot be empty")
	}

	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}

	// A failed connection string still "connects" lazily, so ping to surface unreachable databases
	// at startup instead of on the first tick
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		client.Disconnect(context.TODO())
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	db := client.Database(dbName)

	s := &Store{
		Client:   client,
		Database: db,
	}
	s.Collections.RegisteredPlayers = db.Collection("registered_players")
	s.Collections.ProcessedEvents = db.Collection("processed_events")
	s.Collections.ItemIndex = db.Collection("item_index")
	return s, nil
}
