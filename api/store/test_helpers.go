/* test_helpers.go
 * Contains test helper functions for store package tests
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"os"
	"testing"
)

// NewTestStore creates a Store connected to the database named by MONGO_TEST_URI. Tests that need a
// real database call this and are skipped when no test database is configured, so the unit suite
// stays runnable offline. The test database is dropped on cleanup.
func NewTestStore(t *testing.T) *Store {
	t.Helper()

	mongoURI := os.Getenv("MONGO_TEST_URI")
	if mongoURI == "" {
		t.Skip("MONGO_TEST_URI not set, skipping integration test")
	}

	s, err := NewStore("killboard_bot_test", mongoURI)
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}

	t.Cleanup(func() {
		s.Database.Drop(context.TODO())
		s.Client.Disconnect(context.TODO())
	})
	return s
}
