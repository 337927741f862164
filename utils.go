/* utils.go
 * Utility functions used across the application
 * Authors: Zachary Bower
 */

package main

import "os"

// envOrDefault returns the value of an environment variable, or fallback when it is unset or empty
// Preconditions: Receives the variable name and a fallback value
// Postconditions: Returns the environment value if non-empty, else the fallback
func envOrDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
