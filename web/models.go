/* models.go
 * Contains the configuration and server structs for the health-check HTTP server
 * Authors: Zachary Bower
 */

package web

import "time"

// Config holds the configuration for the web server
type Config struct {
	Addr string
}

// Server is the HTTP server that answers liveness probes
type Server struct {
	startedAt time.Time
}
