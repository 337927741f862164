/* models.go
 * Contains the structs shared between the api, bot and poller packages
 * Authors: Zachary Bower
 */

package shared

// User represents a Discord user interacting with the bot
type User struct {
	UserID   string
	Username string
}
