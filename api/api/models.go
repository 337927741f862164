/* models.go
 * Contains the result structs returned by the api package
 * Authors: Zachary Bower
 */

package api

import "killboard-bot/api/external"

// PriceReport is the result of a price check: the resolved item plus its per-city market prices
type PriceReport struct {
	ItemID   string
	ItemName string
	IconURL  string
	Prices   []external.CityPrice
}
