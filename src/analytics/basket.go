package analytics

import (
	"math"

	"github.com/username/subveris/backend/src/models"
)

// basketItem is one reference-priced purchase used to express a
// subscription's monthly cost in everyday terms.
type basketItem struct {
	Item     string
	UnitCost float64
	Icon     string
}

// referenceBasket is a fixed configuration table; swapping items changes
// the output but not the algorithm. Declaration order is output order.
var referenceBasket = []basketItem{
	{Item: "coffee drinks", UnitCost: 5, Icon: "coffee"},
	{Item: "movie tickets", UnitCost: 15, Icon: "film"},
	{Item: "lunch meals", UnitCost: 12, Icon: "utensils"},
}

const maxEquivalents = 3

// basketEquivalents computes floor(monthlyAmount / unitCost) per basket
// item, drops items yielding fewer than one unit, and caps the result at
// three entries in basket order.
func basketEquivalents(monthlyAmount float64) []models.Equivalent {
	out := []models.Equivalent{}
	for _, item := range referenceBasket {
		count := int(math.Floor(monthlyAmount / item.UnitCost))
		if count < 1 {
			continue
		}
		out = append(out, models.Equivalent{
			Item:  item.Item,
			Count: count,
			Icon:  item.Icon,
		})
		if len(out) == maxEquivalents {
			break
		}
	}
	return out
}
