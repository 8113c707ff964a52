// internal/domain/catalog/catalog.go
package catalog

// MenuItem represents a single orderable meal. Prices are in cents and
// immutable after startup.
type MenuItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Blurb     string `json:"blurb"`
}

// Menu is the fixed set of meals offered on the order page
var Menu = []MenuItem{
	{ID: "garden-harvest-bowl", Name: "Garden Harvest Bowl", UnitPrice: 1450, Blurb: "Roasted seasonal vegetables, quinoa, tahini drizzle."},
	{ID: "citrus-salmon-plate", Name: "Citrus Salmon Plate", UnitPrice: 1950, Blurb: "Pan-seared salmon, charred citrus, herbed rice."},
	{ID: "smoky-brisket-stack", Name: "Smoky Brisket Stack", UnitPrice: 1750, Blurb: "Slow-smoked brisket, pickled onion, toasted brioche."},
	{ID: "wild-mushroom-risotto", Name: "Wild Mushroom Risotto", UnitPrice: 1600, Blurb: "Arborio rice, porcini broth, shaved parmesan."},
	{ID: "harissa-chicken-wrap", Name: "Harissa Chicken Wrap", UnitPrice: 1250, Blurb: "Grilled chicken, harissa yogurt, crisp greens."},
	{ID: "midnight-chocolate-tart", Name: "Midnight Chocolate Tart", UnitPrice: 850, Blurb: "Dark chocolate ganache, sea salt, almond crust."},
}

// Prices returns a lookup of item id to unit price for the fee calculator
func Prices() map[string]int64 {
	prices := make(map[string]int64, len(Menu))
	for _, item := range Menu {
		prices[item.ID] = item.UnitPrice
	}
	return prices
}

// Find returns the menu item with the given id, if present
func Find(id string) (MenuItem, bool) {
	for _, item := range Menu {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}
