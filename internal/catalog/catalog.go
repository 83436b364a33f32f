// Package catalog holds the static reference tables for an occasion: paper
// product types, point-of-sale items, session type codes, and the default
// session game programs. The tables are read-only; the program service may
// override game programs and pull-tab deals at runtime.
package catalog

import "github.com/shopspring/decimal"

// POS item categories. A POS item belongs to exactly one.
const (
	CategoryElectronic    = "Electronic"
	CategoryMiscellaneous = "Miscellaneous"
	CategoryPaper         = "Paper"
)

// PaperType is one physically counted paper product.
// HasFree marks products handed out as promotional freebies.
type PaperType struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	HasFree bool   `json:"hasFree"`
}

// POSItem is one sellable item on the door-sales point-of-sale sheet.
type POSItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

// SessionGame is one line of a session's game program.
type SessionGame struct {
	Number        int             `json:"number"`
	Name          string          `json:"name"`
	BasePrize     decimal.Decimal `json:"basePrize"`
	IsProgressive bool            `json:"isProgressive"`
	IsEventGame   bool            `json:"isEventGame"`
}

// PullTabDeal describes one deal from the pull-tab library.
type PullTabDeal struct {
	Identifier  string          `json:"identifier"`
	Name        string          `json:"name"`
	Form        string          `json:"form"`
	Price       decimal.Decimal `json:"price"`
	TicketCount int             `json:"ticketCount"`
	IdealProfit decimal.Decimal `json:"idealProfit"`
}

// Catalog bundles all static reference data.
type Catalog struct {
	paperTypes   []PaperType
	posItems     []POSItem
	sessionTypes map[string]string
	programs     map[string][]SessionGame

	posByID   map[string]POSItem
	paperByID map[string]PaperType
}

// Default returns the built-in catalog. The program service can supersede the
// game programs, but the paper and POS tables are fixed per house rules.
func Default() *Catalog {
	c := &Catalog{
		paperTypes: []PaperType{
			{ID: "eb", Name: "Early Birds", HasFree: true},
			{ID: "6f", Name: "6 Packs", HasFree: true},
			{ID: "9fs", Name: "Solid Border 9", HasFree: false},
			{ID: "9fst", Name: "Stripe Border 9", HasFree: false},
			{ID: "p3", Name: "$1.00 Progressives", HasFree: false},
			{ID: "p18", Name: "$5.00 Progressives", HasFree: false},
		},
		posItems: []POSItem{
			// Electronic machines first — door sales entry order
			{ID: "small-machine", Name: "27reg/18pro (Small Machine)", Price: dec(40), Category: CategoryElectronic},
			{ID: "large-machine", Name: "45reg/36pro (Large Machine)", Price: dec(65), Category: CategoryElectronic},

			{ID: "dauber", Name: "Dauber", Price: dec(2), Category: CategoryMiscellaneous},

			{ID: "6-face", Name: "6 Packs", Price: dec(10), Category: CategoryPaper},
			{ID: "9-face-solid", Name: "Solid Border 9", Price: dec(15), Category: CategoryPaper},
			{ID: "9-face-stripe", Name: "Stripe Border 9", Price: dec(10), Category: CategoryPaper},
			{ID: "birthday-pack", Name: "Birthdays (BOGOs)", Price: dec(0), Category: CategoryPaper},
			{ID: "coverall", Name: "Coverall Extra", Price: dec(1), Category: CategoryPaper},
			{ID: "double-action", Name: "Early Bird Double", Price: dec(5), Category: CategoryPaper},
			{ID: "letter-x", Name: "Letter X Extra", Price: dec(1), Category: CategoryPaper},
			{ID: "number7", Name: "Number 7 Extra", Price: dec(1), Category: CategoryPaper},
			{ID: "18-face-prog", Name: "$5.00 Progressives", Price: dec(5), Category: CategoryPaper},
			{ID: "3-face-prog", Name: "$1.00 Progressives", Price: dec(1), Category: CategoryPaper},
		},
		sessionTypes: map[string]string{
			"5-1": "1st/5th Monday",
			"6-2": "2nd Monday",
			"7-3": "3rd Monday",
			"8-4": "4th Monday",
		},
	}

	c.programs = defaultPrograms()
	c.posByID = make(map[string]POSItem, len(c.posItems))
	for _, it := range c.posItems {
		c.posByID[it.ID] = it
	}
	c.paperByID = make(map[string]PaperType, len(c.paperTypes))
	for _, pt := range c.paperTypes {
		c.paperByID[pt.ID] = pt
	}
	return c
}

func (c *Catalog) PaperTypes() []PaperType { return c.paperTypes }
func (c *Catalog) POSItems() []POSItem     { return c.posItems }

// SessionTypes maps session-type code → display name.
func (c *Catalog) SessionTypes() map[string]string { return c.sessionTypes }

// POSItem looks up a point-of-sale item by id. The zero item (price 0, empty
// category) is returned for unknown ids so that stray quantities contribute
// nothing rather than failing the aggregation.
func (c *Catalog) POSItem(id string) (POSItem, bool) {
	it, ok := c.posByID[id]
	return it, ok
}

func (c *Catalog) PaperType(id string) (PaperType, bool) {
	pt, ok := c.paperByID[id]
	return pt, ok
}

// Program returns the ordered game list for a session-type code, or the
// empty list when the code is unknown.
func (c *Catalog) Program(sessionType string) []SessionGame {
	return c.programs[sessionType]
}

// defaultPrograms builds the Monday programs. Every session plays the same
// 17-game frame with the progressive in slot 13 and the pull-tab event game
// in slot 9; early-bird prizes differ per Monday.
func defaultPrograms() map[string][]SessionGame {
	base := func(earlyBird int64) []SessionGame {
		return []SessionGame{
			{Number: 1, Name: "Early Bird Regular", BasePrize: dec(earlyBird)},
			{Number: 2, Name: "Early Bird Double", BasePrize: dec(earlyBird)},
			{Number: 3, Name: "Regular Bingo", BasePrize: dec(100)},
			{Number: 4, Name: "Letter X", BasePrize: dec(100)},
			{Number: 5, Name: "Six Pack", BasePrize: dec(100)},
			{Number: 6, Name: "Number 7", BasePrize: dec(100)},
			{Number: 7, Name: "Crazy Kite", BasePrize: dec(100)},
			{Number: 8, Name: "Four Corners", BasePrize: dec(100)},
			{Number: 9, Name: "Pot of Gold (Pull-Tab Event)", IsEventGame: true},
			{Number: 10, Name: "Regular Bingo", BasePrize: dec(100)},
			{Number: 11, Name: "Picture Frame", BasePrize: dec(100)},
			{Number: 12, Name: "Baseball Diamond", BasePrize: dec(100)},
			{Number: 13, Name: "Progressive Coverall", IsProgressive: true},
			{Number: 14, Name: "Regular Bingo", BasePrize: dec(100)},
			{Number: 15, Name: "Small Diamond", BasePrize: dec(100)},
			{Number: 16, Name: "Double Postage", BasePrize: dec(100)},
			{Number: 17, Name: "Coverall", BasePrize: dec(200)},
		}
	}
	return map[string][]SessionGame{
		"5-1": base(50),
		"6-2": base(25),
		"7-3": base(25),
		"8-4": base(50),
	}
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }
