package domain

import (
	"fmt"
	"time"

	"github.com/go-arrower/records/arepo"
)

type ItemID int

// InventoryItem is an entry in the inventory log. It is not changed once logged.
type InventoryItem struct {
	ID        ItemID    `json:"id"`
	Name      string    `json:"name"      validate:"required"`
	Quantity  int       `json:"quantity"  validate:"gte=0"`
	DateAdded time.Time `json:"dateAdded"`
}

func (i InventoryItem) EntityID() ItemID { return i.ID }

func (i InventoryItem) String() string {
	return fmt.Sprintf("#%d %s, %d in stock, added %s", i.ID, i.Name, i.Quantity, i.DateAdded.Format(time.DateTime))
}

type ItemRepository = arepo.Repository[InventoryItem, ItemID]
