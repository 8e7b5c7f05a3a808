package application

import (
	"github.com/go-arrower/records/app"
)

// App is a dependency injection container.
// Each App works on one session of the inventory log.
type App struct {
	SeedData  app.Command[SeedDataCommand]
	AddItem   app.Request[AddItemRequest, AddItemResponse]
	ListItems app.Query[ListItemsQuery, ListItemsResponse]
}
