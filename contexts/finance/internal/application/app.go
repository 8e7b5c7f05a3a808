package application

import (
	"github.com/go-arrower/records/app"
)

// App is a dependency injection container.
type App struct {
	OpenAccount        app.Command[OpenAccountCommand]
	GetAccount         app.Query[GetAccountQuery, GetAccountResponse]
	ProcessTransaction app.Request[ProcessTransactionRequest, ProcessTransactionResponse]
	ListTransactions   app.Query[ListTransactionsQuery, ListTransactionsResponse]
	SpendingByCategory app.Query[SpendingByCategoryQuery, SpendingByCategoryResponse]
}
