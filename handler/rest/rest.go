package rest

import (
	"errors"
	"net/http"

	"defilend/core"
	"defilend/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(cfg *core.Config, ledgerSrv core.ILedgerService, transactionStr core.TransactionStore) http.Handler {
	router := chi.NewRouter()
	decimals := cfg.App.Decimals

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Route("/pool", func(r chi.Router) {
		r.Get("/", poolHandler(ledgerSrv, decimals))
		r.Post("/", initializePoolHandler(ledgerSrv, decimals))
	})

	router.Get("/positions/{user}", positionHandler(ledgerSrv, decimals))

	router.Post("/supply", actionHandler(ledgerSrv.Supply, decimals))
	router.Post("/borrow", actionHandler(ledgerSrv.Borrow, decimals))
	router.Post("/repay", actionHandler(ledgerSrv.Repay, decimals))
	router.Post("/withdraw", actionHandler(ledgerSrv.Withdraw, decimals))

	router.Route("/transactions", func(r chi.Router) {
		r.Get("/{user}", transactionsHandler(transactionStr))
		r.Post("/", recordTransactionHandler(transactionStr))
	})

	return router
}
