package handler

import (
	"net/http"

	"defilend/core"
	"defilend/handler/render"
	"defilend/handler/rest"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Server server
type Server struct {
	cfg          *core.Config
	ledger       core.ILedgerService
	transactions core.TransactionStore
}

// New new server function
func New(
	cfg *core.Config,
	ledger core.ILedgerService,
	transactions core.TransactionStore,
) Server {
	return Server{
		cfg:          cfg,
		ledger:       ledger,
		transactions: transactions,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(render.WrapResponse(true))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	r.Mount("/", rest.Handle(s.cfg, s.ledger, s.transactions))
	return r
}
