package rest

import (
	"net/http"
	"strings"

	"defilend/core"
	"defilend/handler/param"
	"defilend/handler/render"
	"defilend/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// response user transactions, newest first
func transactionsHandler(transactionStr core.TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Limit int `json:"limit"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		transactions, err := transactionStr.ListByUser(ctx, chi.URLParam(r, "user"), params.Limit)
		if err != nil {
			logger.FromContext(ctx).WithError(err).Errorln("transactions.ListByUser")
			render.Error(w, err)
			return
		}

		render.JSON(w, transactions)
	}
}

// record a transaction submitted by a client after it has been confirmed elsewhere
func recordTransactionHandler(transactionStr core.TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContext(ctx)

		var params struct {
			User   string `json:"user" valid:"required"`
			Type   string `json:"type" valid:"required"`
			Amount uint64 `json:"amount"`
			Token  string `json:"token" valid:"required,stringlength(1|20)"`
			TxHash string `json:"tx_hash" valid:"required,stringlength(1|128)"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		action, ok := core.ParseActionType(strings.ToLower(params.Type))
		if !ok {
			render.Error(w, twirp.InvalidArgumentError("type", "must be one of supply, borrow, repay or withdraw"))
			return
		}

		if params.Amount == 0 {
			render.Error(w, twirp.InvalidArgumentError("amount", "must be positive"))
			return
		}

		transaction := &core.Transaction{
			TraceID: id.UUIDFromString("tx_hash:" + params.TxHash),
			UserID:  params.User,
			Action:  action,
			Amount:  core.Amount(params.Amount),
			Token:   params.Token,
			TxHash:  params.TxHash,
			Data:    []byte("{}"),
		}

		if existing, err := transactionStr.FindByTraceID(ctx, transaction.TraceID); err != nil {
			log.WithError(err).Errorln("transactions.FindByTraceID")
			render.Error(w, err)
			return
		} else if existing.ID > 0 {
			render.JSON(w, existing)
			return
		}

		if err := transactionStr.Create(ctx, nil, transaction); err != nil {
			log.WithError(err).Errorln("transactions.Create")
			render.Error(w, err)
			return
		}

		log.Infoln("transaction recorded", transaction.TxHash)
		render.JSONWithStatus(w, http.StatusCreated, transaction)
	}
}
