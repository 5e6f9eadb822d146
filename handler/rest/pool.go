package rest

import (
	"net/http"

	"defilend/core"
	"defilend/handler/render"
	"defilend/handler/views"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
)

func poolHandler(ledgerSrv core.ILedgerService, decimals int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pool, err := ledgerSrv.Pool(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.PoolView(pool, decimals))
	}
}

func initializePoolHandler(ledgerSrv core.ILedgerService, decimals int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		pool, err := ledgerSrv.InitializePool(ctx)
		if err != nil {
			logger.FromContext(ctx).WithError(err).Infoln("initialize pool")
			render.Error(w, err)
			return
		}

		render.JSONWithStatus(w, http.StatusCreated, views.PoolView(pool, decimals))
	}
}

func positionHandler(ledgerSrv core.ILedgerService, decimals int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		position, err := ledgerSrv.Position(r.Context(), chi.URLParam(r, "user"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.PositionView(position, decimals))
	}
}
